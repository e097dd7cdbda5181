package install

import (
	"fmt"
	"os"
	"strings"
)

// Environment answers variable lookups with the semantics of os.LookupEnv.
type Environment interface {
	LookupEnv(key string) (string, bool)
}

// ProcessEnvironment reads the environment of the current process.
type ProcessEnvironment struct{}

// LookupEnv implements Environment.
func (ProcessEnvironment) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnvironment is an in-memory Environment.
type MapEnvironment map[string]string

// LookupEnv implements Environment.
func (m MapEnvironment) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// ParseAssignments turns KEY=VALUE strings into a MapEnvironment.
// A value may be empty; a missing '=' or an empty key is an error.
func ParseAssignments(assignments []string) (MapEnvironment, error) {
	env := make(MapEnvironment, len(assignments))

	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		key = strings.TrimSpace(key)

		if !ok || key == "" {
			return nil, fmt.Errorf("%q: %w", a, ErrInvalidAssignment)
		}

		env[key] = value
	}

	return env, nil
}

// Layered consults its layers from last to first, so later layers win.
type Layered []Environment

// LookupEnv implements Environment.
func (l Layered) LookupEnv(key string) (string, bool) {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i] == nil {
			continue
		}

		if v, ok := l[i].LookupEnv(key); ok {
			return v, true
		}
	}

	return "", false
}

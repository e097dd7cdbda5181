package houdini

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidReference is returned for references not in name/version[@user/channel] form.
var ErrInvalidReference = errors.New("invalid package reference")

// Reference identifies a package: houdini/18.5.408@sidefx/stable.
type Reference struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	User    string `yaml:"user"`
	Channel string `yaml:"channel"`
}

// ParseReference accepts a full reference, name/version, or a bare version.
// The version is kept as given; it is only ever substituted into paths.
func ParseReference(s string) (Reference, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Reference{}, fmt.Errorf("empty: %w", ErrInvalidReference)
	}

	ref := Reference{
		Name:    Name,
		User:    DefaultUser,
		Channel: DefaultChannel,
	}

	nameVersion, userChannel, hasUser := strings.Cut(s, "@")
	if hasUser {
		user, channel, ok := strings.Cut(userChannel, "/")
		if !ok || user == "" || channel == "" || strings.Contains(channel, "/") {
			return Reference{}, fmt.Errorf("%q: user/channel expected after '@': %w", s, ErrInvalidReference)
		}

		ref.User, ref.Channel = user, channel
	}

	name, version, hasName := strings.Cut(nameVersion, "/")
	if !hasName {
		version = name
		name = Name
	}

	if name != Name {
		return Reference{}, fmt.Errorf("%q: package name must be %q: %w", s, Name, ErrInvalidReference)
	}

	if version == "" || strings.ContainsAny(version, "/@") {
		return Reference{}, fmt.Errorf("%q: missing version: %w", s, ErrInvalidReference)
	}

	ref.Version = version

	return ref, nil
}

// String renders the full reference.
func (r Reference) String() string {
	return r.Name + "/" + r.Version + "@" + r.User + "/" + r.Channel
}

// FolderName is a filesystem-friendly name for the default package folder.
func (r Reference) FolderName() string {
	return r.Name + "-" + r.Version
}

package houdini

// Actor identifies who created a package.
type Actor struct {
	// Hostname is the machine the installation was copied on.
	Hostname string `yaml:"hostname"`
	// Username is the system user who ran the packager.
	Username string `yaml:"username"`
}

// Clone returns a copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

package houdini

import "time"

// Contents summarises what the package step wrote.
type Contents struct {
	Files    int   `yaml:"files"`
	Dirs     int   `yaml:"dirs"`
	Symlinks int   `yaml:"symlinks"`
	Excluded int   `yaml:"excluded"`
	Bytes    int64 `yaml:"bytes"`
}

// Manifest is written at the root of every package folder.
type Manifest struct {
	// Reference identifies the package.
	Reference Reference `yaml:"reference"`
	// Description, URL and License repeat the recipe identity.
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	License     string `yaml:"license"`
	// Settings are the settings the package was created with.
	Settings Settings `yaml:"settings"`
	// Source is the install directory the files were copied from.
	Source string `yaml:"source"`
	// ShortPaths mirrors the recipe flag for consumers unpacking on Windows.
	ShortPaths bool `yaml:"short_paths"`
	// Descriptor holds the link metadata.
	Descriptor Descriptor `yaml:"package_info"`
	// Contents summarises the copied tree.
	Contents Contents `yaml:"contents"`
	// CreatedAt is when the package step finished.
	CreatedAt time.Time `yaml:"created_at"`
	// CreatedBy is nil when the host or user could not be detected.
	CreatedBy *Actor `yaml:"created_by,omitempty"`
}

// NewManifest returns a manifest with the recipe identity and link descriptor filled in.
func NewManifest(ref Reference, settings Settings, source string) *Manifest {
	return &Manifest{
		Reference:   ref,
		Description: Description,
		URL:         URL,
		License:     License,
		Settings:    settings,
		Source:      source,
		ShortPaths:  ShortPaths,
		Descriptor:  PackageInfo(),
	}
}

// Clone returns a deep copy of the manifest.
func (m *Manifest) Clone() *Manifest {
	if m == nil {
		return nil
	}

	cloned := *m
	cloned.Descriptor = m.Descriptor.Clone()
	cloned.CreatedBy = m.CreatedBy.Clone()

	return &cloned
}

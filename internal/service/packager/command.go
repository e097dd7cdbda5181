package packager

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fluxcd/pkg/lockedfile"
	"github.com/mitchellh/go-ps"

	"github.com/oshokin/houdini-package/internal/copier"
	"github.com/oshokin/houdini-package/internal/domain/houdini"
	"github.com/oshokin/houdini-package/internal/install"
	"github.com/oshokin/houdini-package/internal/logger"
	"github.com/oshokin/houdini-package/internal/platform"
	"github.com/oshokin/houdini-package/internal/repository/manifest"
)

const (
	// lockSuffix is appended to the package folder path to name its lock file.
	lockSuffix = ".lock"

	// partialMarker sits in the package folder from the start of the copy until
	// the manifest is written.
	partialMarker = ".houdini-package.partial"

	// ownerRWX is restored on package directories before they are removed.
	ownerRWX fs.FileMode = 0o700
)

var (
	errNoPackageFolder       = errors.New("package folder is not set")
	errPackageFolderNotEmpty = errors.New("package folder exists and does not hold a previous package")
)

// Options are inputs accepted by the packager entry point.
type Options struct {
	// Reference identifies the package; its version fills the install path template.
	Reference houdini.Reference
	// Settings select the target OS; the other fields are recorded in the manifest.
	Settings houdini.Settings
	// Env is consulted for install.OverrideVariable. Nil means no overrides.
	Env install.Environment
	// PackageFolder receives the copied tree and the manifest.
	PackageFolder string
	// Progress is called after each copied file. Optional.
	Progress func(copier.Stats)
}

// runner holds the state of a single packaging run.
// It is unexported; callers use Run.
type runner struct {
	opts      *Options
	profile   platform.Profile
	repo      manifest.Repository
	processes processLister
	now       func() time.Time
	actor     func() (*houdini.Actor, error)
	manifest  *houdini.Manifest
}

// Run creates the package described by opts and returns its manifest.
func Run(ctx context.Context, opts *Options) (*houdini.Manifest, error) {
	ctx = logger.WithName(ctx, "houdini-packager")

	r, err := newRunner(opts)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithKV(ctx, "reference", opts.Reference.String(), "os", opts.Settings.OS.String())

	unlock, err := lockPackageFolder(ctx, opts.PackageFolder)
	if err != nil {
		return nil, err
	}

	defer unlock()

	m, err := r.Run(ctx)
	if err != nil {
		logger.ErrorKV(ctx, "Packaging failed", "error", err)
		return nil, err
	}

	logger.InfoKV(ctx, "Package created", "package_folder", opts.PackageFolder)

	return m, nil
}

// newRunner validates opts and resolves the OS profile.
func newRunner(opts *Options) (*runner, error) {
	if opts == nil || opts.PackageFolder == "" {
		return nil, errNoPackageFolder
	}

	if err := opts.Settings.Validate(); err != nil {
		return nil, err
	}

	profile, err := platform.ProfileFor(opts.Settings.OS)
	if err != nil {
		return nil, err
	}

	return &runner{
		opts:      opts,
		profile:   profile,
		repo:      manifest.NewFileRepository(opts.PackageFolder),
		processes: ps.Processes,
		now:       time.Now,
		actor:     detectActor,
	}, nil
}

// lockPackageFolder serialises runs targeting the same package folder.
func lockPackageFolder(ctx context.Context, folder string) (func(), error) {
	folder = filepath.Clean(folder)

	if err := os.MkdirAll(filepath.Dir(folder), 0o755); err != nil {
		return nil, fmt.Errorf("create parent of package folder: %w", err)
	}

	logger.DebugKV(ctx, "Locking package folder", "lock", folder+lockSuffix)

	unlock, err := lockedfile.MutexAt(folder + lockSuffix).Lock()
	if err != nil {
		return nil, fmt.Errorf("lock package folder: %w", err)
	}

	return unlock, nil
}

// Run executes build, package and package_info in order.
func (r *runner) Run(ctx context.Context) (*houdini.Manifest, error) {
	r.build(ctx)

	source, stats, err := r.pack(ctx)
	if err != nil {
		return nil, err
	}

	if r.manifest, err = r.packageInfo(ctx, source, stats); err != nil {
		return nil, fmt.Errorf("package_info: %w", err)
	}

	return r.manifest.Clone(), nil
}

// build has nothing to compile.
func (r *runner) build(ctx context.Context) {
	logger.Debug(ctx, "Build step skipped, the installation is pre-built")
}

// pack resolves the install directory and mirrors it into the package folder.
func (r *runner) pack(ctx context.Context) (string, copier.Stats, error) {
	source, err := install.Resolve(r.opts.Settings.OS, r.opts.Reference.Version, r.opts.Env)
	if err != nil {
		return "", copier.Stats{}, err
	}

	logger.InfoKV(ctx, "Packaging local installation",
		"source", source,
		"package_folder", r.opts.PackageFolder,
		"preserve_symlinks", r.profile.Copy.PreserveSymlinks,
		"excludes", strings.Join(r.profile.Copy.Excludes, ","))

	warnIfRunning(ctx, r.processes)

	// Keep an earlier package intact when the installation is missing.
	if _, err = os.Stat(source); err != nil {
		return source, copier.Stats{}, fmt.Errorf("package: %w", err)
	}

	if err = r.clearPreviousPackage(ctx); err != nil {
		return source, copier.Stats{}, err
	}

	if err = r.markPartial(); err != nil {
		return source, copier.Stats{}, err
	}

	var options []copier.Option
	if r.opts.Progress != nil {
		options = append(options, copier.WithProgress(r.opts.Progress))
	}

	stats, err := copier.Copy(ctx, source, r.opts.PackageFolder, r.profile.Copy, options...)
	if err != nil {
		return source, stats, fmt.Errorf("package: %w", err)
	}

	logger.InfoKV(ctx, "Copied installation",
		"files", stats.Files,
		"symlinks", stats.Symlinks,
		"excluded", stats.Excluded,
		"size", humanize.Bytes(uint64(stats.Bytes))) //nolint:gosec // Byte counts are never negative.

	return source, stats, nil
}

// clearPreviousPackage removes a package folder left by an earlier run,
// finished (it holds a manifest) or interrupted (it holds the partial marker).
// Other folders that are not empty are left alone.
func (r *runner) clearPreviousPackage(ctx context.Context) error {
	entries, err := os.ReadDir(r.opts.PackageFolder)
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(entries) == 0) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("inspect package folder: %w", err)
	}

	if _, err = os.Lstat(filepath.Join(r.opts.PackageFolder, partialMarker)); err != nil {
		if _, err = r.repo.Load(ctx); err != nil {
			if errors.Is(err, manifest.ErrNotFound) {
				return fmt.Errorf("%s: %w", r.opts.PackageFolder, errPackageFolderNotEmpty)
			}

			return err
		}
	}

	logger.InfoKV(ctx, "Removing previous package", "package_folder", r.opts.PackageFolder)

	if err = makeRemovable(r.opts.PackageFolder); err != nil {
		return fmt.Errorf("remove previous package: %w", err)
	}

	if err = os.RemoveAll(r.opts.PackageFolder); err != nil {
		return fmt.Errorf("remove previous package: %w", err)
	}

	return nil
}

// makeRemovable adds owner rwx to every directory below folder.
// A directory is made readable before WalkDir lists it.
func makeRemovable(folder string) error {
	return filepath.WalkDir(folder, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		if info.Mode().Perm()&ownerRWX == ownerRWX {
			return nil
		}

		return os.Chmod(p, info.Mode().Perm()|ownerRWX)
	})
}

// markPartial creates the package folder with the partial marker in it.
func (r *runner) markPartial() error {
	if err := os.MkdirAll(r.opts.PackageFolder, 0o755); err != nil {
		return fmt.Errorf("create package folder: %w", err)
	}

	if err := os.WriteFile(filepath.Join(r.opts.PackageFolder, partialMarker), nil, 0o644); err != nil {
		return fmt.Errorf("mark package folder: %w", err)
	}

	return nil
}

// packageInfo publishes the link descriptor and writes the manifest.
func (r *runner) packageInfo(ctx context.Context, source string, stats copier.Stats) (*houdini.Manifest, error) {
	m := houdini.NewManifest(r.opts.Reference, r.opts.Settings, source)
	m.Contents = houdini.Contents{
		Files:    stats.Files,
		Dirs:     stats.Dirs,
		Symlinks: stats.Symlinks,
		Excluded: stats.Excluded,
		Bytes:    stats.Bytes,
	}
	m.CreatedAt = r.now().UTC()
	m.CreatedBy = actorOrNil(ctx, r.actor)

	if err := r.repo.Save(ctx, m); err != nil {
		return nil, err
	}

	if err := os.Remove(filepath.Join(r.opts.PackageFolder, partialMarker)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unmark package folder: %w", err)
	}

	logger.InfoKV(ctx, "Published package info",
		"libdirs", strings.Join(m.Descriptor.LibDirs, ","),
		"libs", strings.Join(m.Descriptor.Libs, ","))

	return m, nil
}

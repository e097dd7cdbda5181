package copier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/oshokin/houdini-package/internal/logger"
	"github.com/oshokin/houdini-package/internal/platform"
)

const (
	// ownerWrite lets the copier write files whose source is read-only.
	ownerWrite fs.FileMode = 0o200
	// ownerRWX is added to every copied directory.
	ownerRWX fs.FileMode = 0o700
)

var (
	// ErrNotDirectory is returned when the copy source is not a directory.
	ErrNotDirectory = errors.New("source is not a directory")
	// ErrSymlinkLoop is returned when a followed directory link points at one of its own ancestors.
	ErrSymlinkLoop = errors.New("symlink loop")
)

// Stats summarises a finished copy.
type Stats struct {
	// Files is the number of regular files written.
	Files int `yaml:"files"`
	// Dirs is the number of directories created below the destination root.
	Dirs int `yaml:"dirs"`
	// Symlinks is the number of links recreated as links.
	Symlinks int `yaml:"symlinks"`
	// Excluded is the number of entries matched by an exclude pattern.
	Excluded int `yaml:"excluded"`
	// Bytes is the total size of the regular files written.
	Bytes int64 `yaml:"bytes"`
}

// Option configures a Copy call.
type Option func(*copier)

// WithProgress registers fn to be called after each regular file is written.
func WithProgress(fn func(Stats)) Option {
	return func(c *copier) {
		c.progress = fn
	}
}

// copier holds the state of a single Copy call.
type copier struct {
	dst      string
	opts     platform.CopyOptions
	matcher  gitignore.Matcher
	progress func(Stats)
	stats    Stats
	// open holds the resolved directories of the followed links being walked,
	// each preceded by the resolved parent of its link.
	open []string
}

// Copy mirrors the directory src into dst following opts.
//
// File permission bits are copied as is. Directories get their source bits
// plus owner rwx, so the package can always be written to and removed.
//
// Filesystem errors (missing source, permission denied) are returned as the
// *fs.PathError produced by the failing call. A failed copy leaves whatever was
// already written in place.
func Copy(ctx context.Context, src, dst string, opts platform.CopyOptions, options ...Option) (Stats, error) {
	info, err := os.Stat(src)
	if err != nil {
		return Stats{}, err
	}

	if !info.IsDir() {
		return Stats{}, fmt.Errorf("%s: %w", src, ErrNotDirectory)
	}

	// WalkDir does not descend into a root that is itself a link, e.g. /opt/hfs18.5 -> hfs18.5.408.
	root, err := filepath.EvalSymlinks(src)
	if err != nil {
		return Stats{}, err
	}

	c := &copier{
		dst:     dst,
		opts:    opts,
		matcher: newMatcher(opts.Excludes),
	}

	for _, o := range options {
		o(c)
	}

	if err = mkdir(dst, info.Mode().Perm()); err != nil {
		return c.stats, err
	}

	if err = c.walk(ctx, root, ""); err != nil {
		return c.stats, err
	}

	return c.stats, nil
}

// newMatcher builds a gitignore matcher from root-relative patterns.
func newMatcher(patterns []string) gitignore.Matcher {
	ps := make([]gitignore.Pattern, 0, len(patterns))
	for _, p := range patterns {
		ps = append(ps, gitignore.ParsePattern(p, nil))
	}

	return gitignore.NewMatcher(ps)
}

// walk copies the tree at root into dst/base.
// base is empty for the source root and names the link for followed directory links.
func (c *copier) walk(ctx context.Context, root, base string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if err = ctx.Err(); err != nil {
			return err
		}

		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		rel = filepath.Join(base, rel)

		if c.excluded(rel, d.IsDir()) {
			c.stats.Excluded++
			logger.DebugKV(ctx, "Excluded from package", "path", rel)

			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		target, err := securejoin.SecureJoin(c.dst, rel)
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			return c.copyDir(d, target)
		case d.Type()&fs.ModeSymlink != 0:
			return c.copySymlink(ctx, p, rel, target)
		case d.Type().IsRegular():
			info, err := d.Info()
			if err != nil {
				return err
			}

			return c.copyFile(p, target, info)
		default:
			logger.DebugKV(ctx, "Skipped special file", "path", rel, "mode", d.Type().String())
			return nil
		}
	})
}

func (c *copier) excluded(rel string, isDir bool) bool {
	return c.matcher.Match(strings.Split(filepath.ToSlash(rel), "/"), isDir)
}

func (c *copier) copyDir(d fs.DirEntry, target string) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	return c.makeDir(target, info.Mode().Perm())
}

func (c *copier) makeDir(target string, perm fs.FileMode) error {
	if err := mkdir(target, perm); err != nil {
		return err
	}

	c.stats.Dirs++

	return nil
}

// mkdir creates target and sets perm plus owner rwx regardless of the umask.
func mkdir(target string, perm fs.FileMode) error {
	if err := os.MkdirAll(target, perm|ownerRWX); err != nil {
		return err
	}

	return os.Chmod(target, perm|ownerRWX)
}

func (c *copier) copySymlink(ctx context.Context, p, rel, target string) error {
	if c.opts.PreserveSymlinks {
		link, err := os.Readlink(p)
		if err != nil {
			return err
		}

		if err = os.Symlink(link, target); err != nil {
			return err
		}

		c.stats.Symlinks++

		return nil
	}

	resolved, err := filepath.EvalSymlinks(p)
	if err != nil {
		return err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return c.copyFile(resolved, target, info)
	}

	parent, err := filepath.EvalSymlinks(filepath.Dir(p))
	if err != nil {
		return err
	}

	if c.loops(parent, resolved) {
		return fmt.Errorf("%s -> %s: %w", p, resolved, ErrSymlinkLoop)
	}

	if err = c.makeDir(target, info.Mode().Perm()); err != nil {
		return err
	}

	c.open = append(c.open, parent, resolved)

	err = c.walk(ctx, resolved, rel)

	c.open = c.open[:len(c.open)-2]

	return err
}

// loops reports whether following a link in parent to resolved would walk a
// directory that is already being walked.
func (c *copier) loops(parent, resolved string) bool {
	if isWithin(parent, resolved) {
		return true
	}

	return slices.ContainsFunc(c.open, func(dir string) bool {
		return isWithin(dir, resolved)
	})
}

func (c *copier) copyFile(src, target string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}

	defer func() {
		_ = in.Close()
	}()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()|ownerWrite)
	if err != nil {
		return err
	}

	n, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return err
	}

	if err = out.Close(); err != nil {
		return err
	}

	if err = os.Chmod(target, info.Mode().Perm()); err != nil {
		return err
	}

	if err = os.Chtimes(target, info.ModTime(), info.ModTime()); err != nil {
		return err
	}

	c.stats.Files++
	c.stats.Bytes += n

	if c.progress != nil {
		c.progress(c.stats)
	}

	return nil
}

// isWithin reports whether path equals dir or lies below it.
func isWithin(path, dir string) bool {
	if path == dir {
		return true
	}

	return strings.HasPrefix(path, strings.TrimSuffix(dir, string(filepath.Separator))+string(filepath.Separator))
}

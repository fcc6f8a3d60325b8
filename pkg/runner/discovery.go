package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-enry/go-enry/v2"
)

// Discover finds the page files selected by opts and returns them as sorted,
// de-duplicated absolute paths. A path that does not exist is an error; a
// file given explicitly is still filtered by extension and globs.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		opts:       opts,
		seen:       make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if d.wantFile(abs) {
				d.add(abs)
			}
			continue
		}
		if err := d.walk(abs); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

type discoverer struct {
	ctx        context.Context //nolint:containedctx // Scoped to one Discover call.
	workDir    string
	extensions []string
	opts       Options

	seen  map[string]struct{}
	files []string
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discoverer) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// walk adds every page below root. Hidden entries such as .trash or .git
// are skipped, and so are vendored trees when SkipVendored is set.
func (d *discoverer) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := d.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && d.skipDir(entry.Name(), d.rel(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return d.symlink(path)
		}

		if !enry.IsDotFile(entry.Name()) && d.wantFile(path) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func (d *discoverer) skipDir(name, rel string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if d.opts.SkipVendored && vendored(rel, true) {
		return true
	}
	return matchAny(rel, d.opts.ExcludeGlobs)
}

// symlink adds a linked file, or walks the target of a linked directory
// when FollowSymlinks is set. Broken links are ignored.
func (d *discoverer) symlink(path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // Broken links are not pages.
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // Unreadable targets are not pages.
	}

	if info.IsDir() {
		if !d.opts.FollowSymlinks {
			return nil
		}
		// WalkDir does not descend into a symlinked root, so walk the target.
		return d.walk(target)
	}

	if !enry.IsDotFile(filepath.Base(path)) && d.wantFile(path) {
		d.add(path)
	}
	return nil
}

// wantFile reports whether a file passes the extension, vendoring,
// exclude and include filters.
func (d *discoverer) wantFile(path string) bool {
	if !hasExtension(path, d.extensions) {
		return false
	}

	rel := d.rel(path)
	if d.opts.SkipVendored && vendored(rel, false) {
		return false
	}
	if matchAny(rel, d.opts.ExcludeGlobs) {
		return false
	}
	return len(d.opts.IncludeGlobs) == 0 || matchAny(rel, d.opts.IncludeGlobs)
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

func hasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	return slices.ContainsFunc(extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

func matchAny(rel string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(p string) bool {
		return matchGlob(rel, p)
	})
}

// matchGlob matches a slash separated relative path against a doublestar
// pattern such as "*.md", "logseq/bak/**" or "**/.trash/**". A pattern without
// a slash also matches the base name alone.
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if matched, err := doublestar.Match(pattern, path); err == nil && matched {
		return true
	}
	if strings.Contains(pattern, "/") {
		return false
	}
	matched, err := doublestar.Match(pattern, filepath.Base(path))
	return err == nil && matched
}

// vendored reports whether the path lies in a dependency or generated tree
// such as node_modules, as classified by enry.
func vendored(relPath string, isDir bool) bool {
	p := filepath.ToSlash(relPath)
	if isDir {
		p += "/"
	}
	return enry.IsVendor(p)
}

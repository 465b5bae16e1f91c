// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library reads the document library: a directory of PDF files
// selected by a doublestar pattern. The directory is never written.
package library

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pdiddy/paper-meta/pkg/types"
)

// ErrNotFound is returned by Resolve when the named file does not exist.
var ErrNotFound = errors.New("document not found")

// Library is a read-only view of PDF files under a base directory.
type Library struct {
	dir     string
	pattern string
}

// New validates cfg and returns a Library. The directory itself is checked
// on first use so a library can be configured before it is populated.
func New(cfg types.LibraryConfig) (*Library, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("%w: library dir is empty", types.ErrInvalidConfig)
	}
	pattern := cfg.Pattern
	if pattern == "" {
		pattern = "**/*.pdf"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: bad library pattern %q", types.ErrInvalidConfig, pattern)
	}
	return &Library{dir: cfg.Dir, pattern: pattern}, nil
}

// Dir returns the base directory.
func (l *Library) Dir() string { return l.dir }

// Files returns every file matching the pattern, ordered by name.
func (l *Library) Files() ([]types.FileMeta, error) {
	if _, err := os.Stat(l.dir); err != nil {
		return nil, fmt.Errorf("reading library %s: %w", l.dir, err)
	}
	names, err := doublestar.Glob(os.DirFS(l.dir), l.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("listing library %s: %w", l.dir, err)
	}
	sort.Strings(names)

	files := make([]types.FileMeta, 0, len(names))
	for _, name := range names {
		meta, err := l.stat(name)
		if err != nil {
			return nil, err
		}
		files = append(files, meta)
	}
	return files, nil
}

// List describes every library file, newest first. Files with the same
// modification time are ordered by name.
func (l *Library) List() ([]types.FileInfo, error) {
	files, err := l.Files()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})

	out := make([]types.FileInfo, len(files))
	for i, f := range files {
		out[i] = types.FileInfo{
			Name:      f.Name,
			SizeBytes: f.Size,
			SizeMB:    sizeMB(f.Size),
			Modified:  f.ModTime,
		}
	}
	return out, nil
}

// Resolve locates one library file by name. A name without an extension
// gets ".pdf" appended. Names that would escape the library directory are
// rejected.
func (l *Library) Resolve(name string) (types.FileMeta, error) {
	name = filepath.ToSlash(strings.TrimSpace(name))
	if path.Ext(name) == "" {
		name += ".pdf"
	}
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return types.FileMeta{}, fmt.Errorf("%w: %q is outside the library", ErrNotFound, name)
	}
	return l.stat(name)
}

func (l *Library) stat(name string) (types.FileMeta, error) {
	p := filepath.Join(l.dir, filepath.FromSlash(name))
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return types.FileMeta{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return types.FileMeta{}, fmt.Errorf("stat %s: %w", p, err)
	}
	if info.IsDir() {
		return types.FileMeta{}, fmt.Errorf("%w: %s is a directory", ErrNotFound, name)
	}
	return types.FileMeta{
		Name:    name,
		Path:    p,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// sizeMB converts bytes to megabytes rounded to two decimals.
func sizeMB(n int64) float64 {
	return math.Round(float64(n)/(1024*1024)*100) / 100
}

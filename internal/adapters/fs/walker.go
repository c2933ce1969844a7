// Package fs provides filesystem adapters: manifest location, source
// walking, and content hashing.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files under root, pruning excluded directories.
// Excludes are matched against the base name of each entry; matching
// directories are never descended into, matching files are never yielded.
func (w *Walker) WalkFiles(root string, excludes []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Skip unreadable entries rather than aborting the walk.
				return nil //nolint:nilerr // unreadable subtrees are not fatal
			}

			excluded := w.excluded(d.Name(), excludes)

			if d.IsDir() {
				// .git is never a source tree.
				if excluded || d.Name() == ".git" {
					return filepath.SkipDir
				}
				return nil
			}

			if excluded {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

// excluded reports whether name matches one of the exclude patterns.
func (w *Walker) excluded(name string, excludes []string) bool {
	for _, exclude := range excludes {
		matched, _ := filepath.Match(exclude, name)
		if matched {
			return true
		}
	}
	return false
}

package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/psync/internal/core/domain"
	"go.trai.ch/psync/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProjectLocator = (*Locator)(nil)

// Locator finds the project manifest responsible for a path by searching
// upward through the directory tree.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Locate searches upward from start for the nearest directory containing a
// file matching glob. Start may be a file, a directory, or a path that no
// longer exists (a removed file still resolves through its parent).
func (l *Locator) Locate(start, glob string) (domain.ProjectRef, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return domain.ProjectRef{}, zerr.Wrap(err, "failed to resolve search start")
	}

	currentDir := abs
	if info, statErr := os.Stat(abs); statErr != nil || !info.IsDir() {
		currentDir = filepath.Dir(abs)
	}

	for {
		match, err := l.matchIn(currentDir, glob)
		if err != nil {
			return domain.ProjectRef{}, err
		}
		if match != "" {
			return domain.NewProjectRef(match), nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return domain.ProjectRef{}, zerr.With(domain.ErrProjectNotFound, "start", start)
}

// matchIn returns the first file in dir matching glob. filepath.Glob yields
// matches in lexical order, so ties are deterministic. Directories that
// happen to match the pattern are skipped.
func (l *Locator) matchIn(dir, glob string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrInvalidPattern.Error()), "pattern", glob)
	}

	for _, match := range matches {
		info, statErr := os.Stat(match)
		if statErr != nil {
			continue
		}
		if !info.IsDir() {
			return match, nil
		}
	}

	return "", nil
}

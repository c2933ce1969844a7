package ports

import "go.trai.ch/psync/internal/core/domain"

// ProjectLocator finds the project manifest responsible for a path.
//
//go:generate mockgen -source=locator.go -destination=mocks/mock_locator.go -package=mocks
type ProjectLocator interface {
	// Locate searches upward from start (a file or directory) for the
	// nearest directory containing a file matching glob. Matches within one
	// directory are ordered lexicographically and the first wins. It returns
	// domain.ErrProjectNotFound when the filesystem root is reached without
	// a match.
	Locate(start, glob string) (domain.ProjectRef, error)
}

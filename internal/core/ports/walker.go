package ports

import "iter"

//go:generate mockgen -source=walker.go -destination=mocks/mock_walker.go -package=mocks

// SourceWalker enumerates candidate source files under a directory tree.
type SourceWalker interface {
	// WalkFiles yields all files under root, pruning excluded directories.
	// Excludes are matched against the base name of each entry.
	WalkFiles(root string, excludes []string) iter.Seq[string]
}

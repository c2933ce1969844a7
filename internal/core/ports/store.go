package ports

import "go.trai.ch/psync/internal/core/domain"

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// Manifest is a parsed project document open for mutation. Mutations touch
// only the affected item elements; formatting of untouched regions is
// preserved through serialization.
type Manifest interface {
	// Path returns the absolute path of the manifest on disk.
	Path() string

	// Name returns the display name (file name without extension).
	Name() string

	// Items returns every file reference in the document, across all item
	// groups, in document order.
	Items() []domain.Item

	// Contains reports whether an item with the given include path exists.
	Contains(include string) bool

	// Add appends the item under the last item group, creating one if the
	// document has none. It returns false when an item with the same include
	// is already present (the document is left untouched).
	Add(item domain.Item) bool

	// Remove deletes the item with the given include path. It returns
	// domain.ErrItemNotFound when no item matches.
	Remove(include string) error

	// Rename rewrites the include of an existing item in place, preserving
	// the element and its metadata children. It returns
	// domain.ErrItemNotFound when no item matches from.
	Rename(from, to string) error
}

// ManifestCodec parses and serializes project documents.
type ManifestCodec interface {
	// Parse decodes the raw manifest bytes (with or without a byte-order
	// mark) into a mutable document.
	Parse(path string, data []byte) (Manifest, error)

	// Encode serializes the document with a UTF-8 byte-order mark, CRLF line
	// endings, and no trailing newline.
	Encode(m Manifest) ([]byte, error)
}

// ManifestStore is the path-keyed cache of parsed manifests.
type ManifestStore interface {
	// Get returns the manifest at the given absolute path, parsing it on
	// first access and revalidating the cached entry against the file's
	// fingerprint afterwards.
	Get(path string) (Manifest, error)

	// Save serializes the manifest, writes it to disk, and refreshes the
	// cache entry in place.
	Save(m Manifest) error

	// Invalidate drops the cache entry for the given path.
	Invalidate(path string)

	// Reset drops all cache entries.
	Reset()
}

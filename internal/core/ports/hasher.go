package ports

// Hasher defines the interface for computing content fingerprints.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Sum64 computes the content hash of the given bytes.
	Sum64(data []byte) uint64
}

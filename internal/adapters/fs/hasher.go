package fs

import (
	"github.com/cespare/xxhash/v2"
	"go.trai.ch/psync/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes content fingerprints for cache revalidation.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Sum64 computes the XXHash of the given bytes.
func (h *Hasher) Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

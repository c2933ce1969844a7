package fs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/psync/internal/adapters/fs"
)

func TestHasher_Sum64(t *testing.T) {
	hasher := fs.NewHasher()

	a := hasher.Sum64([]byte("content-a"))
	b := hasher.Sum64([]byte("content-b"))
	again := hasher.Sum64([]byte("content-a"))

	assert.Equal(t, a, again, "same content must produce the same hash")
	assert.NotEqual(t, a, b, "different content must produce different hashes")
}

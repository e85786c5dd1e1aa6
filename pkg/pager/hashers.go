package pager

import (
	"hash"

	"github.com/cespare/xxhash"
	"github.com/spaolacci/murmur3"
)

// XxChecksum returns the xxHash checksum of a page's current contents.
func XxChecksum(page *Page) uint64 {
	return xxhash.Sum64(page.data)
}

// NewFingerprint returns a streaming MurmurHash3 hasher for fingerprinting
// a sequence of row slots.
func NewFingerprint() hash.Hash64 {
	return murmur3.New64()
}

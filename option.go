package bytestore

import "github.com/gholt/bytestore/store"

// defaultGuarded resolves the BYTESTORE_GUARDED environment variable via
// store.DefaultGuarded, so that NewElasticDefault picks guarded
// allocations in debug runs without duplicating the store package's own
// config resolution.
func defaultGuarded() bool {
	return store.DefaultGuarded()
}

// NewElasticDefault is NewElastic with the guarded flag resolved from the
// environment rather than passed explicitly.
func NewElasticDefault(initialCap int64) (*Bytes, error) {
	return NewElastic(initialCap, defaultGuarded())
}

package store

import (
	"os"
	"strconv"
)

// config holds store-package-wide tunables, resolved first from
// environment variables and then overridden by functional options, in the
// same order the teacher lineage's ValuesStoreOpts/valuelocmap.config
// resolve theirs.
type config struct {
	guarded bool
}

func resolveConfig(opts ...func(*config)) *config {
	cfg := &config{}
	if env := os.Getenv("BYTESTORE_GUARDED"); env != "" {
		if val, err := strconv.ParseBool(env); err == nil {
			cfg.guarded = val
		}
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// OptGuarded selects guarded (canary-bracketed) native allocations.
// Defaults to env BYTESTORE_GUARDED or false.
func OptGuarded(guarded bool) func(*config) {
	return func(cfg *config) {
		cfg.guarded = guarded
	}
}

// DefaultGuarded resolves the BYTESTORE_GUARDED environment variable the
// same way resolveConfig does, for callers outside this package that
// want the environment-derived default without building a config of
// their own.
func DefaultGuarded() bool {
	return resolveConfig().guarded
}

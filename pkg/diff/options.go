package diff

import (
	"go.uber.org/zap"
)

// Option configures a Comparison
type Option func(*Comparison)

// Variants restricts the composite configurations compared to some variants.
// It defaults to every variant found in either tree.
func Variants(variants []string) Option {
	return func(c *Comparison) {
		if len(variants) > 0 {
			c.variants = toSet(variants)
		}
	}
}

// Libtypes restricts the libraries and releases compared to some libtypes.
// It defaults to every libtype found in either tree.
func Libtypes(libtypes []string) Option {
	return func(c *Comparison) {
		if len(libtypes) > 0 {
			c.libtypes = toSet(libtypes)
		}
	}
}

// IgnoreConfigNames compares libraries and releases, not the names of configurations
func IgnoreConfigNames(enabled bool) Option {
	return func(c *Comparison) {
		c.ignoreConfigNames = enabled
	}
}

// IncludeFiles compares the files of the pairs that are not identical, using a file identity cache
func IncludeFiles(cache *Cache) Option {
	return func(c *Comparison) {
		c.files = cache
	}
}

// Concurrency sets the max number of pairs classified concurrently. It defaults to 2 x #cpus.
func Concurrency(concurrent int) Option {
	return func(c *Comparison) {
		if concurrent > 0 {
			c.concurrency = concurrent
		}
	}
}

// Logger for the comparison
func Logger(logger *zap.Logger) Option {
	return func(c *Comparison) {
		if logger != nil {
			c.l = logger
		}
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

package tree

import "go.uber.org/zap"

// Option configures a configuration tree
type Option func(*Tree)

// Logger sets a logger for the tree
func Logger(logger *zap.Logger) Option {
	return func(t *Tree) {
		if logger != nil {
			t.l = logger
		}
	}
}

// Preview skips the store checks performed by validation, and turns Save into a dry run
func Preview(enabled bool) Option {
	return func(t *Tree) {
		t.preview = enabled
	}
}

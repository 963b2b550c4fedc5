package bomstore

import (
	"github.com/oneconcern/bommon/pkg/storage"
	"go.uber.org/zap"
)

// Option configures a configuration store
type Option func(*Store)

// Blobs sets the store holding file contents. It defaults to the metadata store.
func Blobs(blobs storage.Store) Option {
	return func(s *Store) {
		if blobs != nil {
			s.blobs = blobs
		}
	}
}

// Logger sets a logger for the configuration store
func Logger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.l = logger
		}
	}
}

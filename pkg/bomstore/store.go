// Package bomstore implements a configuration store on top of K/V object stores.
//
// Projects, variants, configurations, libraries, releases and file indexes are
// persisted as yaml descriptors on a metadata store (see model paths).
// File contents live on a blob store, addressed as "{directory}/{filename}#{version}".
package bomstore

import (
	"bytes"
	"context"
	"time"

	"github.com/oneconcern/bommon/pkg/bomstore/status"
	"github.com/oneconcern/bommon/pkg/errors"
	"github.com/oneconcern/bommon/pkg/storage"
	storagestatus "github.com/oneconcern/bommon/pkg/storage/status"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// Store is a configuration store.
//
// It is safe for concurrent reads. Concurrent updates of the same configuration are not serialized.
type Store struct {
	meta   storage.Store
	blobs  storage.Store
	l      *zap.Logger
	writes *atomic.Uint64
}

// New builds a configuration store on a metadata store
func New(meta storage.Store, opts ...Option) *Store {
	s := &Store{
		meta:   meta,
		blobs:  meta,
		l:      zap.NewNop(),
		writes: atomic.NewUint64(0),
	}
	for _, apply := range opts {
		apply(s)
	}
	return s
}

func (s *Store) String() string {
	if s.blobs == s.meta {
		return s.meta.String()
	}
	return s.meta.String() + "+" + s.blobs.String()
}

// Writes reports the number of objects written so far
func (s *Store) Writes() uint64 {
	return s.writes.Load()
}

func now() time.Time {
	return time.Now().UTC()
}

func (s *Store) has(ctx context.Context, key string) (bool, error) {
	return s.meta.Has(ctx, key)
}

func (s *Store) getDescriptor(ctx context.Context, key string, descriptor interface{}) error {
	b, err := storage.ReadAll(ctx, s.meta, key)
	if err != nil {
		if errors.Is(err, storagestatus.ErrNotExists) {
			return status.ErrNotFound.Wrapf("%s", key)
		}
		return err
	}
	return yaml.Unmarshal(b, descriptor)
}

func (s *Store) putDescriptor(ctx context.Context, key string, descriptor interface{}, exclusive storage.NewKey) error {
	b, err := yaml.Marshal(descriptor)
	if err != nil {
		return err
	}
	if err = s.meta.Put(ctx, key, bytes.NewReader(b), exclusive); err != nil {
		if errors.Is(err, storagestatus.ErrExists) {
			return status.ErrExists.Wrapf("%s", key)
		}
		return err
	}
	s.writes.Inc()
	s.l.Debug("descriptor written", zap.String("key", key))
	return nil
}

func (s *Store) putBlob(ctx context.Context, key string, content []byte) error {
	if err := s.blobs.Put(ctx, key, bytes.NewReader(content), storage.IfNotPresent); err != nil {
		if errors.Is(err, storagestatus.ErrExists) {
			return status.ErrExists.Wrapf("%s", key)
		}
		return err
	}
	s.writes.Inc()
	s.l.Debug("blob written", zap.String("key", key), zap.Int("size", len(content)))
	return nil
}

// folded lists the path segments found right after a prefix
func (s *Store) folded(ctx context.Context, prefix string) ([]string, error) {
	keys, err := storage.AllKeysPrefix(ctx, s.meta, prefix, "/")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		name := key[len(prefix):]
		if len(name) > 0 && name[len(name)-1] == '/' {
			names = append(names, name[:len(name)-1])
		}
	}
	return names, nil
}

// Package kv implements a Store on an embedded badger key/value database.
//
// This backend suits a single workstation holding many small descriptors.
package kv

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dgraph-io/badger/v3"
	"github.com/oneconcern/bommon/pkg/errors"
	"github.com/oneconcern/bommon/pkg/storage"
	"github.com/oneconcern/bommon/pkg/storage/status"
	"go.uber.org/zap"
)

const retryInterval = 10 * time.Millisecond

type (
	// Option configures the badger store
	Option func(*kvStore)

	kvStore struct {
		*badger.DB
		path     string
		inMemory bool
		l        *zap.Logger
	}
)

// InMemory keeps the database in memory only
func InMemory(enabled bool) Option {
	return func(s *kvStore) {
		s.inMemory = enabled
	}
}

// Logger specifies a logger for this store
func Logger(logger *zap.Logger) Option {
	return func(s *kvStore) {
		if logger != nil {
			s.l = logger
		}
	}
}

// New opens (or creates) a badger database at path.
//
// The returned closer must be called to release the database.
func New(path string, opts ...Option) (storage.Store, func() error, error) {
	s := &kvStore{path: path, l: zap.NewNop()}
	for _, apply := range opts {
		apply(s)
	}

	var options badger.Options
	if s.inMemory {
		options = badger.DefaultOptions("").WithInMemory(true)
	} else {
		options = badger.DefaultOptions(path)
	}
	options = options.WithLogger(nil)

	db, err := badger.Open(options)
	if err != nil {
		return nil, nil, status.ErrStorageAPI.Wrap(err)
	}
	s.DB = db
	return s, db.Close, nil
}

func (s *kvStore) String() string {
	if s.inMemory {
		return "badger@memory"
	}
	return "badger@" + s.path
}

func (s *kvStore) Has(ctx context.Context, key string) (bool, error) {
	err := s.DB.View(func(txn *badger.Txn) error {
		_, e := txn.Get([]byte(key))
		return e
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *kvStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	var value []byte
	err := s.DB.View(func(txn *badger.Txn) error {
		item, e := txn.Get([]byte(key))
		if e != nil {
			return e
		}
		value, e = item.ValueCopy(nil)
		return e
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, status.ErrNotExists.Wrapf("%s", key)
		}
		return nil, err
	}
	return ioutil.NopCloser(bytes.NewReader(value)), nil
}

func (s *kvStore) Put(ctx context.Context, key string, source io.Reader, exclusive storage.NewKey) error {
	value, err := ioutil.ReadAll(source)
	if err != nil {
		return err
	}
	return s.retry(ctx, func(txn *badger.Txn) error {
		if exclusive {
			_, e := txn.Get([]byte(key))
			if e == nil {
				return status.ErrExists.Wrapf("%s", key)
			}
			if !errors.Is(e, badger.ErrKeyNotFound) {
				return e
			}
		}
		return txn.Set([]byte(key), value)
	})
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	return s.retry(ctx, func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// retry runs an update transaction, retrying on write conflicts only
func (s *kvStore) retry(ctx context.Context, update func(*badger.Txn) error) error {
	return backoff.Retry(func() error {
		e := s.DB.Update(update)
		if e == nil {
			return nil
		}
		if errors.Is(e, badger.ErrConflict) {
			s.l.Debug("badger transaction conflict, retrying")
			return e
		}
		return backoff.Permanent(e)
	},
		backoff.WithContext(backoff.NewConstantBackOff(retryInterval), ctx),
	)
}

func (s *kvStore) Keys(ctx context.Context) ([]string, error) {
	return s.scan("")
}

func (s *kvStore) scan(prefix string) ([]string, error) {
	var keys []string
	err := s.DB.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: false,
			Prefix:         []byte(prefix),
		})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	return keys, err
}

func (s *kvStore) KeysPrefix(ctx context.Context, token, prefix, delimiter string, count int) ([]string, string, error) {
	keys, err := s.scan(prefix)
	if err != nil {
		return nil, "", err
	}
	page, next := storage.PageKeys(keys, token, prefix, delimiter, count)
	return page, next, nil
}

func (s *kvStore) Clear(ctx context.Context) error {
	return s.DB.DropAll()
}

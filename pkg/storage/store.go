// Copyright © 2018 One Concern

package storage

import (
	"context"
	"io"
	"io/ioutil"
	"sort"
	"strings"
)

// NewKey tells Put whether an existing key may be replaced
type NewKey bool

const (
	// IfNotPresent fails a Put with status.ErrExists when the key is already there
	IfNotPresent NewKey = true

	// OverWrite replaces any existing object
	OverWrite NewKey = false

	// DefaultPageSize is the number of keys returned by one KeysPrefix call when no count is given
	DefaultPageSize = 1000
)

// Store implementations know how to write entries to a K/V model.
//
// Typically this is something file system-like: S3, GCS, a local directory, an embedded KV.
// Implementations are assumed to be fairly simple.
//
// Get on a missing key returns an error satisfying errors.Is(err, status.ErrNotExists).
type Store interface {
	String() string
	Has(context.Context, string) (bool, error)
	Get(context.Context, string) (io.ReadCloser, error)
	Put(context.Context, string, io.Reader, NewKey) error
	Delete(context.Context, string) error
	Keys(context.Context) ([]string, error)

	// KeysPrefix lists at most count keys sorted lexicographically, starting after pageToken.
	// When delimiter is set, keys sharing a path segment after prefix are folded into that
	// segment (ending with the delimiter). The returned token is empty on the last page.
	KeysPrefix(ctx context.Context, pageToken, prefix, delimiter string, count int) ([]string, string, error)

	Clear(context.Context) error
}

// ReadAll fetches an object in memory
func ReadAll(ctx context.Context, store Store, key string) ([]byte, error) {
	rdr, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rdr.Close()
	}()
	return ioutil.ReadAll(rdr)
}

// AllKeysPrefix walks all pages of KeysPrefix
func AllKeysPrefix(ctx context.Context, store Store, prefix, delimiter string) ([]string, error) {
	var (
		all   []string
		token string
	)
	for {
		keys, next, err := store.KeysPrefix(ctx, token, prefix, delimiter, DefaultPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, keys...)
		if next == "" {
			return all, nil
		}
		token = next
	}
}

// PageKeys applies the KeysPrefix contract to an unsorted list of keys.
// Backends without native prefix listing use it.
func PageKeys(keys []string, pageToken, prefix, delimiter string, count int) ([]string, string) {
	if count <= 0 {
		count = DefaultPageSize
	}
	seen := make(map[string]struct{}, len(keys))
	folded := make([]string, 0, len(keys))
	for _, key := range keys {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if delimiter != "" {
			if i := strings.Index(key[len(prefix):], delimiter); i >= 0 {
				key = key[:len(prefix)+i+len(delimiter)]
			}
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		folded = append(folded, key)
	}
	sort.Strings(folded)

	start := 0
	if pageToken != "" {
		start = sort.SearchStrings(folded, pageToken)
		if start < len(folded) && folded[start] == pageToken {
			start++
		}
	}
	end := start + count
	if end >= len(folded) {
		return folded[start:], ""
	}
	page := folded[start:end]
	return page, page[len(page)-1]
}

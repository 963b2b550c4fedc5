package diff

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/oneconcern/bommon/pkg/model"
)

// DefaultCacheSize is the number of file comparisons remembered by default
const DefaultCacheSize = 4096

// Files knows how to list and compare the files of libraries and releases
type Files interface {
	ListFiles(ctx context.Context, project, variant, libtype, library, release string) (map[string]model.FileDescriptor, error)
	FileDigest(ctx context.Context, path string) (string, error)
	FileType(ctx context.Context, path string) (string, error)
	FileDiff(ctx context.Context, pathA, pathB string) (string, error)
}

// Cache remembers file comparisons.
//
// Its lifetime is controlled by the caller: file versions are immutable, so a cache may be
// shared by several comparisons. A Cache is safe for concurrent use.
type Cache struct {
	Files
	identical *lru.Cache
	text      *lru.Cache
}

// NewCache builds a cache of file comparisons, remembering up to size outcomes
func NewCache(files Files, size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	identical, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	text, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{Files: files, identical: identical, text: text}, nil
}

type pathPair struct {
	first, second string
}

// IsFileIdentical tells if two file versions hold the same content.
//
// Versions at the same path are identical. Otherwise digests are compared. Text files with
// different digests are still identical when their textual diff is empty: keyword expansion
// may change digests without changing contents. Binary files get no such second chance.
func (c *Cache) IsFileIdentical(ctx context.Context, first, second string) (bool, error) {
	if first == second {
		return true, nil
	}
	key := pathPair{first: first, second: second}
	if v, ok := c.identical.Get(key); ok {
		return v.(bool), nil
	}
	identical, err := c.isFileIdentical(ctx, first, second)
	if err != nil {
		return false, err
	}
	c.identical.Add(key, identical)
	return identical, nil
}

func (c *Cache) isFileIdentical(ctx context.Context, first, second string) (bool, error) {
	firstDigest, err := c.FileDigest(ctx, first)
	if err != nil {
		return false, err
	}
	secondDigest, err := c.FileDigest(ctx, second)
	if err != nil {
		return false, err
	}
	if firstDigest == secondDigest {
		return true, nil
	}

	for _, path := range []string{first, second} {
		text, err := c.isText(ctx, path)
		if err != nil || !text {
			return false, err
		}
	}
	diff, err := c.FileDiff(ctx, first, second)
	if err != nil {
		return false, err
	}
	return diff == "", nil
}

func (c *Cache) isText(ctx context.Context, path string) (bool, error) {
	if v, ok := c.text.Get(path); ok {
		return v.(bool), nil
	}
	fileType, err := c.FileType(ctx, path)
	if err != nil {
		return false, err
	}
	text := strings.Contains(fileType, model.FileTypeText)
	c.text.Add(path, text)
	return text, nil
}

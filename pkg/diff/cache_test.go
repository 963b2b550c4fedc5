package diff

import (
	"context"
	stderr "errors"
	"testing"

	"github.com/oneconcern/bommon/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

// fakeFiles serves canned digests, types and diffs, and counts calls
type fakeFiles struct {
	files   map[string]map[string]model.FileDescriptor
	digests map[string]string
	types   map[string]string
	diffs   map[[2]string]string
	listErr error

	digestCalls atomic.Int32
	typeCalls   atomic.Int32
	diffCalls   atomic.Int32
}

func (f *fakeFiles) ListFiles(_ context.Context, project, variant, libtype, library, release string) (map[string]model.FileDescriptor, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.files[model.SimpleFullName(project, variant, libtype, library, release)], nil
}

func (f *fakeFiles) FileDigest(_ context.Context, path string) (string, error) {
	f.digestCalls.Inc()
	d, ok := f.digests[path]
	if !ok {
		return "", stderr.New("no such file: " + path)
	}
	return d, nil
}

func (f *fakeFiles) FileType(_ context.Context, path string) (string, error) {
	f.typeCalls.Inc()
	return f.types[path], nil
}

func (f *fakeFiles) FileDiff(_ context.Context, a, b string) (string, error) {
	f.diffCalls.Inc()
	return f.diffs[[2]string{a, b}], nil
}

func TestIsFileIdentical(t *testing.T) {
	files := &fakeFiles{
		digests: map[string]string{
			"p/v/rtl/lib/a.v#1": "d1",
			"p/v/rtl/lib/a.v#2": "d1",
			"p/v/rtl/lib/t.v#1": "d2",
			"p/v/rtl/lib/t.v#2": "d3",
			"p/v/rtl/lib/t.v#3": "d4",
			"p/v/oa/lib/b.gds#1": "d5",
			"p/v/oa/lib/b.gds#2": "d6",
		},
		types: map[string]string{
			"p/v/rtl/lib/t.v#1":  model.FileTypeText,
			"p/v/rtl/lib/t.v#2":  model.FileTypeText,
			"p/v/rtl/lib/t.v#3":  model.FileTypeText,
			"p/v/oa/lib/b.gds#1": model.FileTypeBinary,
			"p/v/oa/lib/b.gds#2": model.FileTypeBinary,
		},
		diffs: map[[2]string]string{
			{"p/v/rtl/lib/t.v#1", "p/v/rtl/lib/t.v#3"}: "-a\n+b\n",
		},
	}
	cache, err := NewCache(files, 0)
	require.NoError(t, err)
	ctx := context.Background()

	for _, toPin := range []struct {
		name          string
		first, second string
		identical     bool
	}{
		{name: "same path", first: "p/v/rtl/lib/a.v#1", second: "p/v/rtl/lib/a.v#1", identical: true},
		{name: "same digest", first: "p/v/rtl/lib/a.v#1", second: "p/v/rtl/lib/a.v#2", identical: true},
		{name: "text with empty diff", first: "p/v/rtl/lib/t.v#1", second: "p/v/rtl/lib/t.v#2", identical: true},
		{name: "text with diff", first: "p/v/rtl/lib/t.v#1", second: "p/v/rtl/lib/t.v#3", identical: false},
		{name: "binary", first: "p/v/oa/lib/b.gds#1", second: "p/v/oa/lib/b.gds#2", identical: false},
	} {
		testCase := toPin
		t.Run(testCase.name, func(t *testing.T) {
			identical, err := cache.IsFileIdentical(ctx, testCase.first, testCase.second)
			require.NoError(t, err)
			assert.Equal(t, testCase.identical, identical)
		})
	}

	assert.Equal(t, int32(8), files.digestCalls.Load())
	assert.Equal(t, int32(2), files.diffCalls.Load())

	t.Run("remembered", func(t *testing.T) {
		identical, err := cache.IsFileIdentical(ctx, "p/v/rtl/lib/t.v#1", "p/v/rtl/lib/t.v#2")
		require.NoError(t, err)
		assert.True(t, identical)
		assert.Equal(t, int32(8), files.digestCalls.Load())
		assert.Equal(t, int32(2), files.diffCalls.Load())
	})

	t.Run("failure", func(t *testing.T) {
		_, err := cache.IsFileIdentical(ctx, "p/v/rtl/lib/a.v#1", "p/v/rtl/lib/missing.v#1")
		require.Error(t, err)
	})
}

package tree

import (
	"context"
	"testing"

	"github.com/oneconcern/bommon/pkg/errors"
	"github.com/oneconcern/bommon/pkg/tree/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClone(t *testing.T) {
	ctx := context.Background()
	s, tr, root := setupTree(t)

	clone, err := tr.Clone(ctx, root, "copy", false)
	require.NoError(t, err)
	assert.Equal(t, CompositeKey("p", "v", "copy"), clone)
	assert.Equal(t, tr.Children(root), tr.Children(clone))
	assert.Equal(t, "top", tr.Description(clone))
	assert.True(t, tr.IsContentEqual(root, clone))
	assert.True(t, tr.IsDirty(clone))
	assert.False(t, tr.IsDirty(root))
	assert.Equal(t, []Key{clone, root}, tr.Parents(CompositeKey("p", "v2", "sub")))

	_, err = tr.Clone(ctx, root, "root", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrSameObject))

	require.NoError(t, s.CreateConfig(ctx, "p", "v", "taken", ""))
	_, err = tr.Clone(ctx, root, "taken", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrAlreadyExists))

	_, err = tr.Clone(ctx, root, "copy", true)
	require.NoError(t, err, "an unsaved clone nobody holds is replaced")

	require.NoError(t, tr.AddChild(CompositeKey("p", "v2", "sub"), mustComposite(t, tr, "p", "v3", "held")))
	_, err = tr.Clone(ctx, mustComposite(t, tr, "p", "v3", "other"), "held", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrAlreadyExists))

	t.Run("simple", func(t *testing.T) {
		lib := SimpleKey("p", "v", "rtl", "dev", "")
		rel, err := tr.Clone(ctx, lib, "REL3", false)
		require.NoError(t, err)
		assert.Equal(t, SimpleKey("p", "v", "rtl", "dev", "REL3"), rel)

		branch, err := tr.Clone(ctx, SimpleKey("p", "v", "ipspec", "dev", "REL1"), "feature", false)
		require.NoError(t, err)
		assert.Equal(t, SimpleKey("p", "v", "ipspec", "feature", ""), branch)

		copied := mustComposite(t, tr, "p", "v", "copied")
		require.NoError(t, tr.AddChild(copied, rel))
		require.NoError(t, tr.AddChild(copied, branch))
		require.NoError(t, tr.Save(ctx, copied, false))

		ld, err := s.GetLibrary(ctx, "p", "v", "ipspec", "feature")
		require.NoError(t, err)
		assert.Equal(t, "dev", ld.SourceLibrary)
		assert.Equal(t, "REL1", ld.SourceRelease)

		has, err := s.ReleaseExists(ctx, "p", "v", "rtl", "dev", "REL3")
		require.NoError(t, err)
		assert.True(t, has)
	})
}

func TestCloneTree(t *testing.T) {
	ctx := context.Background()
	s, tr, root := setupTree(t)
	sub := CompositeKey("p", "v2", "sub")
	originalReport := tr.Report(root)

	clone, err := tr.CloneTree(ctx, root, "feature")
	require.NoError(t, err)
	assert.Equal(t, CompositeKey("p", "v", "feature"), clone)
	assert.Equal(t, []Key{
		SimpleKey("p", "v", "ipspec", "dev", "REL1"),
		SimpleKey("p", "v", "rtl", "dev", ""),
		CompositeKey("p", "v2", "feature"),
	}, tr.Children(clone))
	assert.Equal(t, []Key{SimpleKey("p", "v2", "rtl", "dev", "")}, tr.Children(CompositeKey("p", "v2", "feature")))
	assert.Equal(t, originalReport, tr.Report(root))
	assert.False(t, tr.IsDirty(sub))
	assert.False(t, tr.IsContentEqual(root, clone))

	require.NoError(t, tr.Save(ctx, clone, false))
	has, err := s.ConfigExists(ctx, "p", "v2", "feature")
	require.NoError(t, err)
	assert.True(t, has)

	t.Run("with libraries", func(t *testing.T) {
		clone, err := tr.CloneTree(ctx, root, "bugfix", CloneSimple(true))
		require.NoError(t, err)
		assert.Equal(t, []Key{
			SimpleKey("p", "v", "ipspec", "dev", "REL1"),
			SimpleKey("p", "v", "rtl", "bugfix", ""),
			CompositeKey("p", "v2", "bugfix"),
		}, tr.Children(clone))
		assert.Equal(t, []Key{SimpleKey("p", "v2", "rtl", "bugfix", "")}, tr.Children(CompositeKey("p", "v2", "bugfix")))

		require.NoError(t, tr.Save(ctx, clone, false))
		ld, err := s.GetLibrary(ctx, "p", "v", "rtl", "bugfix")
		require.NoError(t, err)
		assert.Equal(t, "dev", ld.SourceLibrary)
	})

	t.Run("targets are checked first", func(t *testing.T) {
		require.NoError(t, s.CreateConfig(ctx, "p", "v2", "taken", ""))
		_, err := tr.CloneTree(ctx, root, "taken")
		require.Error(t, err)
		assert.True(t, errors.Is(err, status.ErrAlreadyExists))
		assert.False(t, tr.Has(CompositeKey("p", "v", "taken")))
		assert.Equal(t, originalReport, tr.Report(root))

		clone, err := tr.CloneTree(ctx, root, "taken", ReuseExisting(true))
		require.NoError(t, err)
		assert.Equal(t, CompositeKey("p", "v", "taken"), clone)
	})

	t.Run("same object", func(t *testing.T) {
		_, err := tr.CloneTree(ctx, root, "root")
		require.Error(t, err)
		assert.True(t, errors.Is(err, status.ErrSameObject))
	})

	t.Run("clone onto a source", func(t *testing.T) {
		_, err := tr.CloneTree(ctx, root, "sub")
		require.Error(t, err)
		assert.True(t, errors.Is(err, status.ErrSameObject))

		_, err = tr.CloneTree(ctx, sub, "dev", CloneSimple(true))
		require.Error(t, err)
		assert.True(t, errors.Is(err, status.ErrSameObject))
	})
}

func TestModifiedConfigs(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	tr := New(s)
	root := mustComposite(t, tr, "p", "v", "root")
	rel := mustComposite(t, tr, "p", "v2", "REL1")
	require.NoError(t, tr.AddChild(rel, mustLoad(t, tr, "p/v2/rtl/dev/REL1")))
	require.NoError(t, tr.AddChild(root, rel))
	require.NoError(t, tr.Save(ctx, root, false))

	assert.Empty(t, tr.ModifiedImmutableConfigs(root))

	require.True(t, tr.RemoveChild(rel, SimpleKey("p", "v2", "rtl", "dev", "REL1")))
	require.NoError(t, tr.AddChild(rel, mustLoad(t, tr, "p/v2/rtl/dev/REL2")))
	assert.Equal(t, []Key{rel}, tr.ModifiedImmutableConfigs(root))
	changed := SimpleKey("p", "v2", "rtl", "dev", "REL2")
	assert.Equal(t, []Key{rel}, tr.ConfigsToCloneIfSelfChanges(changed))
	assert.Equal(t, []Key{root, rel}, tr.ConfigsToCloneIfSelfChangesIncludingMutable(changed))

	_, err := tr.ConvertModifiedImmutableConfigsIntoMutable(ctx, root, "REL9")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidName))

	n, err := tr.ConvertModifiedImmutableConfigsIntoMutable(ctx, root, "fix")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	fix := CompositeKey("p", "v2", "fix")
	assert.Equal(t, []Key{fix}, tr.Children(root))
	assert.Empty(t, tr.ModifiedImmutableConfigs(root))
	assert.Equal(t, []Key{fix}, tr.ModifiedMutableConfigs(root))

	n, err = tr.RenameModifiedMutableConfigs(ctx, root, "fix")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = tr.RenameModifiedMutableConfigs(ctx, root, "fix2")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []Key{CompositeKey("p", "v2", "fix2")}, tr.Children(root))

	require.NoError(t, tr.Save(ctx, root, false))
	cd, err := s.ReadComposite(ctx, "p", "v2", "fix2")
	require.NoError(t, err)
	assert.Equal(t, []string{"p/v2/rtl/dev/REL2"}, cd.Children)

	cd, err = s.ReadComposite(ctx, "p", "v2", "REL1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p/v2/rtl/dev/REL1"}, cd.Children)
}

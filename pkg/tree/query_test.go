package tree

import (
	"context"
	"testing"

	"github.com/oneconcern/bommon/pkg/errors"
	"github.com/oneconcern/bommon/pkg/tree/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk(t *testing.T) {
	_, tr, root := setupTree(t)

	assert.Equal(t, []Key{
		SimpleKey("p", "v", "ipspec", "dev", "REL1"),
		root,
		SimpleKey("p", "v", "rtl", "dev", ""),
	}, tr.LocalObjects(root))
	assert.Equal(t, []Key{
		SimpleKey("p", "v2", "rtl", "dev", ""),
		CompositeKey("p", "v2", "sub"),
	}, tr.ForeignObjects(root))
	assert.Equal(t, []string{"p"}, tr.AllProjects(root))
	assert.True(t, tr.IsObjectInTree(root, SimpleKey("p", "v2", "rtl", "dev", "")))
	assert.False(t, tr.IsObjectInTree(CompositeKey("p", "v2", "sub"), root))
}

func TestSearch(t *testing.T) {
	_, tr, root := setupTree(t)

	found, err := tr.Search(root, "", "", nil)
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = tr.Search(root, "^p$", "v2", nil)
	require.NoError(t, err)
	assert.Equal(t, []Key{CompositeKey("p", "v2", "sub")}, found)

	everything := ""
	found, err = tr.Search(root, "p", "", &everything)
	require.NoError(t, err)
	assert.Equal(t, []Key{
		SimpleKey("p", "v", "ipspec", "dev", "REL1"),
		SimpleKey("p", "v", "rtl", "dev", ""),
		SimpleKey("p", "v2", "rtl", "dev", ""),
	}, found)

	rtl := "rtl"
	found, err = tr.Search(root, "", "^v$", &rtl)
	require.NoError(t, err)
	assert.Equal(t, []Key{SimpleKey("p", "v", "rtl", "dev", "")}, found)

	_, err = tr.Search(root, "(", "", nil)
	require.Error(t, err)
}

func TestReplace(t *testing.T) {
	_, tr, root := setupTree(t)
	lib := SimpleKey("p", "v", "rtl", "dev", "")
	sub := CompositeKey("p", "v2", "sub")

	_, err := tr.ReplaceObjectInTree(root, lib, lib, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrSameObject))

	n, err := tr.ReplaceObjectInTree(root, lib, lib, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, tr.IsDirty(root))

	rel := mustLoad(t, tr, "p/v/rtl/dev/REL2")
	n, err = tr.ReplaceObjectInTree(root, lib, rel, false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, tr.Children(root), rel)
	assert.NotContains(t, tr.Children(root), lib)
	assert.True(t, tr.IsDirty(root))

	t.Run("rolled back on error", func(t *testing.T) {
		foreign, err := tr.NewSimple("p", "v", "rtl", "other", "", "")
		require.NoError(t, err)
		before := tr.Report(root)
		_, err = tr.ReplaceObjectInTree(root, SimpleKey("p", "v2", "rtl", "dev", ""), foreign, false)
		require.Error(t, err)
		assert.True(t, errors.Is(err, status.ErrForeignReference))
		assert.Equal(t, before, tr.Report(root))
		assert.False(t, tr.IsDirty(sub))
	})

	t.Run("all instances", func(t *testing.T) {
		rel2 := mustLoad(t, tr, "p/v2/rtl/dev/REL2")
		n, err := tr.ReplaceAllInstancesInTree(root, "p", "v2", "rtl", rel2)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, []Key{rel2}, tr.Children(sub))

		other := mustComposite(t, tr, "p", "v2", "other")
		n, err = tr.ReplaceAllInstancesInTree(root, "p", "v2", "", other)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Contains(t, tr.Children(root), other)
	})

	t.Run("remove", func(t *testing.T) {
		assert.Equal(t, 1, tr.RemoveObjectFromTree(root, rel))
		assert.Zero(t, tr.RemoveObjectFromTree(root, rel))
		assert.Equal(t, 2, tr.RemoveObjectsFromTree(root, []Key{
			SimpleKey("p", "v", "ipspec", "dev", "REL1"),
			CompositeKey("p", "v2", "other"),
		}))
		assert.Empty(t, tr.Children(root))
	})
}

func TestEmptyConfigs(t *testing.T) {
	tr := New(setupStore(t))
	root := mustComposite(t, tr, "p", "v", "root")
	a := mustComposite(t, tr, "p", "v2", "a")
	b := mustComposite(t, tr, "p", "v3", "b")
	require.NoError(t, tr.AddChild(root, a))
	require.NoError(t, tr.AddChild(a, b))
	require.NoError(t, tr.AddChild(root, mustLoad(t, tr, "p/v/rtl/dev")))

	assert.Equal(t, []Key{b}, tr.EmptyConfigs(root))
	assert.Equal(t, 2, tr.RemoveEmptyConfigs(root))
	assert.Equal(t, []Key{SimpleKey("p", "v", "rtl", "dev", "")}, tr.Children(root))
	assert.Empty(t, tr.EmptyConfigs(root))

	empty := mustComposite(t, tr, "p", "v", "empty")
	assert.Equal(t, []Key{empty}, tr.EmptyConfigs(empty))
	assert.Zero(t, tr.RemoveEmptyConfigs(empty))
}

// readinessTree builds:
//
//	p/v/dev
//	    p/v/rtl/lib/REL1
//	    p/v2/dev
//	        p/v2/rtl/lib/REL1
//	    p/v3/REL1
//	        p/v3/rtl/lib/REL1
func readinessTree(t testing.TB) (*Tree, Key) {
	t.Helper()
	tr := New(nil)
	simple := func(variant string) Key {
		k, err := tr.NewSimple("p", variant, "rtl", "lib", "REL1", "")
		require.NoError(t, err)
		return k
	}
	root := mustComposite(t, tr, "p", "v", "dev")
	sub := mustComposite(t, tr, "p", "v2", "dev")
	rel := mustComposite(t, tr, "p", "v3", "REL1")
	require.NoError(t, tr.AddChild(root, simple("v")))
	require.NoError(t, tr.AddChild(sub, simple("v2")))
	require.NoError(t, tr.AddChild(rel, simple("v3")))
	require.NoError(t, tr.AddChild(root, sub))
	require.NoError(t, tr.AddChild(root, rel))
	return tr, root
}

func TestReadiness(t *testing.T) {
	tr, root := readinessTree(t)
	sub := CompositeKey("p", "v2", "dev")
	rel := CompositeKey("p", "v3", "REL1")

	next, ok := tr.NextMutableConfig(root)
	require.True(t, ok)
	assert.Equal(t, sub, next)

	assert.Equal(t, []Key{sub}, tr.ConfigsReadyForSnap(root))
	assert.Equal(t, []Key{sub}, tr.ConfigsReadyForRelease(root))
	assert.Equal(t, []Key{sub}, tr.ConfigsReadyForPrelease(root))
	assert.Equal(t, []Key{sub, rel}, tr.ConfigsWithOnlyLibraryOrRelease(root))

	assert.True(t, tr.IsReleased(rel, false))
	assert.True(t, tr.IsPreleased(rel, false, false))
	assert.False(t, tr.IsPreleased(rel, false, true))
	assert.False(t, tr.IsReleased(root, true))

	_, ok = tr.NextMutableConfig(rel)
	assert.False(t, ok)
}

func TestConfigsToCloneIfSelfChanges(t *testing.T) {
	tr := New(nil)
	leaf, err := tr.NewSimple("p", "v2", "rtl", "dev", "REL1", "")
	require.NoError(t, err)
	top := mustComposite(t, tr, "p", "v", "REL3")
	mid := mustComposite(t, tr, "p", "v2", "REL2")
	dev := mustComposite(t, tr, "p", "v4", "dev")
	require.NoError(t, tr.AddChild(mid, leaf))
	require.NoError(t, tr.AddChild(top, mid))
	require.NoError(t, tr.AddChild(dev, mid))

	assert.Equal(t, []Key{top, mid}, tr.ConfigsToCloneIfSelfChanges(leaf))
	assert.Equal(t, []Key{top, mid, dev}, tr.ConfigsToCloneIfSelfChangesIncludingMutable(leaf))
	assert.Empty(t, tr.ConfigsToCloneIfSelfChanges(top))
}

func TestReport(t *testing.T) {
	_, tr, root := setupTree(t)

	assert.Equal(t, "p/v/root\n"+
		"\tp/v/ipspec/dev/REL1\n"+
		"\tp/v/rtl/dev\n"+
		"\tp/v2/sub\n"+
		"\t\tp/v2/rtl/dev\n", tr.Report(root))

	assert.Equal(t, "p/v/root\n"+
		"\tp/v2/sub\n", tr.Report(root, ShowSimple(false), NoHierarchy(true)))

	assert.Equal(t, "p/v/root\n"+
		"\tp/v/ipspec/dev/REL1 dev@REL1\n"+
		"\tp/v/rtl/dev dev\n"+
		"\tp/v2/sub\n"+
		"\t\tp/v2/rtl/dev dev\n", tr.Report(root, ShowLibraries(true)))

	assert.Equal(t, []string{`"p/v/root" -> "p/v2/sub";`}, tr.Dot(root))
}

func TestIndex(t *testing.T) {
	_, tr, root := setupTree(t)
	index := tr.ObjectsByLocation(root)

	assert.Equal(t, 5, index.Len())
	assert.Equal(t, []Location{
		{Project: "p", Variant: "v"},
		{Project: "p", Variant: "v", Libtype: "ipspec"},
		{Project: "p", Variant: "v", Libtype: "rtl"},
		{Project: "p", Variant: "v2"},
		{Project: "p", Variant: "v2", Libtype: "rtl"},
	}, index.Locations())
	assert.Equal(t, []Key{SimpleKey("p", "v", "rtl", "dev", "")}, index.At(Location{Project: "p", Variant: "v", Libtype: "rtl"}))
	assert.Equal(t, []Key{root}, index.At(Location{Project: "p", Variant: "v"}))
	assert.Empty(t, index.Clashes())
}

func TestValidateWithoutStore(t *testing.T) {
	tr, root := readinessTree(t)
	tr.preview = true
	problems, err := tr.Validate(context.Background(), root)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

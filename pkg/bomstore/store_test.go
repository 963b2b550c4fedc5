package bomstore

import (
	"context"
	"strings"
	"testing"

	"github.com/oneconcern/bommon/pkg/bomstore/status"
	"github.com/oneconcern/bommon/pkg/errors"
	"github.com/oneconcern/bommon/pkg/model"
	"github.com/oneconcern/bommon/pkg/storage/localfs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testProject = "i10"
	testVariant = "ar_lib"
	testLibtype = "rtl"
)

func setupStore(t testing.TB) *Store {
	t.Helper()

	s := New(localfs.New(afero.NewMemMapFs()), Blobs(localfs.New(afero.NewMemMapFs())))
	ctx := context.Background()
	require.NoError(t, s.CreateProject(ctx, testProject, "test project"))
	require.NoError(t, s.CreateVariant(ctx, testProject, testVariant, "test variant", testLibtype, "ipspec", testLibtype))
	return s
}

func TestProjectsAndVariants(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	assert.Equal(t, uint64(2), s.Writes())

	err := s.CreateProject(ctx, testProject, "again")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrExists))

	err = s.CreateVariant(ctx, "nope", "v1", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))

	err = s.CreateVariant(ctx, testProject, "Bad-Variant", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidName))

	vd, err := s.GetVariant(ctx, testProject, testVariant)
	require.NoError(t, err)
	assert.Equal(t, []string{"ipspec", "rtl"}, vd.Libtypes)

	require.NoError(t, s.AddLibtypes(ctx, testProject, testVariant, "bcmrbc"))
	has, err := s.LibtypeExists(ctx, testProject, testVariant, "bcmrbc")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = s.LibtypeExists(ctx, testProject, "nope", "rtl")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, s.CreateProject(ctx, "i20", ""))
	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"i10", "i20"}, projects)

	variants, err := s.ListVariants(ctx, testProject)
	require.NoError(t, err)
	assert.Equal(t, []string{testVariant}, variants)
}

func TestLibrariesAndReleases(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	err := s.CreateLibrary(ctx, testProject, testVariant, "oa", "dev", "", "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound), "libtype is not declared")

	require.NoError(t, s.CreateLibrary(ctx, testProject, testVariant, testLibtype, "dev", "development", "", ""))
	_, err = s.AddFile(ctx, testProject, testVariant, testLibtype, "dev", "top.v", strings.NewReader("module top;\nendmodule\n"))
	require.NoError(t, err)

	err = s.CreateRelease(ctx, testProject, testVariant, testLibtype, "dev", "1.0", "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidName))

	err = s.CreateRelease(ctx, testProject, testVariant, testLibtype, "missing", "REL1.0", "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))

	require.NoError(t, s.CreateRelease(ctx, testProject, testVariant, testLibtype, "dev", "REL1.0", "first release", ""))
	err = s.CreateRelease(ctx, testProject, testVariant, testLibtype, "dev", "REL1.0", "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrExists))

	// a release is frozen: later versions in the head do not show up
	_, err = s.AddFile(ctx, testProject, testVariant, testLibtype, "dev", "top.v", strings.NewReader("module top();\nendmodule\n"))
	require.NoError(t, err)

	released, err := s.ListFiles(ctx, testProject, testVariant, testLibtype, "dev", "REL1.0")
	require.NoError(t, err)
	require.Contains(t, released, "top.v")
	assert.Equal(t, 1, released["top.v"].Version)
	assert.Equal(t, "REL1.0", released["top.v"].Release)

	head, err := s.ListFiles(ctx, testProject, testVariant, testLibtype, "dev", "")
	require.NoError(t, err)
	assert.Equal(t, 2, head["top.v"].Version)

	require.NoError(t, s.CreateLibrary(ctx, testProject, testVariant, testLibtype, "bugfix", "", "dev", "REL1.0"))
	branched, err := s.ListFiles(ctx, testProject, testVariant, testLibtype, "bugfix", "")
	require.NoError(t, err)
	assert.Equal(t, 1, branched["top.v"].Version)
	assert.Equal(t, "bugfix", branched["top.v"].Library)
	assert.Equal(t, released["top.v"].Path(), branched["top.v"].Path(), "branches share file contents")

	libraries, err := s.ListLibraries(ctx, testProject, testVariant, testLibtype)
	require.NoError(t, err)
	assert.Equal(t, []string{"bugfix", "dev"}, libraries)

	releases, err := s.ListReleases(ctx, testProject, testVariant, testLibtype, "dev")
	require.NoError(t, err)
	assert.Equal(t, []string{"REL1.0"}, releases)

	sd, err := s.ReadSimple(ctx, testProject, testVariant, testLibtype, "dev", "REL1.0")
	require.NoError(t, err)
	assert.Equal(t, "first release", sd.Description)

	_, err = s.ReadSimple(ctx, testProject, testVariant, testLibtype, "dev", "REL2.0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))
}

func TestConfigs(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateLibrary(ctx, testProject, testVariant, testLibtype, "dev", "", "", ""))
	require.NoError(t, s.CreateConfig(ctx, testProject, testVariant, "dev", ""))
	require.NoError(t, s.CreateConfig(ctx, testProject, testVariant, "REL1.0", ""))

	err := s.CreateConfig(ctx, testProject, "nope", "dev", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))

	rtl := model.SimpleFullName(testProject, testVariant, testLibtype, "dev", "")
	missing := model.SimpleFullName(testProject, testVariant, testLibtype, "dev", "REL9")

	err = s.UpdateConfigChildren(ctx, testProject, testVariant, "dev", []string{missing}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))

	err = s.UpdateConfigChildren(ctx, testProject, testVariant, "dev", []string{"not/a"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidName))

	writes := s.Writes()
	require.NoError(t, s.UpdateConfigChildren(ctx, testProject, testVariant, "dev", nil, nil))
	assert.Equal(t, writes, s.Writes(), "an empty delta is not written")

	require.NoError(t, s.UpdateConfigChildren(ctx, testProject, testVariant, "dev", []string{rtl}, nil))
	cd, err := s.ReadComposite(ctx, testProject, testVariant, "dev")
	require.NoError(t, err)
	assert.Equal(t, []string{rtl}, cd.Children)

	// an immutable configuration is populated once
	require.NoError(t, s.UpdateConfigChildren(ctx, testProject, testVariant, "REL1.0", []string{rtl}, nil))
	err = s.UpdateConfigChildren(ctx, testProject, testVariant, "REL1.0", nil, []string{rtl})
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrImmutableUpdate))

	require.NoError(t, s.UpdateConfigChildren(ctx, testProject, testVariant, "dev", nil, []string{rtl}))
	cd, err = s.ReadComposite(ctx, testProject, testVariant, "dev")
	require.NoError(t, err)
	assert.Empty(t, cd.Children)

	require.NoError(t, s.UpdateConfigProperties(ctx, testProject, testVariant, "dev", map[string]string{"owner": "me"}))
	cd, err = s.ReadComposite(ctx, testProject, testVariant, "dev")
	require.NoError(t, err)
	assert.Equal(t, "me", cd.Properties["owner"])

	configs, err := s.ListConfigs(ctx, testProject, testVariant)
	require.NoError(t, err)
	assert.Equal(t, []string{"REL1.0", "dev"}, configs)
}

func TestFiles(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.AddFile(ctx, testProject, testVariant, testLibtype, "dev", "top.v", strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))

	require.NoError(t, s.CreateLibrary(ctx, testProject, testVariant, testLibtype, "dev", "", "", ""))

	_, err = s.AddFile(ctx, testProject, testVariant, testLibtype, "dev", "top#1.v", strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidPath))

	v1, err := s.AddFile(ctx, testProject, testVariant, testLibtype, "dev", "rtl/top.v", strings.NewReader("module top;\nendmodule\n"))
	require.NoError(t, err)
	assert.Equal(t, "i10/ar_lib/rtl/dev/rtl/top.v#1", v1.Path())
	assert.Equal(t, model.FileTypeText, v1.Type)
	assert.Equal(t, uint64(22), v1.Size)

	v2, err := s.AddFile(ctx, testProject, testVariant, testLibtype, "dev", "rtl/top.v", strings.NewReader("module top();\nendmodule\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, v2.Version)

	v3, err := s.AddFile(ctx, testProject, testVariant, testLibtype, "dev", "rtl/top.v", strings.NewReader("module top;\nendmodule\n"))
	require.NoError(t, err)

	bin, err := s.AddFile(ctx, testProject, testVariant, testLibtype, "dev", "top.gds", strings.NewReader("\x00\x01\x02\xff"))
	require.NoError(t, err)
	assert.Equal(t, model.FileTypeBinary, bin.Type)

	fileType, err := s.FileType(ctx, bin.Path())
	require.NoError(t, err)
	assert.Equal(t, model.FileTypeBinary, fileType)

	d1, err := s.FileDigest(ctx, v1.Path())
	require.NoError(t, err)
	d2, err := s.FileDigest(ctx, v2.Path())
	require.NoError(t, err)
	d3, err := s.FileDigest(ctx, v3.Path())
	require.NoError(t, err)
	assert.NotEqual(t, d1, d2)
	assert.Equal(t, d1, d3)
	assert.Len(t, d1, 128)

	diff, err := s.FileDiff(ctx, v1.Path(), v3.Path())
	require.NoError(t, err)
	assert.Empty(t, diff)

	diff, err = s.FileDiff(ctx, v1.Path(), v2.Path())
	require.NoError(t, err)
	assert.Contains(t, diff, "-module top;")
	assert.Contains(t, diff, "+module top();")

	_, err = s.FileDigest(ctx, "i10/ar_lib/rtl/dev/rtl/top.v#9")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))

	_, err = s.FileDigest(ctx, "i10/ar_lib/rtl/dev/rtl/top.v")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidPath))

	files, err := s.ListFiles(ctx, testProject, testVariant, testLibtype, "dev", "")
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Equal(t, 3, files["rtl/top.v"].Version)

	files, err = s.ListFiles(ctx, testProject, testVariant, testLibtype, "nope", "")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileDiffCollapsesKeywords(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateLibrary(ctx, testProject, testVariant, testLibtype, "dev", "", "", ""))

	add := func(content string) model.FileDescriptor {
		f, err := s.AddFile(ctx, testProject, testVariant, testLibtype, "dev", "top.v", strings.NewReader(content))
		require.NoError(t, err)
		return f
	}
	v1 := add("// $Id: top.v#1 $\nmodule top;\n")
	v2 := add("// $Id: top.v#2 $\nmodule top;\n")
	v3 := add("// $Id$\nmodule top;\n// $Author: someone $\n")

	d1, err := s.FileDigest(ctx, v1.Path())
	require.NoError(t, err)
	d2, err := s.FileDigest(ctx, v2.Path())
	require.NoError(t, err)
	assert.NotEqual(t, d1, d2)

	diff, err := s.FileDiff(ctx, v1.Path(), v2.Path())
	require.NoError(t, err)
	assert.Empty(t, diff)

	diff, err = s.FileDiff(ctx, v1.Path(), v3.Path())
	require.NoError(t, err)
	assert.Contains(t, diff, "+// $Author$")
	assert.NotContains(t, diff, "top.v#1 $")
}

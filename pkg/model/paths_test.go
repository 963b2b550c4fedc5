package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type archivePathFixture struct {
	name       string
	path       string
	wantsError bool
	expected   ArchivePathComponents
}

func archivePathTestCases() []archivePathFixture {
	return []archivePathFixture{
		// happy path
		{
			name: "project descriptor",
			path: GetArchivePathToProject("i10"),
			expected: ArchivePathComponents{
				Project:         "i10",
				ArchiveFileName: "project.yaml",
			},
		},
		{
			name: "variant descriptor",
			path: GetArchivePathToVariant("i10", "ar_lib"),
			expected: ArchivePathComponents{
				Project:         "i10",
				Variant:         "ar_lib",
				ArchiveFileName: "variant.yaml",
			},
		},
		{
			name: "config descriptor",
			path: GetArchivePathToConfig("i10", "ar_lib", "dev"),
			expected: ArchivePathComponents{
				Project:         "i10",
				Variant:         "ar_lib",
				Config:          "dev",
				ArchiveFileName: "config.yaml",
			},
		},
		{
			name: "library descriptor",
			path: GetArchivePathToLibrary("i10", "ar_lib", "rtl", "dev"),
			expected: ArchivePathComponents{
				Project:         "i10",
				Variant:         "ar_lib",
				Libtype:         "rtl",
				Library:         "dev",
				ArchiveFileName: "library.yaml",
			},
		},
		{
			name: "release descriptor",
			path: GetArchivePathToRelease("i10", "ar_lib", "rtl", "dev", "REL1.0"),
			expected: ArchivePathComponents{
				Project:         "i10",
				Variant:         "ar_lib",
				Libtype:         "rtl",
				Library:         "dev",
				Release:         "REL1.0",
				ArchiveFileName: "release.yaml",
			},
		},
		{
			name: "head files index",
			path: GetArchivePathToFileIndex("i10", "ar_lib", "rtl", "dev", ""),
			expected: ArchivePathComponents{
				Project:         "i10",
				Variant:         "ar_lib",
				Libtype:         "rtl",
				Library:         "dev",
				ArchiveFileName: "files.yaml",
			},
		},
		{
			name: "release files index",
			path: GetArchivePathToFileIndex("i10", "ar_lib", "rtl", "dev", "snap-1"),
			expected: ArchivePathComponents{
				Project:         "i10",
				Variant:         "ar_lib",
				Libtype:         "rtl",
				Library:         "dev",
				Release:         "snap-1",
				ArchiveFileName: "files.yaml",
			},
		},
		// error cases
		{
			name:       "unknown root",
			path:       "bundles/repo/bundle.yaml",
			wantsError: true,
		},
		{
			name:       "wrong project descriptor",
			path:       "projects/i10/repo.yaml",
			wantsError: true,
		},
		{
			name:       "missing variants element",
			path:       "projects/i10/other/ar_lib/variant.yaml",
			wantsError: true,
		},
		{
			name:       "config prefix only",
			path:       "configs/i10/ar_lib/",
			wantsError: true,
		},
		{
			name:       "wrong release descriptor",
			path:       "simples/i10/ar_lib/rtl/dev/releases/REL1/library.yaml",
			wantsError: true,
		},
		{
			name:       "wrong index file",
			path:       "files/i10/ar_lib/rtl/dev/_head/index.yaml",
			wantsError: true,
		},
	}
}

func TestGetArchivePathComponents(t *testing.T) {
	for _, toPin := range archivePathTestCases() {
		testcase := toPin
		t.Run(testcase.name, func(t *testing.T) {
			t.Parallel()
			apc, err := GetArchivePathComponents(testcase.path)
			if testcase.wantsError {
				require.Error(t, err)
				assert.Empty(t, apc)
			} else {
				require.NoError(t, err)
				assert.EqualValues(t, testcase.expected, apc)
			}
		})
	}
}

func TestFullName(t *testing.T) {
	for _, name := range []string{
		"i10/ar_lib/dev",
		"i10/ar_lib/rtl/dev",
		"i10/ar_lib/rtl/dev/REL1.0",
	} {
		fullName, err := ParseFullName(name)
		require.NoError(t, err)
		assert.Equal(t, name, fullName.String())
	}

	fullName, err := ParseFullName("i10/ar_lib/dev")
	require.NoError(t, err)
	assert.True(t, fullName.IsComposite())
	assert.Equal(t, "dev", fullName.Config)

	fullName, err = ParseFullName("i10/ar_lib/rtl/dev/REL1.0")
	require.NoError(t, err)
	assert.False(t, fullName.IsComposite())
	assert.Equal(t, FullName{Project: "i10", Variant: "ar_lib", Libtype: "rtl", Library: "dev", Release: "REL1.0"}, fullName)

	for _, name := range []string{"", "i10", "i10/ar_lib", "i10//dev", "a/b/c/d/e/f"} {
		_, err := ParseFullName(name)
		assert.Error(t, err, name)
	}
}

func TestFileVersionPath(t *testing.T) {
	path := GetPathToFileVersion(GetFileDirectory("i10", "ar_lib", "rtl", "dev"), "src/top.v", 3)
	assert.Equal(t, "i10/ar_lib/rtl/dev/src/top.v#3", path)

	file, version, err := ParseFileVersionPath(path)
	require.NoError(t, err)
	assert.Equal(t, "i10/ar_lib/rtl/dev/src/top.v", file)
	assert.Equal(t, 3, version)

	_, _, err = ParseFileVersionPath("i10/ar_lib/rtl/dev/src/top.v")
	assert.Error(t, err)
	_, _, err = ParseFileVersionPath("top.v#0")
	assert.Error(t, err)
	_, _, err = ParseFileVersionPath("top.v#x")
	assert.Error(t, err)

	assert.Equal(t, path, FileDescriptor{Directory: "i10/ar_lib/rtl/dev", Filename: "src/top.v", Version: 3}.Path())
}

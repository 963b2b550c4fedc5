package bomstore

import (
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"io/ioutil"
	"net/http"
	"regexp"
	"strings"

	"github.com/minio/blake2b-simd"
	"github.com/oneconcern/bommon/pkg/bomstore/status"
	"github.com/oneconcern/bommon/pkg/errors"
	"github.com/oneconcern/bommon/pkg/model"
	"github.com/oneconcern/bommon/pkg/storage"
	storagestatus "github.com/oneconcern/bommon/pkg/storage/status"
	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"
)

// sniffLen is the number of bytes inspected to tell text from binary content
const sniffLen = 512

// expandedKeywordRe matches expanded RCS keywords, such as "$Id: top.v#3 $"
var expandedKeywordRe = regexp.MustCompile(`\$(Id|Header|Date|DateTime|Change|File|Revision|Author):[^$\n]*\$`)

// collapseKeywords turns expanded RCS keywords back into their bare form ("$Id$")
func collapseKeywords(b []byte) []byte {
	return expandedKeywordRe.ReplaceAll(b, []byte("$$$1$$"))
}

// AddFile adds a new version of a file to the head of a library.
//
// The filename is relative to the library. The first version of a file is 1.
func (s *Store) AddFile(ctx context.Context, project, variant, libtype, library, filename string, content io.Reader) (model.FileDescriptor, error) {
	if filename == "" || strings.HasPrefix(filename, "/") || strings.Contains(filename, "#") {
		return model.FileDescriptor{}, status.ErrInvalidPath.Wrapf("invalid filename %q", filename)
	}
	exists, err := s.LibraryExists(ctx, project, variant, libtype, library)
	if err != nil {
		return model.FileDescriptor{}, err
	}
	if !exists {
		return model.FileDescriptor{}, status.ErrNotFound.Wrapf("library %s does not exist",
			model.SimpleFullName(project, variant, libtype, library, ""))
	}

	indexPath := model.GetArchivePathToFileIndex(project, variant, libtype, library, "")
	var index model.FileIndex
	if err = s.getDescriptor(ctx, indexPath, &index); err != nil && !errors.Is(err, status.ErrNotFound) {
		return model.FileDescriptor{}, err
	}

	b, err := ioutil.ReadAll(content)
	if err != nil {
		return model.FileDescriptor{}, err
	}
	file := model.FileDescriptor{
		Filename:  filename,
		Directory: model.GetFileDirectory(project, variant, libtype, library),
		Version:   1,
		Type:      sniffType(b),
		Library:   library,
		Size:      uint64(len(b)),
		Timestamp: now(),
	}
	if previous, ok := index.ByFilename()[filename]; ok {
		file.Version = previous.Version + 1
	}

	if err = s.putBlob(ctx, file.Path(), b); err != nil {
		return model.FileDescriptor{}, err
	}
	index.Put(file)
	if err = s.putDescriptor(ctx, indexPath, index, storage.OverWrite); err != nil {
		return model.FileDescriptor{}, err
	}
	s.l.Debug("file added", zap.String("path", file.Path()), zap.String("type", file.Type))
	return file, nil
}

// ListFiles returns the files of a release, or of the library head when release is empty, indexed by filename
func (s *Store) ListFiles(ctx context.Context, project, variant, libtype, library, release string) (map[string]model.FileDescriptor, error) {
	var index model.FileIndex
	err := s.getDescriptor(ctx, model.GetArchivePathToFileIndex(project, variant, libtype, library, release), &index)
	if err != nil && !errors.Is(err, status.ErrNotFound) {
		return nil, err
	}
	return index.ByFilename(), nil
}

// FileDigest computes a blake2b digest of a file version
func (s *Store) FileDigest(ctx context.Context, path string) (string, error) {
	rdr, err := s.getBlob(ctx, path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = rdr.Close()
	}()

	hasher := blake2b.New512()
	if _, err = io.Copy(hasher, rdr); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// FileType tells if a file version holds text or binary content
func (s *Store) FileType(ctx context.Context, path string) (string, error) {
	rdr, err := s.getBlob(ctx, path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = rdr.Close()
	}()

	b, err := ioutil.ReadAll(io.LimitReader(rdr, sniffLen))
	if err != nil {
		return "", err
	}
	return sniffType(b), nil
}

// FileDiff renders a unified diff between two file versions. It is empty when contents are equal
// once expanded RCS keywords are collapsed.
func (s *Store) FileDiff(ctx context.Context, pathA, pathB string) (string, error) {
	a, err := s.readBlob(ctx, pathA)
	if err != nil {
		return "", err
	}
	b, err := s.readBlob(ctx, pathB)
	if err != nil {
		return "", err
	}
	a, b = collapseKeywords(a), collapseKeywords(b)
	if bytes.Equal(a, b) {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: pathA,
		ToFile:   pathB,
		Context:  3,
	})
}

func (s *Store) getBlob(ctx context.Context, path string) (io.ReadCloser, error) {
	if _, _, err := model.ParseFileVersionPath(path); err != nil {
		return nil, status.ErrInvalidPath.Wrap(err)
	}
	rdr, err := s.blobs.Get(ctx, path)
	if err != nil {
		if errors.Is(err, storagestatus.ErrNotExists) {
			return nil, status.ErrNotFound.Wrapf("%s", path)
		}
		return nil, err
	}
	return rdr, nil
}

func (s *Store) readBlob(ctx context.Context, path string) ([]byte, error) {
	rdr, err := s.getBlob(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rdr.Close()
	}()
	return ioutil.ReadAll(rdr)
}

func sniffType(b []byte) string {
	if len(b) > sniffLen {
		b = b[:sniffLen]
	}
	if len(b) == 0 || strings.HasPrefix(http.DetectContentType(b), "text/") {
		return model.FileTypeText
	}
	return model.FileTypeBinary
}

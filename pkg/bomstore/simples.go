package bomstore

import (
	"context"

	"github.com/oneconcern/bommon/pkg/bomstore/status"
	"github.com/oneconcern/bommon/pkg/errors"
	"github.com/oneconcern/bommon/pkg/model"
	"github.com/oneconcern/bommon/pkg/storage"
	"go.uber.org/zap"
)

// LibraryExists tells if a library exists
func (s *Store) LibraryExists(ctx context.Context, project, variant, libtype, library string) (bool, error) {
	return s.has(ctx, model.GetArchivePathToLibrary(project, variant, libtype, library))
}

// ReleaseExists tells if a release of a library exists
func (s *Store) ReleaseExists(ctx context.Context, project, variant, libtype, library, release string) (bool, error) {
	return s.has(ctx, model.GetArchivePathToRelease(project, variant, libtype, library, release))
}

// CreateLibrary creates a new library for a libtype declared by a variant.
//
// When srcLibrary is set, the new library is branched from the head of that library,
// or from one of its releases when srcRelease is set too.
func (s *Store) CreateLibrary(ctx context.Context, project, variant, libtype, library, description, srcLibrary, srcRelease string) error {
	if err := model.ValidateLibraryName(library); err != nil {
		return status.ErrInvalidName.Wrap(err)
	}
	if err := s.requireLibtype(ctx, project, variant, libtype); err != nil {
		return err
	}

	var index model.FileIndex
	if srcLibrary != "" {
		files, err := s.ListFiles(ctx, project, variant, libtype, srcLibrary, srcRelease)
		if err != nil {
			return err
		}
		index = branchIndex(files, library, "")
	}

	s.l.Info("creating library",
		zap.String("library", model.SimpleFullName(project, variant, libtype, library, "")),
		zap.String("from", srcLibrary),
		zap.String("release", srcRelease),
	)
	err := s.putDescriptor(ctx, model.GetArchivePathToLibrary(project, variant, libtype, library), model.LibraryDescriptor{
		Project:       project,
		Variant:       variant,
		Libtype:       libtype,
		Name:          library,
		Description:   description,
		SourceLibrary: srcLibrary,
		SourceRelease: srcRelease,
		Timestamp:     now(),
	}, storage.IfNotPresent)
	if err != nil {
		return err
	}
	if len(index.Files) == 0 {
		return nil
	}
	return s.putDescriptor(ctx, model.GetArchivePathToFileIndex(project, variant, libtype, library, ""), index, storage.OverWrite)
}

// CreateRelease freezes the current head of a library, or one of its existing releases when srcRelease is set,
// into a new release.
func (s *Store) CreateRelease(ctx context.Context, project, variant, libtype, library, release, description, srcRelease string) error {
	if err := model.ValidateReleaseName(release); err != nil {
		return status.ErrInvalidName.Wrap(err)
	}
	exists, err := s.LibraryExists(ctx, project, variant, libtype, library)
	if err != nil {
		return err
	}
	if !exists {
		return status.ErrNotFound.Wrapf("cannot create a release on a non-existing library: %s",
			model.SimpleFullName(project, variant, libtype, library, ""))
	}
	files, err := s.ListFiles(ctx, project, variant, libtype, library, srcRelease)
	if err != nil {
		return err
	}

	s.l.Info("creating release",
		zap.String("release", model.SimpleFullName(project, variant, libtype, library, release)),
		zap.Int("files", len(files)),
	)
	err = s.putDescriptor(ctx, model.GetArchivePathToRelease(project, variant, libtype, library, release), model.ReleaseDescriptor{
		Project:     project,
		Variant:     variant,
		Libtype:     libtype,
		Library:     library,
		Name:        release,
		Description: description,
		Timestamp:   now(),
	}, storage.IfNotPresent)
	if err != nil {
		return err
	}
	return s.putDescriptor(ctx,
		model.GetArchivePathToFileIndex(project, variant, libtype, library, release),
		branchIndex(files, library, release), storage.IfNotPresent)
}

// GetLibrary reads a library descriptor
func (s *Store) GetLibrary(ctx context.Context, project, variant, libtype, library string) (model.LibraryDescriptor, error) {
	var ld model.LibraryDescriptor
	err := s.getDescriptor(ctx, model.GetArchivePathToLibrary(project, variant, libtype, library), &ld)
	return ld, err
}

// GetRelease reads a release descriptor
func (s *Store) GetRelease(ctx context.Context, project, variant, libtype, library, release string) (model.ReleaseDescriptor, error) {
	var rd model.ReleaseDescriptor
	err := s.getDescriptor(ctx, model.GetArchivePathToRelease(project, variant, libtype, library, release), &rd)
	return rd, err
}

// ReadSimple reads the metadata of a library, or of a release when release is not empty
func (s *Store) ReadSimple(ctx context.Context, project, variant, libtype, library, release string) (model.SimpleDescriptor, error) {
	sd := model.SimpleDescriptor{
		Project: project,
		Variant: variant,
		Libtype: libtype,
		Library: library,
		Release: release,
	}
	if release == "" {
		ld, err := s.GetLibrary(ctx, project, variant, libtype, library)
		if err != nil {
			return model.SimpleDescriptor{}, err
		}
		sd.Description = ld.Description
		return sd, nil
	}
	rd, err := s.GetRelease(ctx, project, variant, libtype, library, release)
	if err != nil {
		return model.SimpleDescriptor{}, err
	}
	sd.Description = rd.Description
	return sd, nil
}

// ListLibraries returns the names of all libraries of a libtype, sorted
func (s *Store) ListLibraries(ctx context.Context, project, variant, libtype string) ([]string, error) {
	return s.folded(ctx, model.GetArchivePathPrefixToLibraries(project, variant, libtype))
}

// ListReleases returns the names of all releases of a library, sorted
func (s *Store) ListReleases(ctx context.Context, project, variant, libtype, library string) ([]string, error) {
	return s.folded(ctx, model.GetArchivePathPrefixToReleases(project, variant, libtype, library))
}

func (s *Store) requireLibtype(ctx context.Context, project, variant, libtype string) error {
	vd, err := s.GetVariant(ctx, project, variant)
	if err != nil {
		if errors.Is(err, status.ErrNotFound) {
			return status.ErrNotFound.Wrapf("variant %s does not exist in project %s", variant, project)
		}
		return err
	}
	if !vd.HasLibtype(libtype) {
		return status.ErrNotFound.Wrapf("libtype %s does not exist in %s/%s", libtype, project, variant)
	}
	return nil
}

// branchIndex copies a file index for a new library or release. File contents are shared.
func branchIndex(files map[string]model.FileDescriptor, library, release string) model.FileIndex {
	var index model.FileIndex
	for _, file := range files {
		file.Library = library
		file.Release = release
		index.Put(file)
	}
	return index
}

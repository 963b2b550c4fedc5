package bomstore

import (
	"context"
	"sort"

	"github.com/oneconcern/bommon/pkg/bomstore/status"
	"github.com/oneconcern/bommon/pkg/errors"
	"github.com/oneconcern/bommon/pkg/model"
	"github.com/oneconcern/bommon/pkg/storage"
	"go.uber.org/zap"
)

// ProjectExists tells if a project exists
func (s *Store) ProjectExists(ctx context.Context, project string) (bool, error) {
	return s.has(ctx, model.GetArchivePathToProject(project))
}

// CreateProject creates a new project
func (s *Store) CreateProject(ctx context.Context, project, description string) error {
	if err := model.ValidateProjectName(project); err != nil {
		return status.ErrInvalidName.Wrap(err)
	}
	s.l.Info("creating project", zap.String("project", project))
	return s.putDescriptor(ctx, model.GetArchivePathToProject(project), model.ProjectDescriptor{
		Name:        project,
		Description: description,
		Timestamp:   now(),
	}, storage.IfNotPresent)
}

// GetProject reads a project descriptor
func (s *Store) GetProject(ctx context.Context, project string) (model.ProjectDescriptor, error) {
	var pd model.ProjectDescriptor
	err := s.getDescriptor(ctx, model.GetArchivePathToProject(project), &pd)
	return pd, err
}

// ListProjects returns all project names, sorted
func (s *Store) ListProjects(ctx context.Context) ([]string, error) {
	return s.folded(ctx, model.GetArchivePathToProjects())
}

// VariantExists tells if a variant exists in a project
func (s *Store) VariantExists(ctx context.Context, project, variant string) (bool, error) {
	return s.has(ctx, model.GetArchivePathToVariant(project, variant))
}

// CreateVariant creates a new variant in an existing project, declaring some libtypes
func (s *Store) CreateVariant(ctx context.Context, project, variant, description string, libtypes ...string) error {
	if err := model.ValidateVariantName(variant); err != nil {
		return status.ErrInvalidName.Wrap(err)
	}
	for _, libtype := range libtypes {
		if err := model.ValidateLibtypeName(libtype); err != nil {
			return status.ErrInvalidName.Wrap(err)
		}
	}
	exists, err := s.ProjectExists(ctx, project)
	if err != nil {
		return err
	}
	if !exists {
		return status.ErrNotFound.Wrapf("project %s does not exist", project)
	}
	s.l.Info("creating variant", zap.String("project", project), zap.String("variant", variant))
	return s.putDescriptor(ctx, model.GetArchivePathToVariant(project, variant), model.VariantDescriptor{
		Project:     project,
		Name:        variant,
		Description: description,
		Libtypes:    uniqueSorted(libtypes),
		Timestamp:   now(),
	}, storage.IfNotPresent)
}

// GetVariant reads a variant descriptor
func (s *Store) GetVariant(ctx context.Context, project, variant string) (model.VariantDescriptor, error) {
	var vd model.VariantDescriptor
	err := s.getDescriptor(ctx, model.GetArchivePathToVariant(project, variant), &vd)
	return vd, err
}

// AddLibtypes declares more libtypes on an existing variant
func (s *Store) AddLibtypes(ctx context.Context, project, variant string, libtypes ...string) error {
	for _, libtype := range libtypes {
		if err := model.ValidateLibtypeName(libtype); err != nil {
			return status.ErrInvalidName.Wrap(err)
		}
	}
	vd, err := s.GetVariant(ctx, project, variant)
	if err != nil {
		return err
	}
	vd.Libtypes = uniqueSorted(append(vd.Libtypes, libtypes...))
	return s.putDescriptor(ctx, model.GetArchivePathToVariant(project, variant), vd, storage.OverWrite)
}

// LibtypeExists tells if a variant declares a libtype
func (s *Store) LibtypeExists(ctx context.Context, project, variant, libtype string) (bool, error) {
	vd, err := s.GetVariant(ctx, project, variant)
	if err != nil {
		if errors.Is(err, status.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return vd.HasLibtype(libtype), nil
}

// ListVariants returns all variant names in a project, sorted
func (s *Store) ListVariants(ctx context.Context, project string) ([]string, error) {
	return s.folded(ctx, model.GetArchivePathPrefixToVariants(project))
}

func uniqueSorted(values []string) []string {
	set := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := set[v]; ok {
			continue
		}
		set[v] = struct{}{}
		result = append(result, v)
	}
	sort.Strings(result)
	return result
}

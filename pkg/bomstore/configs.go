package bomstore

import (
	"context"

	"github.com/oneconcern/bommon/pkg/bomstore/status"
	"github.com/oneconcern/bommon/pkg/model"
	"github.com/oneconcern/bommon/pkg/storage"
	"go.uber.org/zap"
)

// ConfigExists tells if a composite configuration exists
func (s *Store) ConfigExists(ctx context.Context, project, variant, config string) (bool, error) {
	return s.has(ctx, model.GetArchivePathToConfig(project, variant, config))
}

// CreateConfig creates a new, empty composite configuration in an existing variant
func (s *Store) CreateConfig(ctx context.Context, project, variant, config, description string) error {
	if err := model.ValidateConfigName(config); err != nil {
		return status.ErrInvalidName.Wrap(err)
	}
	if err := s.requireVariant(ctx, project, variant); err != nil {
		return err
	}
	s.l.Info("creating configuration", zap.String("config", model.CompositeFullName(project, variant, config)))
	return s.putDescriptor(ctx, model.GetArchivePathToConfig(project, variant, config), model.ConfigDescriptor{
		Project:     project,
		Variant:     variant,
		Name:        config,
		Description: description,
		Timestamp:   now(),
	}, storage.IfNotPresent)
}

// ReadComposite reads a composite configuration descriptor
func (s *Store) ReadComposite(ctx context.Context, project, variant, config string) (model.ConfigDescriptor, error) {
	var cd model.ConfigDescriptor
	err := s.getDescriptor(ctx, model.GetArchivePathToConfig(project, variant, config), &cd)
	return cd, err
}

// UpdateConfigChildren applies a delta to the children of a composite configuration.
//
// Children are given as full names, and must exist. An immutable configuration may only
// be populated once, when it has no children yet.
func (s *Store) UpdateConfigChildren(ctx context.Context, project, variant, config string, added, removed []string) error {
	if len(added) == 0 && len(removed) == 0 {
		return nil
	}
	cd, err := s.ReadComposite(ctx, project, variant, config)
	if err != nil {
		return err
	}
	if model.IsImmutableName(config) && len(cd.Children) > 0 {
		return status.ErrImmutableUpdate.Wrapf("%s", model.CompositeFullName(project, variant, config))
	}
	for _, child := range added {
		if err := s.requireFullName(ctx, child); err != nil {
			return err
		}
	}
	cd.ApplyChildren(added, removed)
	s.l.Info("updating configuration",
		zap.String("config", model.CompositeFullName(project, variant, config)),
		zap.Strings("added", added),
		zap.Strings("removed", removed),
	)
	return s.putDescriptor(ctx, model.GetArchivePathToConfig(project, variant, config), cd, storage.OverWrite)
}

// UpdateConfigProperties replaces the user properties of a composite configuration
func (s *Store) UpdateConfigProperties(ctx context.Context, project, variant, config string, properties map[string]string) error {
	cd, err := s.ReadComposite(ctx, project, variant, config)
	if err != nil {
		return err
	}
	cd.Properties = make(map[string]string, len(properties))
	for k, v := range properties {
		cd.Properties[k] = v
	}
	return s.putDescriptor(ctx, model.GetArchivePathToConfig(project, variant, config), cd, storage.OverWrite)
}

// ListConfigs returns the names of all composite configurations in a variant, sorted
func (s *Store) ListConfigs(ctx context.Context, project, variant string) ([]string, error) {
	return s.folded(ctx, model.GetArchivePathPrefixToConfigs(project, variant))
}

func (s *Store) requireVariant(ctx context.Context, project, variant string) error {
	exists, err := s.VariantExists(ctx, project, variant)
	if err != nil {
		return err
	}
	if !exists {
		return status.ErrNotFound.Wrapf("variant %s does not exist in project %s", variant, project)
	}
	return nil
}

// requireFullName checks that a configuration, library or release exists
func (s *Store) requireFullName(ctx context.Context, fullName string) error {
	name, err := model.ParseFullName(fullName)
	if err != nil {
		return status.ErrInvalidName.Wrap(err)
	}
	var exists bool
	switch {
	case name.IsComposite():
		exists, err = s.ConfigExists(ctx, name.Project, name.Variant, name.Config)
	case name.Release == "":
		exists, err = s.LibraryExists(ctx, name.Project, name.Variant, name.Libtype, name.Library)
	default:
		exists, err = s.ReleaseExists(ctx, name.Project, name.Variant, name.Libtype, name.Library, name.Release)
	}
	if err != nil {
		return err
	}
	if !exists {
		return status.ErrNotFound.Wrapf("%s does not exist", fullName)
	}
	return nil
}

// Package status exports errors produced by the bomstore package.
package status

import (
	"github.com/oneconcern/bommon/pkg/errors"
)

var (
	// ErrNotFound indicates that a project, variant, libtype, configuration, library, release or file was not found
	ErrNotFound = errors.New("not found")

	// ErrExists indicates that an object with the same name already exists
	ErrExists = errors.New("already exists")

	// ErrImmutableUpdate indicates an attempt to change the children of an immutable configuration
	ErrImmutableUpdate = errors.New("cannot update immutable configuration")

	// ErrInvalidName indicates a name that does not comply with naming rules
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidPath indicates a malformed file content address
	ErrInvalidPath = errors.New("invalid file path")
)

// Package status exports errors produced by the tree package.
package status

import (
	"github.com/oneconcern/bommon/pkg/errors"
)

var (
	// ErrLocationClash indicates that two configurations occupy the same location
	ErrLocationClash = errors.New("location clash")

	// ErrForeignReference indicates a library or release that is not local to its parent configuration
	ErrForeignReference = errors.New("foreign reference")

	// ErrImmutableContainsMutable indicates a mutable object within an immutable configuration
	ErrImmutableContainsMutable = errors.New("immutable configuration contains a mutable object")

	// ErrSameObject indicates an attempt to replace an object by itself
	ErrSameObject = errors.New("source and destination objects are the same")

	// ErrInvalidName indicates a name that does not comply with naming rules
	ErrInvalidName = errors.New("invalid name")

	// ErrCycle indicates that adding a child would make a configuration contain itself
	ErrCycle = errors.New("configuration would contain itself")

	// ErrNotComposite indicates an operation that only applies to composite configurations
	ErrNotComposite = errors.New("not a composite configuration")

	// ErrAlreadyExists indicates that the target of a clone already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotFound indicates an object missing from the tree or from the store
	ErrNotFound = errors.New("not found")

	// ErrValidationFailed aggregates all problems found when validating a configuration
	ErrValidationFailed = errors.New("validation failed")

	// ErrImmutableUpdate indicates an attempt to save changes to an immutable configuration already in the store
	ErrImmutableUpdate = errors.New("cannot update immutable configuration")
)

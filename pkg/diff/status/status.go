// Package status exports errors produced by the diff package.
package status

import (
	"github.com/oneconcern/bommon/pkg/errors"
)

var (
	// ErrSingleSided indicates a comparison attempted on a pair with only one side populated
	ErrSingleSided = errors.New("tried to diff a pair but at least one side is empty")

	// ErrNotComposite indicates a comparison root that is not a composite configuration
	ErrNotComposite = errors.New("comparison roots must be composite configurations")

	// ErrFiles indicates a failure to retrieve or compare file contents
	ErrFiles = errors.New("cannot compare files")
)

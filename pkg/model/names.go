package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/segmentio/ksuid"
	"go.uber.org/multierr"
)

const (
	// ReleasedPrefix marks released configurations
	ReleasedPrefix = "REL"

	// PreleasedPrefix marks pre-released configurations
	PreleasedPrefix = "PREL"

	// SnapPrefix marks snapshot configurations
	SnapPrefix = "snap-"
)

var (
	// ImmutablePrefixes lists the name prefixes of frozen configurations, libraries releases included
	ImmutablePrefixes = []string{ReleasedPrefix, PreleasedPrefix, SnapPrefix}

	whitespaceRe       = regexp.MustCompile(`\s`)
	specialCharRe      = regexp.MustCompile(`[^\w]`)
	capitalRe          = regexp.MustCompile(`[A-Z]`)
	startsWithLetterRe = regexp.MustCompile(`^[a-z]`)
	endsWithAlnumRe    = regexp.MustCompile(`[a-z0-9]$`)
)

// IsImmutableName tells if a name denotes a frozen object
func IsImmutableName(name string) bool {
	for _, prefix := range ImmutablePrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// IsReleasedName tells if a name denotes a REL object
func IsReleasedName(name string) bool {
	return strings.HasPrefix(name, ReleasedPrefix)
}

// IsPreleasedName tells if a name denotes a PREL object.
//
// A REL object is considered pre-released too, unless strict is set.
func IsPreleasedName(name string, strict bool) bool {
	if strict {
		return strings.HasPrefix(name, PreleasedPrefix)
	}
	return strings.HasPrefix(name, PreleasedPrefix) || strings.HasPrefix(name, ReleasedPrefix)
}

// NewSnapName generates a unique snapshot name
func NewSnapName() string {
	return SnapPrefix + ksuid.New().String()
}

func validatePathElement(kind, name string) error {
	var err error
	switch {
	case name == "":
		return fmt.Errorf("%s name is empty", kind)
	case whitespaceRe.MatchString(name):
		err = multierr.Append(err, fmt.Errorf("%s name %s contains whitespace character(s)", kind, name))
	}
	if strings.ContainsAny(name, "/#") {
		err = multierr.Append(err, fmt.Errorf("%s name %s contains a reserved character ('/' or '#')", kind, name))
	}
	return err
}

// ValidateProjectName checks a project name
func ValidateProjectName(name string) error {
	return validatePathElement("project", name)
}

// ValidateVariantName checks a variant name: lower case letters, digits and underscores,
// starting with a letter and ending with a letter or a digit.
func ValidateVariantName(name string) error {
	if name == "" {
		return fmt.Errorf("variant name is empty")
	}
	var err error
	if specialCharRe.MatchString(name) {
		err = multierr.Append(err, fmt.Errorf("variant name %s contains invalid character(s): only letters, digits or underscore are allowed", name))
	}
	if !startsWithLetterRe.MatchString(name) {
		err = multierr.Append(err, fmt.Errorf("variant name %s must start with a letter", name))
	}
	if !endsWithAlnumRe.MatchString(name) {
		err = multierr.Append(err, fmt.Errorf("variant name %s must end with a letter or a digit", name))
	}
	if capitalRe.MatchString(name) {
		err = multierr.Append(err, fmt.Errorf("variant name %s contains capital character(s)", name))
	}
	return err
}

// ValidateLibtypeName checks a libtype (deliverable) name
func ValidateLibtypeName(name string) error {
	return validatePathElement("libtype", name)
}

// ValidateLibraryName checks a library name
func ValidateLibraryName(name string) error {
	return validatePathElement("library", name)
}

// ValidateConfigName checks a configuration name
func ValidateConfigName(name string) error {
	return validatePathElement("config", name)
}

// ValidateReleaseName checks a release name, which must carry an immutable prefix
func ValidateReleaseName(name string) error {
	if err := validatePathElement("release", name); err != nil {
		return err
	}
	if !IsImmutableName(name) {
		return fmt.Errorf("%s is not a valid release name. It must start with (%s)", name, strings.Join(ImmutablePrefixes, ", "))
	}
	return nil
}

// ParseVersion checks and converts a file version number. Versions start at 1.
func ParseVersion(version string) (int, error) {
	v, err := strconv.Atoi(version)
	if err != nil {
		return 0, fmt.Errorf("version %s is not a number", version)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%d is not a valid version number. Version numbers must be greater than 0", v)
	}
	return v, nil
}

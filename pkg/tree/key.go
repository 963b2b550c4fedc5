package tree

import (
	"sort"
	"strings"

	"github.com/oneconcern/bommon/pkg/model"
)

// Kind tells composite configurations from simple ones
type Kind uint8

const (
	// Composite configurations hold other configurations
	Composite Kind = iota + 1

	// Simple configurations bind a libtype to a library, or to a release of that library
	Simple
)

func (k Kind) String() string {
	switch k {
	case Composite:
		return "composite"
	case Simple:
		return "simple"
	default:
		return "unknown"
	}
}

// Key identifies a node. Equal keys denote the same node.
//
// The config name of a simple node is its release when set, its library otherwise.
type Key struct {
	Kind    Kind
	Project string
	Variant string
	Libtype string
	Library string
	Release string
	Config  string
}

// CompositeKey builds the key of a composite configuration
func CompositeKey(project, variant, config string) Key {
	return Key{Kind: Composite, Project: project, Variant: variant, Config: config}
}

// SimpleKey builds the key of a library, or of a release of that library when release is not empty
func SimpleKey(project, variant, libtype, library, release string) Key {
	config := release
	if config == "" {
		config = library
	}
	return Key{
		Kind:    Simple,
		Project: project,
		Variant: variant,
		Libtype: libtype,
		Library: library,
		Release: release,
		Config:  config,
	}
}

// KeyFromFullName parses the full name of a configuration, library or release
func KeyFromFullName(fullName string) (Key, error) {
	name, err := model.ParseFullName(fullName)
	if err != nil {
		return Key{}, err
	}
	if name.IsComposite() {
		return CompositeKey(name.Project, name.Variant, name.Config), nil
	}
	return SimpleKey(name.Project, name.Variant, name.Libtype, name.Library, name.Release), nil
}

// IsComposite tells if the key refers to a composite configuration
func (k Key) IsComposite() bool {
	return k.Kind == Composite
}

// IsLibrary tells if the key refers to the head of a library
func (k Key) IsLibrary() bool {
	return k.Kind == Simple && k.Release == ""
}

// IsRelease tells if the key refers to a release
func (k Key) IsRelease() bool {
	return k.Kind == Simple && k.Release != ""
}

// IsMutable tells if the node may be modified. This only depends on its config name.
func (k Key) IsMutable() bool {
	return !model.IsImmutableName(k.Config)
}

// Location of the node, ignoring its config name
func (k Key) Location() Location {
	if k.IsComposite() {
		return Location{Project: k.Project, Variant: k.Variant}
	}
	return Location{Project: k.Project, Variant: k.Variant, Libtype: k.Libtype}
}

// IsLocal tells if other belongs to the same project and variant
func (k Key) IsLocal(other Key) bool {
	return k.Project == other.Project && k.Variant == other.Variant
}

// FullName formats the key as project/variant/config, project/variant/libtype/library
// or project/variant/libtype/library/release
func (k Key) FullName() string {
	if k.IsComposite() {
		return model.CompositeFullName(k.Project, k.Variant, k.Config)
	}
	return model.SimpleFullName(k.Project, k.Variant, k.Libtype, k.Library, k.Release)
}

func (k Key) String() string {
	return k.FullName()
}

// Location identifies the slot a configuration occupies: (project, variant) for composites
// and (project, variant, libtype) for simple configurations.
type Location struct {
	Project string
	Variant string
	Libtype string
}

func (l Location) String() string {
	if l.Libtype == "" {
		return l.Project + "/" + l.Variant
	}
	return strings.Join([]string{l.Project, l.Variant, l.Libtype}, "/")
}

// SortKeys sorts keys by full name, composites first on ties
func SortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].FullName() != keys[j].FullName() {
			return keys[i].FullName() < keys[j].FullName()
		}
		return keys[i].Kind < keys[j].Kind
	})
}

type keySet map[Key]struct{}

func (s keySet) add(k Key) {
	s[k] = struct{}{}
}

func (s keySet) has(k Key) bool {
	_, ok := s[k]
	return ok
}

func (s keySet) clone() keySet {
	c := make(keySet, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}

func (s keySet) equal(other keySet) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if !other.has(k) {
			return false
		}
	}
	return true
}

// sorted lists the set in a deterministic order
func (s keySet) sorted() []Key {
	keys := make([]Key, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	SortKeys(keys)
	return keys
}

// minus lists the keys in s that are not in other
func (s keySet) minus(other keySet) []Key {
	var keys []Key
	for k := range s {
		if !other.has(k) {
			keys = append(keys, k)
		}
	}
	SortKeys(keys)
	return keys
}

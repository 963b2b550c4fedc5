package model

import (
	"sort"
	"time"
)

// ProjectDescriptor describes a project
type ProjectDescriptor struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Timestamp   time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	_           struct{}
}

// VariantDescriptor describes a variant (IP) of a project, with the libtypes it may hold
type VariantDescriptor struct {
	Project     string    `json:"project" yaml:"project"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Libtypes    []string  `json:"libtypes,omitempty" yaml:"libtypes,omitempty"`
	Timestamp   time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	_           struct{}
}

// HasLibtype tells if the variant declares a libtype
func (v VariantDescriptor) HasLibtype(libtype string) bool {
	for _, l := range v.Libtypes {
		if l == libtype {
			return true
		}
	}
	return false
}

// ConfigDescriptor describes a composite configuration.
//
// Children are full names of other configurations, libraries or releases (see ParseFullName).
type ConfigDescriptor struct {
	Project     string            `json:"project" yaml:"project"`
	Variant     string            `json:"variant" yaml:"variant"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Children    []string          `json:"children,omitempty" yaml:"children,omitempty"`
	Properties  map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
	Timestamp   time.Time         `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	_           struct{}
}

// ApplyChildren adds then removes children full names. The result is sorted.
func (c *ConfigDescriptor) ApplyChildren(added, removed []string) {
	set := make(map[string]struct{}, len(c.Children)+len(added))
	for _, child := range c.Children {
		set[child] = struct{}{}
	}
	for _, child := range removed {
		delete(set, child)
	}
	for _, child := range added {
		set[child] = struct{}{}
	}
	children := make([]string, 0, len(set))
	for child := range set {
		children = append(children, child)
	}
	sort.Strings(children)
	c.Children = children
}

// LibraryDescriptor describes a library, i.e. the mutable head of a deliverable.
//
// A library branched from another one records its source.
type LibraryDescriptor struct {
	Project       string    `json:"project" yaml:"project"`
	Variant       string    `json:"variant" yaml:"variant"`
	Libtype       string    `json:"libtype" yaml:"libtype"`
	Name          string    `json:"name" yaml:"name"`
	Description   string    `json:"description,omitempty" yaml:"description,omitempty"`
	SourceLibrary string    `json:"sourceLibrary,omitempty" yaml:"sourceLibrary,omitempty"`
	SourceRelease string    `json:"sourceRelease,omitempty" yaml:"sourceRelease,omitempty"`
	Timestamp     time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	_             struct{}
}

// ReleaseDescriptor describes a frozen snapshot of a library
type ReleaseDescriptor struct {
	Project     string    `json:"project" yaml:"project"`
	Variant     string    `json:"variant" yaml:"variant"`
	Libtype     string    `json:"libtype" yaml:"libtype"`
	Library     string    `json:"library" yaml:"library"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Timestamp   time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	_           struct{}
}

// SimpleDescriptor is the metadata of a library or release, as read by a configuration tree
type SimpleDescriptor struct {
	Project     string `json:"project" yaml:"project"`
	Variant     string `json:"variant" yaml:"variant"`
	Libtype     string `json:"libtype" yaml:"libtype"`
	Library     string `json:"library" yaml:"library"`
	Release     string `json:"release,omitempty" yaml:"release,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	_           struct{}
}

// File types reported by a configuration store
const (
	FileTypeText   = "text"
	FileTypeBinary = "binary"
)

// FileDescriptor describes one version of a file in a library or release.
//
// Filename is relative to the library. Directory locates the content of all versions of the file.
type FileDescriptor struct {
	Filename  string    `json:"filename" yaml:"filename"`
	Directory string    `json:"directory" yaml:"directory"`
	Version   int       `json:"version" yaml:"version"`
	Type      string    `json:"type,omitempty" yaml:"type,omitempty"`
	Library   string    `json:"library" yaml:"library"`
	Release   string    `json:"release,omitempty" yaml:"release,omitempty"`
	Size      uint64    `json:"size" yaml:"size"`
	Timestamp time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	_         struct{}
}

// Path yields the content address of this file version
func (f FileDescriptor) Path() string {
	return GetPathToFileVersion(f.Directory, f.Filename, f.Version)
}

// FileIndex lists the files of a library or release
type FileIndex struct {
	Files []FileDescriptor `json:"files" yaml:"files"`
	_     struct{}
}

// ByFilename indexes files by their name
func (i FileIndex) ByFilename() map[string]FileDescriptor {
	m := make(map[string]FileDescriptor, len(i.Files))
	for _, f := range i.Files {
		m[f.Filename] = f
	}
	return m
}

// Put adds or replaces a file, keeping the index sorted by filename
func (i *FileIndex) Put(file FileDescriptor) {
	for j := range i.Files {
		if i.Files[j].Filename == file.Filename {
			i.Files[j] = file
			return
		}
	}
	i.Files = append(i.Files, file)
	sort.Slice(i.Files, func(a, b int) bool { return i.Files[a].Filename < i.Files[b].Filename })
}

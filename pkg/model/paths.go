package model

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// descriptor files (object metadata)
	projectDescriptorFile = "project.yaml"
	variantDescriptorFile = "variant.yaml"
	configDescriptorFile  = "config.yaml"
	libraryDescriptorFile = "library.yaml"
	releaseDescriptorFile = "release.yaml"

	// file index files
	filesIndexFile = "files.yaml"

	// HeadDirectory holds the file index of a library head
	HeadDirectory = "_head"
)

// ArchivePathComponents defines the unique path parts to retrieve a metadata object
type ArchivePathComponents struct {
	Project         string
	Variant         string
	Libtype         string
	Library         string
	Release         string
	Config          string
	ArchiveFileName string
}

// GetArchivePathComponents yields all metadata components from a parsed archive path.
func GetArchivePathComponents(archivePath string) (ArchivePathComponents, error) {
	const (
		projectPos = 2 // as in: projects/{project}/project.yaml
		variantPos = 4 // as in: projects/{project}/variants/{variant}/variant.yaml
		configPos  = 4 // as in: configs/{project}/{variant}/{config}/config.yaml
		libraryPos = 5 // as in: simples/{project}/{variant}/{libtype}/{library}/library.yaml
		releasePos = 7 // as in: simples/{project}/{variant}/{libtype}/{library}/releases/{release}/release.yaml
		indexPos   = 6 // as in: files/{project}/{variant}/{libtype}/{library}/{release|_head}/files.yaml
	)
	cs := strings.Split(archivePath, "/")
	invalid := func(expected string) (ArchivePathComponents, error) {
		return ArchivePathComponents{},
			fmt.Errorf("path is invalid, last element in the path should be %q. components: %v, path: %s",
				expected, cs, archivePath)
	}

	switch cs[0] { // we always have at least 1 element
	case "projects":
		switch len(cs) {
		case projectPos + 1:
			if cs[projectPos] != projectDescriptorFile {
				return invalid(projectDescriptorFile)
			}
			return ArchivePathComponents{
				ArchiveFileName: cs[projectPos],
				Project:         cs[projectPos-1],
			}, nil
		case variantPos + 1:
			if cs[variantPos] != variantDescriptorFile || cs[variantPos-2] != "variants" {
				return invalid(variantDescriptorFile)
			}
			return ArchivePathComponents{
				ArchiveFileName: cs[variantPos],
				Variant:         cs[variantPos-1],
				Project:         cs[variantPos-3],
			}, nil
		}

	case "configs":
		if len(cs) == configPos+1 {
			if cs[configPos] != configDescriptorFile {
				return invalid(configDescriptorFile)
			}
			return ArchivePathComponents{
				ArchiveFileName: cs[configPos],
				Config:          cs[configPos-1],
				Variant:         cs[configPos-2],
				Project:         cs[configPos-3],
			}, nil
		}

	case "simples":
		switch len(cs) {
		case libraryPos + 1:
			if cs[libraryPos] != libraryDescriptorFile {
				return invalid(libraryDescriptorFile)
			}
			return ArchivePathComponents{
				ArchiveFileName: cs[libraryPos],
				Library:         cs[libraryPos-1],
				Libtype:         cs[libraryPos-2],
				Variant:         cs[libraryPos-3],
				Project:         cs[libraryPos-4],
			}, nil
		case releasePos + 1:
			if cs[releasePos] != releaseDescriptorFile || cs[releasePos-2] != "releases" {
				return invalid(releaseDescriptorFile)
			}
			return ArchivePathComponents{
				ArchiveFileName: cs[releasePos],
				Release:         cs[releasePos-1],
				Library:         cs[releasePos-3],
				Libtype:         cs[releasePos-4],
				Variant:         cs[releasePos-5],
				Project:         cs[releasePos-6],
			}, nil
		}

	case "files":
		if len(cs) == indexPos+1 {
			if cs[indexPos] != filesIndexFile {
				return invalid(filesIndexFile)
			}
			release := cs[indexPos-1]
			if release == HeadDirectory {
				release = ""
			}
			return ArchivePathComponents{
				ArchiveFileName: cs[indexPos],
				Release:         release,
				Library:         cs[indexPos-2],
				Libtype:         cs[indexPos-3],
				Variant:         cs[indexPos-4],
				Project:         cs[indexPos-5],
			}, nil
		}
	}
	return ArchivePathComponents{}, fmt.Errorf("path is invalid: %v, path: %s", cs, archivePath)
}

func GetArchivePathToProjects() string {
	return "projects/"
}

func GetArchivePathToProject(project string) string {
	return fmt.Sprint(GetArchivePathToProjects(), project, "/", projectDescriptorFile)
}

func GetArchivePathPrefixToVariants(project string) string {
	return fmt.Sprint(GetArchivePathToProjects(), project, "/variants/")
}

func GetArchivePathToVariant(project, variant string) string {
	return fmt.Sprint(GetArchivePathPrefixToVariants(project), variant, "/", variantDescriptorFile)
}

func GetArchivePathPrefixToConfigs(project, variant string) string {
	return fmt.Sprint("configs/", project, "/", variant, "/")
}

func GetArchivePathToConfig(project, variant, config string) string {
	return fmt.Sprint(GetArchivePathPrefixToConfigs(project, variant), config, "/", configDescriptorFile)
}

func GetArchivePathPrefixToLibraries(project, variant, libtype string) string {
	return fmt.Sprint("simples/", project, "/", variant, "/", libtype, "/")
}

func GetArchivePathToLibrary(project, variant, libtype, library string) string {
	return fmt.Sprint(GetArchivePathPrefixToLibraries(project, variant, libtype), library, "/", libraryDescriptorFile)
}

func GetArchivePathPrefixToReleases(project, variant, libtype, library string) string {
	return fmt.Sprint(GetArchivePathPrefixToLibraries(project, variant, libtype), library, "/releases/")
}

func GetArchivePathToRelease(project, variant, libtype, library, release string) string {
	return fmt.Sprint(GetArchivePathPrefixToReleases(project, variant, libtype, library), release, "/", releaseDescriptorFile)
}

// GetArchivePathToFileIndex locates the file index of a release, or of the library head when release is empty
func GetArchivePathToFileIndex(project, variant, libtype, library, release string) string {
	if release == "" {
		release = HeadDirectory
	}
	return fmt.Sprint("files/", project, "/", variant, "/", libtype, "/", library, "/", release, "/", filesIndexFile)
}

// GetFileDirectory is the directory holding the content of files added to a library
func GetFileDirectory(project, variant, libtype, library string) string {
	return strings.Join([]string{project, variant, libtype, library}, "/")
}

// GetPathToFileVersion yields the content address of a file version: "{directory}/{filename}#{version}"
func GetPathToFileVersion(directory, filename string, version int) string {
	return fmt.Sprint(directory, "/", filename, "#", version)
}

// ParseFileVersionPath splits a content address into its file path and version
func ParseFileVersionPath(path string) (string, int, error) {
	i := strings.LastIndex(path, "#")
	if i <= 0 {
		return "", 0, fmt.Errorf("path %s has no version: expected {file}#{version}", path)
	}
	version, err := ParseVersion(path[i+1:])
	if err != nil {
		return "", 0, err
	}
	return path[:i], version, nil
}

// FullName identifies a configuration, library or release by its path.
//
// Formats:
//  config:  project/variant/config
//  library: project/variant/libtype/library
//  release: project/variant/libtype/library/release
type FullName struct {
	Project string
	Variant string
	Libtype string
	Library string
	Release string
	Config  string
}

// IsComposite tells if the name refers to a composite configuration
func (f FullName) IsComposite() bool {
	return f.Libtype == ""
}

func (f FullName) String() string {
	if f.IsComposite() {
		return CompositeFullName(f.Project, f.Variant, f.Config)
	}
	return SimpleFullName(f.Project, f.Variant, f.Libtype, f.Library, f.Release)
}

// CompositeFullName formats the full name of a composite configuration
func CompositeFullName(project, variant, config string) string {
	return strings.Join([]string{project, variant, config}, "/")
}

// SimpleFullName formats the full name of a library, or of a release when release is not empty
func SimpleFullName(project, variant, libtype, library, release string) string {
	name := strings.Join([]string{project, variant, libtype, library}, "/")
	if release != "" {
		name += "/" + release
	}
	return name
}

// ParseFullName parses the full name of a configuration, library or release
func ParseFullName(name string) (FullName, error) {
	cs := strings.Split(name, "/")
	for _, c := range cs {
		if c == "" {
			return FullName{}, fmt.Errorf("invalid full name %q: empty path element", name)
		}
	}
	switch len(cs) {
	case 3:
		return FullName{Project: cs[0], Variant: cs[1], Config: cs[2]}, nil
	case 4:
		return FullName{Project: cs[0], Variant: cs[1], Libtype: cs[2], Library: cs[3]}, nil
	case 5:
		return FullName{Project: cs[0], Variant: cs[1], Libtype: cs[2], Library: cs[3], Release: cs[4]}, nil
	default:
		return FullName{}, fmt.Errorf("invalid full name %q: expected project/variant/config, "+
			"project/variant/libtype/library or project/variant/libtype/library/release", name)
	}
}

// FormatVersion renders a file version the way it appears in reports
func FormatVersion(version int) string {
	return strconv.Itoa(version)
}

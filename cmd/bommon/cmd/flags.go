// Copyright © 2018 One Concern

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

type flagsT struct {
	root struct {
		store       string
		blobs       string
		credential  string
		logLevel    string
		concurrency int
		cacheSize   int
		preview     bool
	}
	location struct {
		project string
		variant string
		libtype string
	}
	description string
	variant     struct {
		libtypes []string
	}
	simple struct {
		library    string
		release    string
		srcLibrary string
		srcRelease string
	}
	file struct {
		name string
		path string
	}
	bom struct {
		name           string
		target         string
		include        []string
		property       string
		value          string
		libraries      bool
		noHierarchy    bool
		json           bool
		cloneSimple    bool
		cloneImmutable bool
		reuseExisting  bool
		sortByLibtype  bool
		projectFilter  string
		variantFilter  string
		libtypeFilter  string
	}
	diff struct {
		secondProject     string
		secondVariant     string
		secondBOM         string
		ignoreConfigNames bool
		includeFiles      bool
		sortByLibtype     bool
		json              bool
		color             bool
		variants          []string
		libtypes          []string
	}
	doc struct {
		docTarget string
	}
}

var bommonFlags = flagsT{}

func addStoreFlag(cmd *cobra.Command) string {
	store := "store"
	cmd.PersistentFlags().StringVar(&bommonFlags.root.store, store, "",
		"The URL of the configuration store: file://<dir>, badger://<dir>, gs://<bucket> or s3://<bucket>")
	return store
}

func addBlobsFlag(cmd *cobra.Command) string {
	blobs := "blobs"
	cmd.PersistentFlags().StringVar(&bommonFlags.root.blobs, blobs, "",
		"The URL of the store holding file contents. Defaults to the configuration store")
	return blobs
}

func addCredentialFlag(cmd *cobra.Command) string {
	credential := "credential"
	cmd.PersistentFlags().StringVar(&bommonFlags.root.credential, credential, "", "The path to the GCS credential file")
	return credential
}

func addLogLevelFlag(cmd *cobra.Command) string {
	logLevel := "loglevel"
	cmd.PersistentFlags().StringVar(&bommonFlags.root.logLevel, logLevel, "", "The logging level. Levels by increasing order of verbosity: none, error, warn, info, debug")
	return logLevel
}

func addConcurrencyFlag(cmd *cobra.Command) string {
	concurrency := "concurrency"
	cmd.PersistentFlags().IntVar(&bommonFlags.root.concurrency, concurrency, 0,
		"The max number of pairs compared concurrently. Defaults to twice the number of CPUs")
	return concurrency
}

func addCacheSizeFlag(cmd *cobra.Command) string {
	cacheSize := "cache-size"
	cmd.PersistentFlags().IntVar(&bommonFlags.root.cacheSize, cacheSize, 0,
		"The number of file comparisons remembered while comparing BOMs")
	return cacheSize
}

func addPreviewFlag(cmd *cobra.Command) string {
	preview := "preview"
	cmd.PersistentFlags().BoolVar(&bommonFlags.root.preview, preview, false,
		"Validate BOMs without checking the store and save nothing")
	return preview
}

func addProjectFlag(cmd *cobra.Command) string {
	project := "project"
	cmd.Flags().StringVar(&bommonFlags.location.project, project, "", "The name of the project")
	return project
}

func addVariantFlag(cmd *cobra.Command) string {
	variant := "variant"
	cmd.Flags().StringVar(&bommonFlags.location.variant, variant, "", "The name of the variant (IP)")
	return variant
}

func addLibtypeFlag(cmd *cobra.Command) string {
	libtype := "libtype"
	cmd.Flags().StringVar(&bommonFlags.location.libtype, libtype, "", "The libtype (deliverable)")
	return libtype
}

func addDescriptionFlag(cmd *cobra.Command) string {
	description := "description"
	cmd.Flags().StringVar(&bommonFlags.description, description, "", "A description")
	return description
}

func addLibtypesFlag(cmd *cobra.Command) string {
	libtypes := "libtypes"
	cmd.Flags().StringSliceVar(&bommonFlags.variant.libtypes, libtypes, nil, "The libtypes enabled in the variant")
	return libtypes
}

func addLibraryFlag(cmd *cobra.Command) string {
	library := "library"
	cmd.Flags().StringVar(&bommonFlags.simple.library, library, "", "The name of the library")
	return library
}

func addReleaseFlag(cmd *cobra.Command) string {
	release := "release"
	cmd.Flags().StringVar(&bommonFlags.simple.release, release, "", "The name of the release")
	return release
}

func addFromLibraryFlag(cmd *cobra.Command) string {
	fromLibrary := "from-library"
	cmd.Flags().StringVar(&bommonFlags.simple.srcLibrary, fromLibrary, "", "The library to branch files from")
	return fromLibrary
}

func addFromReleaseFlag(cmd *cobra.Command) string {
	fromRelease := "from-release"
	cmd.Flags().StringVar(&bommonFlags.simple.srcRelease, fromRelease, "", "The release to take files from, instead of the library head")
	return fromRelease
}

func addFileNameFlag(cmd *cobra.Command) string {
	name := "name"
	cmd.Flags().StringVar(&bommonFlags.file.name, name, "", "The name of the file in the library. Defaults to the base name of the path")
	return name
}

func addFilePathFlag(cmd *cobra.Command) string {
	path := "path"
	cmd.Flags().StringVar(&bommonFlags.file.path, path, "", "The path to the local file to add")
	return path
}

func addBOMFlag(cmd *cobra.Command) string {
	bom := "bom"
	cmd.Flags().StringVar(&bommonFlags.bom.name, bom, "", "The name of the BOM")
	return bom
}

func addTargetNameFlag(cmd *cobra.Command) string {
	name := "name"
	cmd.Flags().StringVar(&bommonFlags.bom.target, name, "", "The name of the clone")
	return name
}

func addIncludeFlag(cmd *cobra.Command) string {
	include := "include"
	cmd.Flags().StringSliceVar(&bommonFlags.bom.include, include, nil,
		"The full names of the children: project/variant/bom, project/variant/libtype/library or project/variant/libtype/library/release")
	return include
}

func addPropertyFlag(cmd *cobra.Command) string {
	property := "property"
	cmd.Flags().StringVar(&bommonFlags.bom.property, property, "", "The name of the property")
	return property
}

func addValueFlag(cmd *cobra.Command) string {
	value := "value"
	cmd.Flags().StringVar(&bommonFlags.bom.value, value, "", "The value of the property")
	return value
}

func addShowLibrariesFlag(cmd *cobra.Command) string {
	libraries := "libraries"
	cmd.Flags().BoolVar(&bommonFlags.bom.libraries, libraries, false, "Show the library of each release")
	return libraries
}

func addNoHierarchyFlag(cmd *cobra.Command) string {
	noHierarchy := "no-hierarchy"
	cmd.Flags().BoolVar(&bommonFlags.bom.noHierarchy, noHierarchy, false, "Do not descend into child BOMs")
	return noHierarchy
}

func addBOMJSONFlag(cmd *cobra.Command) string {
	json := "json"
	cmd.Flags().BoolVar(&bommonFlags.bom.json, json, false, "Print as json")
	return json
}

func addCloneSimpleFlag(cmd *cobra.Command) string {
	cloneSimple := "clone-simple"
	cmd.Flags().BoolVar(&bommonFlags.bom.cloneSimple, cloneSimple, false, "Clone libraries and releases too, as new libraries")
	return cloneSimple
}

func addCloneImmutableFlag(cmd *cobra.Command) string {
	cloneImmutable := "clone-immutable"
	cmd.Flags().BoolVar(&bommonFlags.bom.cloneImmutable, cloneImmutable, false, "Clone immutable BOMs and releases too")
	return cloneImmutable
}

func addReuseExistingFlag(cmd *cobra.Command) string {
	reuseExisting := "reuse-existing"
	cmd.Flags().BoolVar(&bommonFlags.bom.reuseExisting, reuseExisting, false, "Reuse the objects already named like the clone in the store")
	return reuseExisting
}

func addDumpSortByLibtypeFlag(cmd *cobra.Command) string {
	sortByLibtype := "sort-by-libtype"
	cmd.Flags().BoolVar(&bommonFlags.bom.sortByLibtype, sortByLibtype, false, "Group by libtype")
	return sortByLibtype
}

func addProjectFilterFlag(cmd *cobra.Command) string {
	filter := "project-filter"
	cmd.Flags().StringVar(&bommonFlags.bom.projectFilter, filter, "", "A regular expression (RE2) to match projects")
	return filter
}

func addVariantFilterFlag(cmd *cobra.Command) string {
	filter := "variant-filter"
	cmd.Flags().StringVar(&bommonFlags.bom.variantFilter, filter, "", "A regular expression (RE2) to match variants")
	return filter
}

func addLibtypeFilterFlag(cmd *cobra.Command) string {
	filter := "libtype-filter"
	cmd.Flags().StringVar(&bommonFlags.bom.libtypeFilter, filter, "",
		"A regular expression (RE2) to match libtypes. When set, libraries and releases are searched instead of BOMs")
	return filter
}

func addSecondProjectFlag(cmd *cobra.Command) string {
	project := "second-project"
	cmd.Flags().StringVar(&bommonFlags.diff.secondProject, project, "", "The project of the second BOM. Defaults to --project")
	return project
}

func addSecondVariantFlag(cmd *cobra.Command) string {
	variant := "second-variant"
	cmd.Flags().StringVar(&bommonFlags.diff.secondVariant, variant, "", "The variant of the second BOM. Defaults to --variant")
	return variant
}

func addSecondBOMFlag(cmd *cobra.Command) string {
	bom := "second-bom"
	cmd.Flags().StringVar(&bommonFlags.diff.secondBOM, bom, "", "The name of the second BOM")
	return bom
}

func addIgnoreConfigNamesFlag(cmd *cobra.Command) string {
	ignore := "ignore-config-names"
	cmd.Flags().BoolVar(&bommonFlags.diff.ignoreConfigNames, ignore, false, "Compare libraries and releases only, not configuration names")
	return ignore
}

func addIncludeFilesFlag(cmd *cobra.Command) string {
	includeFiles := "include-files"
	cmd.Flags().BoolVar(&bommonFlags.diff.includeFiles, includeFiles, false, "Compare the files of the libraries and releases that differ")
	return includeFiles
}

func addDiffSortByLibtypeFlag(cmd *cobra.Command) string {
	sortByLibtype := "sort-by-libtype"
	cmd.Flags().BoolVar(&bommonFlags.diff.sortByLibtype, sortByLibtype, false, "Group differences by libtype")
	return sortByLibtype
}

func addDiffJSONFlag(cmd *cobra.Command) string {
	json := "json"
	cmd.Flags().BoolVar(&bommonFlags.diff.json, json, false, "Print a json summary instead of the text report")
	return json
}

func addColorFlag(cmd *cobra.Command) string {
	color := "color"
	cmd.Flags().BoolVar(&bommonFlags.diff.color, color, false, "Color the text report")
	return color
}

func addVariantsFlag(cmd *cobra.Command) string {
	variants := "variants"
	cmd.Flags().StringSliceVar(&bommonFlags.diff.variants, variants, nil, "Restrict the comparison to some variants")
	return variants
}

func addDiffLibtypesFlag(cmd *cobra.Command) string {
	libtypes := "libtypes"
	cmd.Flags().StringSliceVar(&bommonFlags.diff.libtypes, libtypes, nil, "Restrict the comparison to some libtypes")
	return libtypes
}

func addTargetFlag(cmd *cobra.Command) string {
	target := "target-dir"
	cmd.Flags().StringVar(&bommonFlags.doc.docTarget, target, ".", "The target directory for the generated documentation")
	return target
}

// requireFlags sets a flag (local to the command or inherited) as required
func requireFlags(cmd *cobra.Command, flags ...string) {
	for _, flag := range flags {
		err := cmd.MarkFlagRequired(flag)
		if err != nil {
			err = cmd.MarkPersistentFlagRequired(flag)
		}
		if err != nil {
			wrapFatalln(fmt.Sprintf("error attempting to mark the required flag %q", flag), err)
			return
		}
	}
}

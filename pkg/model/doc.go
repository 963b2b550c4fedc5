// Package model describes the base objects manipulated by bommon.
//
// The package exposes a model for metadata, as persisted by a configuration store.
//
// The object model for bommon is composed of:
//
//  Projects and variants:
//    A project groups variants (IPs). A variant declares the libtypes (deliverables) it may hold.
//
//  Libraries:
//    A library is a mutable working line of files for one deliverable of a variant.
//
//  Releases:
//    A release is a frozen snapshot of a library. Release names start with an immutable prefix (REL, PREL, snap-).
//
//  Configurations (BOMs):
//    A composite configuration is a named set of references to other configurations,
//    libraries or releases. A configuration is immutable when its name starts with an immutable prefix.
//
//  Files:
//    Each library or release carries an index of versioned files. File content is addressed as
//    "{directory}/{filename}#{version}".
package model

// Copyright © 2018 One Concern

// Package storage provides the interface to handle backend storage objects.
//
// This package supports the following backends:
//   - GCS (Google), see package gcs
//   - S3 (AWS), see package sthree
//   - local file system or in-memory file system, see package localfs
//   - embedded badger key/value database, see package kv
//
// Configuration descriptors and file contents are both kept as objects on a Store.
package storage

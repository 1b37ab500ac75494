package filesystem

import "io/fs"

// FileInfo is an alias for fs.FileInfo from the standard library.
// It keeps the provider interface compatible with the fs ecosystem while
// giving this abstraction layer a stable local name.
type FileInfo = fs.FileInfo

// Provider gives read-only access to an input tree. Inputs are never
// mutated; all writes in the toolchain go through explicit output paths.
type Provider interface {
	// ReadFile reads the file at the given path.
	ReadFile(path string) ([]byte, error)

	// ReadDir lists the entries of the directory at the given path,
	// sorted by name.
	ReadDir(path string) ([]FileInfo, error)

	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)
}

// Package filesystem abstracts the read-only file access the dictionary
// build needs: reading a DDL file, listing a vocabulary directory tree and
// reading the CSV files inside it. Two providers exist: the OS filesystem
// for production and an in-memory filesystem for tests, so loader tests can
// describe a whole mCIDE layout without touching disk.
package filesystem

// Package logging provides concrete implementations of the clifdict.Logger
// interface. ConsoleLogger writes to stderr so that stdout stays reserved
// for machine-readable output; NullLogger discards everything and is used
// in tests and library embeddings that manage their own reporting.
package logging

// Package clifdict defines the public contract of the CLIF data dictionary
// toolchain: the Dictionary and Changelog document models, the Warning type
// used to report recoverable build anomalies, the Logger interface, sentinel
// errors and process exit codes.
//
// A Dictionary describes one schema version. It is built once from DDL and
// mCIDE vocabulary sources and never mutated; a new schema version produces a
// new Dictionary. A Changelog is derived from exactly two Dictionaries and is
// likewise immutable.
//
// Serialization is YAML. Dictionaries preserve source declaration order for
// tables and variables; Changelogs order tables alphabetically so the same
// two inputs always serialize identically.
package clifdict

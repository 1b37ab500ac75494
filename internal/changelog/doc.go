// Package changelog computes the structural diff between two Dictionary
// versions. The Differ classifies every table as added, removed, modified or
// status-changed, records field-level variable diffs for modified tables, and
// aggregates everything into the changelog summary. Output ordering is fully
// deterministic: the same two Dictionaries always produce a byte-identical
// Changelog, apart from the generation metadata.
package changelog

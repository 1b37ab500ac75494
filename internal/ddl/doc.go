// Package ddl parses CLIF schema definition files.
//
// The parser is deliberately best-effort: CLIF DDL files are authored by
// hand across MySQL, PostgreSQL and DuckDB dialects, so the grammar here
// tolerates mixed statement terminators, trailing commas, case differences
// and comments in several positions. A statement the parser cannot make
// sense of is skipped and reported as a warning with its starting line;
// it never aborts the run, because a partially parsed schema still makes
// useful documentation.
//
// Status extraction is a separate pass over the same source. Maturity
// markers (#concept, #beta) ride along in comments next to the table
// declaration and are resolved into a typed table→status map, keeping
// status semantics out of the column grammar.
package ddl

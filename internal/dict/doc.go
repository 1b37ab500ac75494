// Package dict assembles the canonical Dictionary document from the three
// extraction passes: parsed DDL tables, extracted maturity statuses and the
// loaded vocabulary index. Building never fails — every anomaly (a vocabulary
// file nothing references, a categorical column with no vocabulary, a skipped
// statement) is collected into the returned warnings list, because a
// partially specified schema is still useful documentation.
//
// Validate enforces the Dictionary invariants that the differ relies on;
// it is the precondition gate for diffing documents that were persisted and
// possibly hand-edited.
package dict

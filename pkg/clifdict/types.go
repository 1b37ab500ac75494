package clifdict

import (
	"fmt"
	"time"
)

// Kind is the semantic type of a variable, normalized from the declared SQL
// type (and, for categorical variables, from the column naming convention).
type Kind string

const (
	KindString      Kind = "string"
	KindNumeric     Kind = "numeric"
	KindDatetime    Kind = "datetime"
	KindCategorical Kind = "categorical"
	KindBoolean     Kind = "boolean"
)

// Status is the maturity classification of a table. Tables without a
// recognized marker default to StatusConcept.
type Status string

const (
	StatusConcept Status = "concept"
	StatusBeta    Status = "beta"
)

// ParseStatus maps marker text to a Status. The second return value is false
// for unrecognized text; callers default to StatusConcept with a warning.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusConcept:
		return StatusConcept, true
	case StatusBeta:
		return StatusBeta, true
	default:
		return StatusConcept, false
	}
}

// Variable is one column definition within a table.
//
// Values is populated only for categorical variables and preserves the
// authoring order of the vocabulary source, which is meaningful (clinical
// severity, organism taxonomy). Examples carries up to MaxExampleValues
// representative raw-source values. Groups maps a category label to its
// optional group classification. Examples and Groups are cosmetic: they are
// carried in the Dictionary but excluded from changelog comparison.
type Variable struct {
	Name        string            `yaml:"name"`
	Type        Kind              `yaml:"type"`
	Description string            `yaml:"description"`
	Values      []string          `yaml:"values,omitempty"`
	Examples    []string          `yaml:"examples,omitempty"`
	Groups      map[string]string `yaml:"groups,omitempty"`
}

// Clone returns a deep copy of the variable. Changelogs record full copies of
// added/removed variables so they stay valid if the source Dictionary is
// released.
func (v Variable) Clone() Variable {
	out := v
	if v.Values != nil {
		out.Values = append([]string(nil), v.Values...)
	}
	if v.Examples != nil {
		out.Examples = append([]string(nil), v.Examples...)
	}
	if v.Groups != nil {
		out.Groups = make(map[string]string, len(v.Groups))
		for k, val := range v.Groups {
			out.Groups[k] = val
		}
	}
	return out
}

// Table is one table definition: a maturity status plus variables in source
// declaration order. Variable names are unique within a table.
type Table struct {
	Name      string
	Status    Status
	Variables []Variable
}

// Variable returns the named variable, or false if not declared.
func (t *Table) Variable(name string) (Variable, bool) {
	for _, v := range t.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// Dictionary is the canonical document describing one schema version.
// Tables appear in source declaration order; table names are unique.
type Dictionary struct {
	Version string
	Tables  []Table
}

// Table returns the named table, or false if absent.
func (d *Dictionary) Table(name string) (*Table, bool) {
	for i := range d.Tables {
		if d.Tables[i].Name == name {
			return &d.Tables[i], true
		}
	}
	return nil, false
}

// TableNames returns table names in declaration order.
func (d *Dictionary) TableNames() []string {
	names := make([]string, len(d.Tables))
	for i, t := range d.Tables {
		names[i] = t.Name
	}
	return names
}

// ChangeType classifies one aspect of a table-level change. A table can carry
// several at once: a status transition and a variable modification are
// independent flags.
type ChangeType string

const (
	ChangeTableAdded         ChangeType = "table_added"
	ChangeTableRemoved       ChangeType = "table_removed"
	ChangeTableModified      ChangeType = "table_modified"
	ChangeTableStatusChanged ChangeType = "table_status_changed"
)

// StringDiff records an old/new pair for a scalar field.
type StringDiff struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// ValuesDiff records an old/new pair for a value set. Both sides keep their
// display order even though equality is decided set-wise.
type ValuesDiff struct {
	Old []string `yaml:"old"`
	New []string `yaml:"new"`
}

// VariableChange describes a variable present in both versions whose type,
// description or value set differs. Only changed fields are populated.
type VariableChange struct {
	Name        string      `yaml:"name"`
	Type        *StringDiff `yaml:"type,omitempty"`
	Description *StringDiff `yaml:"description,omitempty"`
	Values      *ValuesDiff `yaml:"values,omitempty"`
}

// TableChange is the per-table diff record. Tables with no change are omitted
// from the Changelog entirely.
type TableChange struct {
	ChangeTypes       []ChangeType     `yaml:"change_type"`
	OldStatus         Status           `yaml:"old_status,omitempty"`
	NewStatus         Status           `yaml:"new_status,omitempty"`
	VariablesAdded    []Variable       `yaml:"variables_added,omitempty"`
	VariablesRemoved  []Variable       `yaml:"variables_removed,omitempty"`
	VariablesModified []VariableChange `yaml:"variables_modified,omitempty"`
}

// Has reports whether the change record carries the given classification.
func (c *TableChange) Has(ct ChangeType) bool {
	for _, t := range c.ChangeTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// ChangelogMetadata identifies one changelog generation run.
type ChangelogMetadata struct {
	ID          string    `yaml:"id"`
	GeneratedAt time.Time `yaml:"generated_at"`
	OldVersion  string    `yaml:"old_version"`
	NewVersion  string    `yaml:"new_version"`
}

// StatusTransition is one <from>_to_<to> bucket in the changelog summary.
type StatusTransition struct {
	Count  int      `yaml:"count"`
	Tables []string `yaml:"tables"`
}

// ChangelogSummary aggregates the per-table changes into corpus-level counts.
// All table lists are sorted alphabetically. TotalChanges is the entity sum:
// each added or removed table counts once, each status transition counts
// once, and each variable added, removed or modified within a surviving table
// counts once.
type ChangelogSummary struct {
	TablesAdded         []string                     `yaml:"tables_added"`
	TablesRemoved       []string                     `yaml:"tables_removed"`
	TablesModified      []string                     `yaml:"tables_modified"`
	TablesStatusChanged []string                     `yaml:"tables_status_changed"`
	StatusChanges       map[string]*StatusTransition `yaml:"status_changes,omitempty"`
	TotalChanges        int                          `yaml:"total_changes"`
}

// TransitionKey builds the summary bucket key for a status transition.
func TransitionKey(from, to Status) string {
	return fmt.Sprintf("%s_to_%s", from, to)
}

// Changelog is the structured diff between two Dictionary versions.
type Changelog struct {
	Metadata ChangelogMetadata       `yaml:"metadata"`
	Summary  ChangelogSummary        `yaml:"summary"`
	Changes  map[string]*TableChange `yaml:"changes"`
}

// WarningKind classifies a recoverable build anomaly.
type WarningKind string

const (
	WarnMalformedStatement  WarningKind = "malformed_statement"
	WarnDuplicateColumn     WarningKind = "duplicate_column"
	WarnUnmatchedVocabulary WarningKind = "unmatched_vocabulary"
	WarnEmptyCategorical    WarningKind = "empty_categorical"
	WarnDuplicateLabel      WarningKind = "duplicate_label"
	WarnMalformedVocabulary WarningKind = "malformed_vocabulary"
	WarnUnknownStatus       WarningKind = "unknown_status"
)

// Warning is one recoverable anomaly encountered while building a Dictionary.
// Warnings are collected and returned alongside the primary output; they
// never abort a run and never change the exit code.
type Warning struct {
	Kind    WarningKind
	Table   string
	Column  string
	Line    int
	Message string
}

func (w Warning) String() string {
	loc := ""
	switch {
	case w.Table != "" && w.Column != "":
		loc = fmt.Sprintf(" [%s.%s]", w.Table, w.Column)
	case w.Table != "":
		loc = fmt.Sprintf(" [%s]", w.Table)
	}
	if w.Line > 0 {
		loc += fmt.Sprintf(" (line %d)", w.Line)
	}
	return fmt.Sprintf("%s%s: %s", w.Kind, loc, w.Message)
}

package dict

import (
	"fmt"

	"github.com/clif-consortium/clifdict/internal/ddl"
	"github.com/clif-consortium/clifdict/internal/vocab"
	"github.com/clif-consortium/clifdict/pkg/clifdict"
)

// Build merges the extraction passes into one Dictionary tagged with the
// given version. Tables and variables keep their source declaration order.
//
// Merge rules:
//   - A column is categorical if its name carries the vocabulary suffix
//     convention, or if its comment enumerates permissible values inline.
//   - Inline permissible values win over the vocabulary index; the index is
//     the fallback for suffix-marked columns.
//   - Tables absent from the status map default to concept.
//
// The returned warnings start with the parse warnings and append, in table
// order, every empty categorical column, then every vocabulary that no
// parsed column consumed.
func Build(parse ddl.ParseResult, statuses map[string]clifdict.Status, index *vocab.Index, version string) (*clifdict.Dictionary, []clifdict.Warning) {
	if index == nil {
		index = vocab.NewIndex()
	}

	d := &clifdict.Dictionary{Version: version}
	warnings := append([]clifdict.Warning(nil), parse.Warnings...)
	consumed := make(map[vocab.Key]bool)

	for _, tableDef := range parse.Tables {
		status, ok := statuses[tableDef.Name]
		if !ok {
			status = clifdict.StatusConcept
		}
		table := clifdict.Table{Name: tableDef.Name, Status: status}

		for _, col := range tableDef.Columns {
			variable, warns := buildVariable(tableDef.Name, col, index, consumed)
			warnings = append(warnings, warns...)
			table.Variables = append(table.Variables, variable)
		}
		d.Tables = append(d.Tables, table)
	}

	for _, key := range index.Keys() {
		if !consumed[key] {
			warnings = append(warnings, clifdict.Warning{
				Kind:    clifdict.WarnUnmatchedVocabulary,
				Table:   key.Table,
				Column:  key.Column,
				Message: "vocabulary file matches no declared column",
			})
		}
	}

	return d, warnings
}

func buildVariable(table string, col ddl.Column, index *vocab.Index, consumed map[vocab.Key]bool) (clifdict.Variable, []clifdict.Warning) {
	kind := ddl.NormalizeKind(col.RawType, col.Name)
	description, inline := ddl.ParseComment(col.Comment)

	v := clifdict.Variable{
		Name:        col.Name,
		Type:        kind,
		Description: description,
	}

	// An inline permissible enumeration makes the column categorical even
	// without the suffix convention.
	if len(inline) > 0 {
		v.Type = clifdict.KindCategorical
		v.Values = inline
		// The vocabulary file, if any, is shadowed but accounted for.
		if _, ok := index.Lookup(table, col.Name); ok {
			consumed[vocab.Key{Table: table, Column: col.Name}] = true
		}
		return v, nil
	}

	if v.Type != clifdict.KindCategorical {
		return v, nil
	}

	entries, ok := index.Lookup(table, col.Name)
	if ok {
		consumed[vocab.Key{Table: table, Column: col.Name}] = true
	}
	for _, entry := range entries {
		v.Values = append(v.Values, entry.Label)
		for _, ex := range entry.Examples {
			if len(v.Examples) < clifdict.MaxExampleValues {
				v.Examples = append(v.Examples, ex)
			}
		}
		if entry.Group != "" {
			if v.Groups == nil {
				v.Groups = make(map[string]string)
			}
			v.Groups[entry.Label] = entry.Group
		}
	}

	if len(v.Values) == 0 {
		return v, []clifdict.Warning{{
			Kind:    clifdict.WarnEmptyCategorical,
			Table:   table,
			Column:  col.Name,
			Line:    col.Line,
			Message: fmt.Sprintf("categorical column %s has no vocabulary entries", col.Name),
		}}
	}
	return v, nil
}

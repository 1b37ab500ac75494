package vocab

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/clif-consortium/clifdict/internal/files/filesystem"
	"github.com/clif-consortium/clifdict/pkg/clifdict"
)

// Key addresses one vocabulary: a (table, column) pair.
type Key struct {
	Table  string
	Column string
}

// Entry is one permissible category value.
type Entry struct {
	Label       string
	Description string
	Examples    []string
	Group       string
}

// Index holds loaded vocabularies addressable by (table, column).
type Index struct {
	entries map[Key][]Entry
}

// NewIndex creates an empty index. Mainly useful for tests and for builds
// without any vocabulary directory.
func NewIndex() *Index {
	return &Index{entries: make(map[Key][]Entry)}
}

// Put registers a vocabulary sequence under a key, replacing any previous
// sequence for that key.
func (ix *Index) Put(key Key, entries []Entry) {
	ix.entries[key] = entries
}

// Lookup returns the vocabulary for (table, column) in authoring order.
func (ix *Index) Lookup(table, column string) ([]Entry, bool) {
	entries, ok := ix.entries[Key{Table: table, Column: column}]
	return entries, ok
}

// Keys returns all loaded keys sorted by table then column, so consumers
// iterating the index produce deterministic output.
func (ix *Index) Keys() []Key {
	keys := make([]Key, 0, len(ix.entries))
	for k := range ix.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Table != keys[j].Table {
			return keys[i].Table < keys[j].Table
		}
		return keys[i].Column < keys[j].Column
	})
	return keys
}

// Loader reads vocabulary directories through a filesystem provider.
type Loader struct {
	fsProvider filesystem.Provider
}

// NewLoader creates a loader backed by the OS filesystem.
func NewLoader() *Loader {
	return &Loader{fsProvider: filesystem.NewOSFileSystem()}
}

// NewLoaderWithFS creates a loader with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if fsProvider is nil.
func NewLoaderWithFS(fsProvider filesystem.Provider) *Loader {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Loader{fsProvider: fsProvider}
}

// LoadDirectory loads every vocabulary under dir. The directory itself being
// unreadable is fatal; anything wrong inside it (unparseable CSV, duplicate
// labels) degrades to a warning so one bad file cannot sink the build.
func (l *Loader) LoadDirectory(dir string) (*Index, []clifdict.Warning, error) {
	tables, err := l.fsProvider.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: vocabulary directory %s: %v", clifdict.ErrInputNotFound, dir, err)
	}

	index := NewIndex()
	var warnings []clifdict.Warning

	for _, tableEntry := range tables {
		if !tableEntry.IsDir() {
			continue
		}
		table := tableEntry.Name()

		files, err := l.fsProvider.ReadDir(filepath.Join(dir, table))
		if err != nil {
			warnings = append(warnings, clifdict.Warning{
				Kind:    clifdict.WarnMalformedVocabulary,
				Table:   table,
				Message: fmt.Sprintf("cannot list vocabulary files: %v", err),
			})
			continue
		}

		for _, fileEntry := range files {
			if fileEntry.IsDir() || !strings.EqualFold(filepath.Ext(fileEntry.Name()), ".csv") {
				continue
			}
			column := columnForFile(table, fileEntry.Name())

			content, err := l.fsProvider.ReadFile(filepath.Join(dir, table, fileEntry.Name()))
			if err != nil {
				warnings = append(warnings, clifdict.Warning{
					Kind:    clifdict.WarnMalformedVocabulary,
					Table:   table,
					Column:  column,
					Message: fmt.Sprintf("cannot read %s: %v", fileEntry.Name(), err),
				})
				continue
			}

			entries, warns := parseCSV(table, column, fileEntry.Name(), content)
			warnings = append(warnings, warns...)
			index.Put(Key{Table: table, Column: column}, entries)
		}
	}

	return index, warnings, nil
}

// columnForFile resolves a vocabulary file name to its column name. Modern
// files are named <column>.csv; legacy files are named clif_<table>_<column>.csv.
// The table prefix is stripped only behind a clif_ prefix, because a bare
// column name may itself begin with the table name (position_category).
func columnForFile(table, fileName string) string {
	column := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	if rest, ok := strings.CutPrefix(column, "clif_"); ok {
		column = strings.TrimPrefix(rest, table+"_")
	}
	return column
}

// parseCSV reads one vocabulary file. Header consumption is positional for
// the label (first column) and name-based for everything else.
func parseCSV(table, column, fileName string, content []byte) ([]Entry, []clifdict.Warning) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, []clifdict.Warning{{
			Kind:    clifdict.WarnMalformedVocabulary,
			Table:   table,
			Column:  column,
			Message: fmt.Sprintf("cannot parse %s: %v", fileName, err),
		}}
	}
	if len(records) < 2 {
		// Header only, or empty file: a declared vocabulary with no values.
		return nil, nil
	}

	header := records[0]
	descIdx := -1
	groupIdx := -1
	var exampleIdx []int
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(h, "description") && descIdx == -1:
			descIdx = i
		case strings.Contains(h, "example") && len(exampleIdx) < clifdict.MaxExampleValues:
			exampleIdx = append(exampleIdx, i)
		case strings.Contains(h, "group") && i > 0 && groupIdx == -1:
			groupIdx = i
		}
	}

	var entries []Entry
	var warnings []clifdict.Warning
	seen := make(map[string]bool)

	for _, row := range records[1:] {
		if len(row) == 0 {
			continue
		}
		label := strings.TrimSpace(row[0])
		if label == "" {
			continue
		}
		if seen[label] {
			warnings = append(warnings, clifdict.Warning{
				Kind:    clifdict.WarnDuplicateLabel,
				Table:   table,
				Column:  column,
				Message: fmt.Sprintf("duplicate category label %q in %s, keeping the first occurrence", label, fileName),
			})
			continue
		}
		seen[label] = true

		entry := Entry{Label: label}
		if descIdx >= 0 && descIdx < len(row) {
			entry.Description = strings.TrimSpace(row[descIdx])
		}
		for _, idx := range exampleIdx {
			if idx < len(row) {
				if ex := strings.TrimSpace(row[idx]); ex != "" {
					entry.Examples = append(entry.Examples, ex)
				}
			}
		}
		if groupIdx >= 0 && groupIdx < len(row) {
			entry.Group = strings.TrimSpace(row[groupIdx])
		}
		entries = append(entries, entry)
	}

	return entries, warnings
}

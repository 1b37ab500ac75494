package changelog

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/clif-consortium/clifdict/internal/dict"
	"github.com/clif-consortium/clifdict/pkg/clifdict"
)

// Differ computes Changelogs from pairs of Dictionaries. The clock and run-id
// generator are injectable so tests get stable metadata.
type Differ struct {
	now   func() time.Time
	newID func() string
}

// NewDiffer returns a Differ using the wall clock and random run ids.
func NewDiffer() *Differ {
	return &Differ{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// NewDifferAt returns a Differ with a fixed clock and id generator.
func NewDifferAt(now func() time.Time, newID func() string) *Differ {
	return &Differ{now: now, newID: newID}
}

// Diff compares two Dictionary versions and returns the Changelog.
//
// Both inputs must satisfy the Dictionary invariants; a violation (duplicate
// variable names, duplicate tables) is a precondition failure wrapping
// clifdict.ErrInvalidDictionary and no Changelog is produced. Tables with no
// detected change are omitted from the changes mapping. All table and
// variable lists in the output are sorted alphabetically.
func (df *Differ) Diff(oldDict, newDict *clifdict.Dictionary) (*clifdict.Changelog, error) {
	if err := dict.Validate(oldDict); err != nil {
		return nil, fmt.Errorf("old dictionary %s: %w", oldDict.Version, err)
	}
	if err := dict.Validate(newDict); err != nil {
		return nil, fmt.Errorf("new dictionary %s: %w", newDict.Version, err)
	}

	c := &clifdict.Changelog{
		Metadata: clifdict.ChangelogMetadata{
			ID:          df.newID(),
			GeneratedAt: df.now().UTC().Truncate(time.Second),
			OldVersion:  oldDict.Version,
			NewVersion:  newDict.Version,
		},
		Changes: make(map[string]*clifdict.TableChange),
	}

	oldNames := nameSet(oldDict)
	newNames := nameSet(newDict)

	for _, name := range sortedNames(newNames) {
		if oldNames[name] {
			continue
		}
		table, _ := newDict.Table(name)
		c.Changes[name] = &clifdict.TableChange{
			ChangeTypes:    []clifdict.ChangeType{clifdict.ChangeTableAdded},
			VariablesAdded: cloneVariables(table.Variables),
		}
	}

	for _, name := range sortedNames(oldNames) {
		if newNames[name] {
			continue
		}
		table, _ := oldDict.Table(name)
		c.Changes[name] = &clifdict.TableChange{
			ChangeTypes:      []clifdict.ChangeType{clifdict.ChangeTableRemoved},
			VariablesRemoved: cloneVariables(table.Variables),
		}
	}

	for _, name := range sortedNames(oldNames) {
		if !newNames[name] {
			continue
		}
		oldTable, _ := oldDict.Table(name)
		newTable, _ := newDict.Table(name)

		change := compareTables(oldTable, newTable)
		if change != nil {
			c.Changes[name] = change
		}
	}

	c.Summary = summarize(c.Changes)
	return c, nil
}

// compareTables diffs one table present in both versions. Returns nil when
// nothing changed.
func compareTables(oldTable, newTable *clifdict.Table) *clifdict.TableChange {
	change := &clifdict.TableChange{}

	if oldTable.Status != newTable.Status {
		change.ChangeTypes = append(change.ChangeTypes, clifdict.ChangeTableStatusChanged)
		change.OldStatus = oldTable.Status
		change.NewStatus = newTable.Status
	}

	added, removed, modified := compareVariables(oldTable.Variables, newTable.Variables)
	if len(added)+len(removed)+len(modified) > 0 {
		change.ChangeTypes = append(change.ChangeTypes, clifdict.ChangeTableModified)
		change.VariablesAdded = added
		change.VariablesRemoved = removed
		change.VariablesModified = modified
	}

	if len(change.ChangeTypes) == 0 {
		return nil
	}
	return change
}

func compareVariables(oldVars, newVars []clifdict.Variable) (added, removed []clifdict.Variable, modified []clifdict.VariableChange) {
	oldByName := variablesByName(oldVars)
	newByName := variablesByName(newVars)

	for _, name := range sortedNames(presentIn(newByName)) {
		if _, ok := oldByName[name]; !ok {
			added = append(added, newByName[name].Clone())
		}
	}
	for _, name := range sortedNames(presentIn(oldByName)) {
		if _, ok := newByName[name]; !ok {
			removed = append(removed, oldByName[name].Clone())
		}
	}
	for _, name := range sortedNames(presentIn(oldByName)) {
		newVar, ok := newByName[name]
		if !ok {
			continue
		}
		if vc := compareVariable(oldByName[name], newVar); vc != nil {
			modified = append(modified, *vc)
		}
	}
	return added, removed, modified
}

// compareVariable diffs the semantic fields of one variable. Examples and
// groups are cosmetic and excluded from comparison.
func compareVariable(oldVar, newVar clifdict.Variable) *clifdict.VariableChange {
	vc := &clifdict.VariableChange{Name: oldVar.Name}

	if oldVar.Type != newVar.Type {
		vc.Type = &clifdict.StringDiff{Old: string(oldVar.Type), New: string(newVar.Type)}
	}
	if oldVar.Description != newVar.Description {
		vc.Description = &clifdict.StringDiff{Old: oldVar.Description, New: newVar.Description}
	}
	if !sameValueSet(oldVar.Values, newVar.Values) {
		vc.Values = &clifdict.ValuesDiff{
			Old: append([]string(nil), oldVar.Values...),
			New: append([]string(nil), newVar.Values...),
		}
	}

	if vc.Type == nil && vc.Description == nil && vc.Values == nil {
		return nil
	}
	return vc
}

// sameValueSet compares two value lists as sets. Display order is preserved
// elsewhere; only membership decides equality.
func sameValueSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, v := range a {
		seen[v]++
	}
	for _, v := range b {
		if seen[v] == 0 {
			return false
		}
		seen[v]--
	}
	return true
}

func nameSet(d *clifdict.Dictionary) map[string]bool {
	set := make(map[string]bool, len(d.Tables))
	for _, t := range d.Tables {
		set[t.Name] = true
	}
	return set
}

func variablesByName(vars []clifdict.Variable) map[string]clifdict.Variable {
	byName := make(map[string]clifdict.Variable, len(vars))
	for _, v := range vars {
		byName[v.Name] = v
	}
	return byName
}

func presentIn(byName map[string]clifdict.Variable) map[string]bool {
	set := make(map[string]bool, len(byName))
	for name := range byName {
		set[name] = true
	}
	return set
}

func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func cloneVariables(vars []clifdict.Variable) []clifdict.Variable {
	out := make([]clifdict.Variable, len(vars))
	for i, v := range vars {
		out[i] = v.Clone()
	}
	return out
}

package changelog

import (
	"sort"

	"github.com/clif-consortium/clifdict/pkg/clifdict"
)

// summarize aggregates the per-table change records into corpus-level counts.
// Every list comes out sorted, and empty lists are non-nil so they serialize
// as explicit empty sequences.
func summarize(changes map[string]*clifdict.TableChange) clifdict.ChangelogSummary {
	summary := clifdict.ChangelogSummary{
		TablesAdded:         []string{},
		TablesRemoved:       []string{},
		TablesModified:      []string{},
		TablesStatusChanged: []string{},
	}

	for name, change := range changes {
		if change.Has(clifdict.ChangeTableAdded) {
			summary.TablesAdded = append(summary.TablesAdded, name)
		}
		if change.Has(clifdict.ChangeTableRemoved) {
			summary.TablesRemoved = append(summary.TablesRemoved, name)
		}
		if change.Has(clifdict.ChangeTableModified) {
			summary.TablesModified = append(summary.TablesModified, name)
		}
		if change.Has(clifdict.ChangeTableStatusChanged) {
			summary.TablesStatusChanged = append(summary.TablesStatusChanged, name)

			key := clifdict.TransitionKey(change.OldStatus, change.NewStatus)
			if summary.StatusChanges == nil {
				summary.StatusChanges = make(map[string]*clifdict.StatusTransition)
			}
			bucket := summary.StatusChanges[key]
			if bucket == nil {
				bucket = &clifdict.StatusTransition{}
				summary.StatusChanges[key] = bucket
			}
			bucket.Count++
			bucket.Tables = append(bucket.Tables, name)
		}
	}

	sort.Strings(summary.TablesAdded)
	sort.Strings(summary.TablesRemoved)
	sort.Strings(summary.TablesModified)
	sort.Strings(summary.TablesStatusChanged)
	for _, bucket := range summary.StatusChanges {
		sort.Strings(bucket.Tables)
	}

	summary.TotalChanges = totalChanges(changes)
	return summary
}

// totalChanges counts changed entities: an added or removed table is one
// entity, a status transition is one, and every variable added, removed or
// modified within a surviving table is one.
func totalChanges(changes map[string]*clifdict.TableChange) int {
	total := 0
	for _, change := range changes {
		if change.Has(clifdict.ChangeTableAdded) || change.Has(clifdict.ChangeTableRemoved) {
			total++
			continue
		}
		if change.Has(clifdict.ChangeTableStatusChanged) {
			total++
		}
		total += len(change.VariablesAdded) + len(change.VariablesRemoved) + len(change.VariablesModified)
	}
	return total
}

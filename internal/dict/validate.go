package dict

import (
	"fmt"
	"strings"

	"github.com/clif-consortium/clifdict/pkg/clifdict"
)

// Validate checks the Dictionary invariants the differ depends on: unique
// table names, unique variable names within each table, non-empty names and
// a recognized status on every table. Dictionaries produced by Build satisfy
// these by construction; persisted documents may have been edited by hand,
// so the differ validates both inputs before comparing.
//
// A violation is a precondition failure: the returned error wraps
// clifdict.ErrInvalidDictionary and the caller must not write any output.
func Validate(d *clifdict.Dictionary) error {
	var problems []string

	tableSeen := make(map[string]bool)
	for _, table := range d.Tables {
		if table.Name == "" {
			problems = append(problems, "table with empty name")
			continue
		}
		if tableSeen[table.Name] {
			problems = append(problems, fmt.Sprintf("duplicate table %q", table.Name))
			continue
		}
		tableSeen[table.Name] = true

		if _, ok := clifdict.ParseStatus(string(table.Status)); !ok {
			problems = append(problems, fmt.Sprintf("table %q has unrecognized status %q", table.Name, table.Status))
		}

		varSeen := make(map[string]bool)
		for _, v := range table.Variables {
			if v.Name == "" {
				problems = append(problems, fmt.Sprintf("table %q has a variable with empty name", table.Name))
				continue
			}
			if varSeen[v.Name] {
				problems = append(problems, fmt.Sprintf("table %q declares variable %q more than once", table.Name, v.Name))
				continue
			}
			varSeen[v.Name] = true
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", clifdict.ErrInvalidDictionary, strings.Join(problems, "; "))
}

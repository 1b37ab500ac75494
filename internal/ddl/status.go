package ddl

import (
	"regexp"
	"strings"

	"github.com/clif-consortium/clifdict/pkg/clifdict"
)

// statusMarkerRegex matches a maturity marker inside a comment, e.g. "#beta".
var statusMarkerRegex = regexp.MustCompile(`#(\w+)`)

// ExtractStatuses scans schema source for per-table maturity markers and
// returns a table→status map. A marker is recognized on the CREATE TABLE
// line itself or on the immediately preceding comment line:
//
//	-- #beta
//	CREATE TABLE ecmo_mcs (...);
//
//	CREATE TABLE vitals ( -- #concept
//
// Tables without an entry in the returned map default to concept at build
// time. Unrecognized marker text is ignored with a warning and likewise
// defaults to concept. This pass never fails.
func ExtractStatuses(content string) (map[string]clifdict.Status, []clifdict.Warning) {
	statuses := make(map[string]clifdict.Status)
	var warnings []clifdict.Warning

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		m := createTableRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[1]

		marker, ok := markerOnLine(line)
		if !ok && i > 0 {
			if prev := strings.TrimSpace(lines[i-1]); strings.HasPrefix(prev, "--") {
				marker, ok = markerOnLine(prev)
			}
		}
		if !ok {
			continue
		}

		status, recognized := clifdict.ParseStatus(marker)
		if !recognized {
			warnings = append(warnings, clifdict.Warning{
				Kind:    clifdict.WarnUnknownStatus,
				Table:   name,
				Line:    i + 1,
				Message: "unrecognized status marker #" + marker + ", defaulting to concept",
			})
			continue
		}
		statuses[name] = status
	}

	return statuses, warnings
}

// markerOnLine finds a #marker token in the comment portion of a line.
// Markers outside comments are ignored so quoted data cannot masquerade as
// a status tag.
func markerOnLine(line string) (string, bool) {
	idx := strings.Index(line, "--")
	if idx < 0 {
		return "", false
	}
	m := statusMarkerRegex.FindStringSubmatch(line[idx:])
	if m == nil {
		return "", false
	}
	return m[1], true
}

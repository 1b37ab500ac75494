package ddl

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/clif-consortium/clifdict/pkg/clifdict"
)

// Column is one parsed column declaration: the raw declared type token and
// the inline descriptive comment, if any, exactly as authored.
type Column struct {
	Name    string
	RawType string
	Comment string
	Line    int
}

// TableDef is one parsed CREATE TABLE statement with columns in declaration
// order.
type TableDef struct {
	Name    string
	Line    int
	Columns []Column
}

// ParseResult carries the parsed tables plus every recoverable anomaly
// encountered on the way.
type ParseResult struct {
	Tables   []TableDef
	Warnings []clifdict.Warning
}

// createTableRegex locates table declarations. Quoting styles and the
// optional IF NOT EXISTS clause vary between the dialect files.
var createTableRegex = regexp.MustCompile("(?i)\\bCREATE\\s+TABLE\\s+(?:IF\\s+NOT\\s+EXISTS\\s+)?[`\"]?(\\w+)[`\"]?")

// commentClauseRegex extracts MySQL-style COMMENT 'text' clauses.
// Doubled single quotes inside the text are an escape.
var commentClauseRegex = regexp.MustCompile(`(?i)\bCOMMENT\s+'((?:[^']|'')*)'`)

// constraint leads a table-level clause that declares no column.
var constraintKeywords = map[string]bool{
	"PRIMARY":    true,
	"FOREIGN":    true,
	"CONSTRAINT": true,
	"UNIQUE":     true,
	"KEY":        true,
	"CHECK":      true,
	"INDEX":      true,
}

// Parse extracts every table declaration from raw DDL text. Malformed
// statements are skipped with a warning carrying the statement's starting
// line; no column is ever duplicated or reordered relative to the source.
func Parse(content string) ParseResult {
	var result ParseResult
	seen := make(map[string]bool)

	matches := createTableRegex.FindAllStringSubmatchIndex(content, -1)
	for _, m := range matches {
		start, end := m[0], m[1]
		name := content[m[2]:m[3]]
		line := lineAt(content, start)

		body, bodyStart, ok := tableBody(content, end)
		if !ok {
			result.Warnings = append(result.Warnings, clifdict.Warning{
				Kind:    clifdict.WarnMalformedStatement,
				Table:   name,
				Line:    line,
				Message: "could not find a balanced column list, statement skipped",
			})
			continue
		}

		if seen[name] {
			result.Warnings = append(result.Warnings, clifdict.Warning{
				Kind:    clifdict.WarnMalformedStatement,
				Table:   name,
				Line:    line,
				Message: "table declared more than once, keeping the first declaration",
			})
			continue
		}
		seen[name] = true

		table := TableDef{Name: name, Line: line}
		cols, warns := parseColumns(name, content, body, bodyStart)
		table.Columns = cols
		result.Warnings = append(result.Warnings, warns...)
		result.Tables = append(result.Tables, table)
	}

	return result
}

// tableBody finds the parenthesized column list starting at or after from.
// It returns the body text (without the outer parentheses), the absolute
// offset of the body start, and whether a balanced list was found. Scanning
// is quote- and comment-aware so parentheses inside string literals or line
// comments do not unbalance the count.
func tableBody(content string, from int) (string, int, bool) {
	open := -1
	for i := from; i < len(content); i++ {
		c := content[i]
		if c == '(' {
			open = i
			break
		}
		// Whitespace and line comments (status markers ride there) may
		// appear between the table name and the list; anything else means
		// there is no column list to parse.
		if c == '-' && i+1 < len(content) && content[i+1] == '-' {
			for i < len(content) && content[i] != '\n' {
				i++
			}
			continue
		}
		if !isSpace(c) {
			return "", 0, false
		}
	}
	if open == -1 {
		return "", 0, false
	}

	depth := 0
	inQuote := false
	for i := open; i < len(content); i++ {
		c := content[i]
		switch {
		case inQuote:
			if c == '\'' {
				if i+1 < len(content) && content[i+1] == '\'' {
					i++ // escaped quote
					continue
				}
				inQuote = false
			}
		case c == '\'':
			inQuote = true
		case c == '-' && i+1 < len(content) && content[i+1] == '-':
			for i < len(content) && content[i] != '\n' {
				i++
			}
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return content[open+1 : i], open + 1, true
			}
		}
	}
	return "", 0, false
}

// parseColumns splits the body at top-level commas and parses each segment
// into a column. Trailing commas produce empty segments, which are skipped;
// table-level constraints are skipped silently; duplicate column names keep
// the first declaration with a warning.
func parseColumns(table, content, body string, bodyStart int) ([]Column, []clifdict.Warning) {
	var cols []Column
	var warns []clifdict.Warning
	seen := make(map[string]bool)

	for _, seg := range splitTopLevel(body) {
		col, carryback, ok := parseColumn(seg.text)
		// A -- comment that shares its source line with the previous
		// column's comma documents that previous column.
		if carryback != "" && len(cols) > 0 && cols[len(cols)-1].Comment == "" {
			cols[len(cols)-1].Comment = carryback
		}
		if !ok {
			continue
		}
		col.Line = lineAt(content, bodyStart+seg.offset) + col.Line

		if seen[col.Name] {
			warns = append(warns, clifdict.Warning{
				Kind:    clifdict.WarnDuplicateColumn,
				Table:   table,
				Column:  col.Name,
				Line:    col.Line,
				Message: "column declared more than once, keeping the first declaration",
			})
			continue
		}
		seen[col.Name] = true
		cols = append(cols, col)
	}
	return cols, warns
}

type segment struct {
	text   string
	offset int
}

// splitTopLevel splits a column list body on commas at parenthesis depth
// zero, honoring quotes and line comments the same way tableBody does.
func splitTopLevel(body string) []segment {
	var segs []segment
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case inQuote:
			if c == '\'' {
				if i+1 < len(body) && body[i+1] == '\'' {
					i++
					continue
				}
				inQuote = false
			}
		case c == '\'':
			inQuote = true
		case c == '-' && i+1 < len(body) && body[i+1] == '-':
			for i < len(body) && body[i] != '\n' {
				i++
			}
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ',' && depth == 0:
			segs = append(segs, segment{text: body[start:i], offset: start})
			start = i + 1
		}
	}
	segs = append(segs, segment{text: body[start:], offset: start})
	return segs
}

// parseColumn parses one column segment. The returned Line is the segment-
// relative line of the declaration (lines occupied by leading comments and
// blank lines), added to the segment's absolute starting line by the caller.
// carryback is a -- comment found on the segment's first physical line,
// which in source shared a line with the previous column's comma.
func parseColumn(seg string) (col Column, carryback string, ok bool) {
	var preceding []string
	var defLine string
	relLine := 0

	lines := strings.Split(seg, "\n")
	for i, ln := range lines {
		trimmed := strings.TrimSpace(ln)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "--") {
			text := strings.TrimSpace(strings.TrimPrefix(trimmed, "--"))
			if i == 0 {
				carryback = text
			} else {
				preceding = append(preceding, text)
			}
			continue
		}
		// The declaration may continue over following lines (e.g. a COMMENT
		// clause wrapped onto its own line); join the remainder.
		defLine = strings.Join(lines[i:], "\n")
		relLine = i
		break
	}
	if defLine == "" {
		return Column{}, carryback, false
	}

	// MySQL-style COMMENT clause wins over -- comments.
	comment := ""
	if m := commentClauseRegex.FindStringSubmatch(defLine); m != nil {
		comment = strings.ReplaceAll(m[1], "''", "'")
		defLine = commentClauseRegex.ReplaceAllString(defLine, "")
	}

	// Trailing -- comment on the declaration line.
	var inline []string
	var defText strings.Builder
	for _, ln := range strings.Split(defLine, "\n") {
		if idx := strings.Index(ln, "--"); idx >= 0 {
			inline = append(inline, strings.TrimSpace(ln[idx+2:]))
			ln = ln[:idx]
		}
		defText.WriteString(ln)
		defText.WriteByte(' ')
	}
	if comment == "" && len(inline) > 0 {
		comment = strings.Join(inline, " ")
	}
	if comment == "" && len(preceding) > 0 {
		comment = strings.Join(preceding, " ")
	}

	fields := tokenize(defText.String())
	if len(fields) == 0 {
		return Column{}, carryback, false
	}

	name := strings.Trim(fields[0], "`\"")
	if name == "" || constraintKeywords[strings.ToUpper(name)] {
		return Column{}, carryback, false
	}

	rawType := ""
	if len(fields) > 1 {
		rawType = fields[1]
	}

	return Column{
		Name:    name,
		RawType: rawType,
		Comment: strings.TrimSpace(comment),
		Line:    relLine,
	}, carryback, true
}

// tokenize splits a declaration into whitespace-separated tokens, keeping
// parenthesized type arguments like DECIMAL(10,2) attached to their token.
func tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '(':
			depth++
			cur.WriteByte(c)
		case c == ')':
			depth--
			cur.WriteByte(c)
		case isSpace(c) && depth == 0:
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

// NormalizeKind maps a declared SQL type and column name onto the semantic
// kind set. The categorical signal is the column naming convention, not the
// SQL type: category columns are declared as plain VARCHARs.
func NormalizeKind(rawType, name string) clifdict.Kind {
	if IsCategoricalName(name) {
		return clifdict.KindCategorical
	}
	t := strings.ToUpper(rawType)
	switch {
	case strings.Contains(t, "BOOL"):
		return clifdict.KindBoolean
	case strings.Contains(t, "INT"),
		strings.Contains(t, "FLOAT"),
		strings.Contains(t, "DOUBLE"),
		strings.Contains(t, "DECIMAL"),
		strings.Contains(t, "NUMERIC"),
		strings.Contains(t, "REAL"):
		return clifdict.KindNumeric
	case strings.Contains(t, "TIMESTAMP"),
		strings.Contains(t, "DATETIME"),
		strings.Contains(t, "DATE"),
		strings.Contains(t, "TIME"):
		return clifdict.KindDatetime
	default:
		return clifdict.KindString
	}
}

// IsCategoricalName reports whether a column name carries the controlled
// vocabulary suffix convention (vital_category, organism_group, ...).
func IsCategoricalName(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, "_category") || strings.HasSuffix(lower, "_group")
}

// commentPayload mirrors the JSON comment convention in the CLIF DDL files:
// {"description": "...", "permissible": ...}.
type commentPayload struct {
	Description string      `json:"description"`
	Permissible interface{} `json:"permissible"`
}

// ParseComment interprets a column comment. JSON comments yield their
// description field and, when the permissible field enumerates values, the
// inline value list; plain-text comments are returned verbatim.
func ParseComment(comment string) (description string, permissible []string) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return "", nil
	}
	var payload commentPayload
	if err := json.Unmarshal([]byte(comment), &payload); err != nil {
		return comment, nil
	}
	return payload.Description, permissibleValues(payload.Permissible)
}

// permissibleValues extracts an inline value enumeration from the
// permissible field. "No restriction", URLs and free text yield nil; JSON
// arrays and comma-separated lists yield their values in order.
func permissibleValues(raw interface{}) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case []interface{}:
		var values []string
		for _, item := range v {
			s := strings.TrimSpace(fmt.Sprintf("%v", item))
			if s != "" {
				values = append(values, s)
			}
		}
		return values
	case string:
		s := strings.TrimSpace(v)
		if s == "" || strings.EqualFold(s, "No restriction") || strings.HasPrefix(s, "http") {
			return nil
		}
		if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
			s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
		} else if !strings.Contains(s, ",") {
			return nil
		}
		var values []string
		for _, part := range strings.Split(s, ",") {
			part = strings.Trim(strings.TrimSpace(part), `"`)
			if part != "" && !strings.HasPrefix(part, "http") {
				values = append(values, part)
			}
		}
		return values
	default:
		return nil
	}
}

func lineAt(content string, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return 1 + strings.Count(content[:offset], "\n")
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

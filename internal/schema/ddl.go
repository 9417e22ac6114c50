package schema

import (
	"regexp"
	"strings"
)

// indexKeyRegexp pulls the parenthesized key-column list out of a CREATE
// INDEX statement.
var indexKeyRegexp = regexp.MustCompile(`\((.*)\)`)

// ParseTableColumns extracts a TblCols view from a CREATE TABLE statement's
// stored sql text. This is a small
// hand-rolled splitter, not a general SQL parser: it only needs to find
// the parenthesized column list and recognize the INTEGER PRIMARY KEY
// marker on each column.
func ParseTableColumns(sql string) (*TblCols, error) {
	open := strings.IndexByte(sql, '(')
	if open < 0 {
		return nil, errf("CREATE TABLE statement has no column list: %q", sql)
	}
	close := strings.LastIndexByte(sql, ')')
	if close < 0 || close < open {
		return nil, errf("CREATE TABLE statement has unbalanced parens: %q", sql)
	}
	body := sql[open+1 : close]

	defs := []ColDef{}
	for _, part := range splitTopLevelCommas(body) {
		def, ok := parseColumnDef(part)
		if ok {
			defs = append(defs, def)
		}
	}
	if len(defs) == 0 {
		return nil, errf("CREATE TABLE statement yielded no columns: %q", sql)
	}
	return newTblCols(defs), nil
}

// ParseIndexColumn extracts the single indexed column name from a CREATE
// INDEX statement's stored sql text.
func ParseIndexColumn(sql string) (*IdxCols, error) {
	m := indexKeyRegexp.FindStringSubmatch(sql)
	if m == nil {
		return nil, errf("CREATE INDEX statement has no key column: %q", sql)
	}
	cols := splitTopLevelCommas(m[1])
	if len(cols) == 0 {
		return nil, errf("CREATE INDEX statement has an empty key list: %q", sql)
	}
	name := strings.TrimSpace(strings.Fields(strings.TrimSpace(cols[0]))[0])
	return &IdxCols{Col: unquoteIdent(name)}, nil
}

// splitTopLevelCommas splits on commas that are not nested inside
// parentheses, so a column like `price DECIMAL(10,2)` is not split.
func splitTopLevelCommas(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}

// tableConstraintKeywords are leading tokens that mark a column-list entry
// as a table-level constraint rather than a column definition.
var tableConstraintKeywords = map[string]bool{
	"primary":    true,
	"unique":     true,
	"check":      true,
	"foreign":    true,
	"constraint": true,
}

// parseColumnDef parses one entry of a CREATE TABLE column list into a
// ColDef, reporting ok=false for table-level constraint entries that carry
// no column of their own.
func parseColumnDef(raw string) (ColDef, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ColDef{}, false
	}

	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return ColDef{}, false
	}
	if tableConstraintKeywords[strings.ToLower(fields[0])] {
		return ColDef{}, false
	}

	name := unquoteIdent(fields[0])
	lower := strings.ToLower(trimmed)
	intPK := strings.Contains(lower, "integer primary key")

	return ColDef{Name: name, IntPK: intPK}, true
}

// unquoteIdent strips a single layer of double, single, or backtick quotes
// and any trailing column-list punctuation from an identifier token.
func unquoteIdent(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, ",)")
	if len(s) >= 2 {
		switch {
		case s[0] == '"' && s[len(s)-1] == '"',
			s[0] == '\'' && s[len(s)-1] == '\'',
			s[0] == '`' && s[len(s)-1] == '`',
			s[0] == '[' && s[len(s)-1] == ']':
			s = s[1 : len(s)-1]
		}
	}
	return s
}

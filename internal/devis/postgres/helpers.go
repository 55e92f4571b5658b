package postgres

import "strings"

// prefixColumns qualifies each column in a comma-separated column list with
// an alias, for use in joined queries that would otherwise be ambiguous.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(out, ", ")
}

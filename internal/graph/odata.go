package graph

import "strings"

// EscapeOData escapes a string for use inside a single-quoted OData literal.
// OData doubles embedded single quotes rather than backslash-escaping them.
func EscapeOData(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

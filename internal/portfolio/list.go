package portfolio

import "strings"

// ParseList splits a comma-separated input into trimmed items, preserving order.
// An empty input yields a single empty item.
func ParseList(raw string) []string {
	parts := strings.Split(raw, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

// JoinList renders a list back into the comma-separated form used by text inputs.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

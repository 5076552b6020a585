package agenda

import "strings"

// ParseTagList splits a comma-separated list into normalized tag names.
//
//	ParseTagList("a, b,,a") // ["a" "b"]
func ParseTagList(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}

// NormalizeTags trims every name, drops empty ones and removes duplicates,
// keeping the first occurrence. The result is never nil.
func NormalizeTags(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

package registry

import "strings"

const sep = `\`

// joinNames joins path names with the registry separator, discarding empties.
func joinNames(names ...string) string {
	out := names[:0:0]
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, sep)
}

// splitParts normalizes either directory-style separator and splits into
// non-empty segments.
func splitParts(name string) []string {
	name = strings.ReplaceAll(name, "/", sep)
	parts := strings.Split(name, sep)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

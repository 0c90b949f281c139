package utils

import (
	"strings"
)

// SplitList splits s on any of seps, trimming blanks and dropping empty items.
// "a; b,,c" with ';' and ',' yields [a b c].
func SplitList(s string, seps ...rune) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		for _, sep := range seps {
			if r == sep {
				return true
			}
		}
		return false
	})
	out := fields[:0]
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

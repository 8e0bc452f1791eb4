package catalog

import "github.com/mattsblocklist/dialcodes/internal/entry"

// SelectDefault returns the position in entries of the first entry that
// matches def, else 0. It returns NoIndex only for an empty slice.
func SelectDefault(entries []entry.Parsed, def Default) int {
	if len(entries) == 0 {
		return NoIndex
	}
	for i, e := range entries {
		if def.Matches(e) {
			return i
		}
	}
	return 0
}

// Package countries provides flag glyph decoding, label collation and
// name-to-code reference lookups for country selection lists.
package countries

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Pair is a known country label with its code.
type Pair struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Reference resolves country names to codes by case-insensitive exact match
// on their labels. The first pair registered for a label wins.
type Reference struct {
	labelToCode map[string]string
	codeToLabel map[string]string
}

// NewReference creates a reference seeded with the given pairs. Pairs with
// an empty label or value are ignored.
func NewReference(pairs []Pair) *Reference {
	r := &Reference{
		labelToCode: make(map[string]string, len(pairs)),
		codeToLabel: make(map[string]string, len(pairs)),
	}
	for _, p := range pairs {
		r.Add(p.Label, p.Value)
	}
	return r
}

// Add registers label -> code unless the label is already known.
func (r *Reference) Add(label, code string) {
	key := FoldName(label)
	code = strings.TrimSpace(code)
	if key == "" || code == "" {
		return
	}
	if _, ok := r.labelToCode[key]; ok {
		return
	}

	r.labelToCode[key] = code
	if _, ok := r.codeToLabel[code]; !ok {
		r.codeToLabel[code] = strings.TrimSpace(label)
	}
}

// Lookup returns the code registered for name.
func (r *Reference) Lookup(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	code, ok := r.labelToCode[FoldName(name)]
	return code, ok
}

// Label returns the first label registered for code.
func (r *Reference) Label(code string) (string, bool) {
	if r == nil {
		return "", false
	}
	label, ok := r.codeToLabel[code]
	return label, ok
}

// FoldName maps a name to its case-folded comparison form.
func FoldName(s string) string {
	s = norm.NFC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	return cases.Fold().String(s)
}

// EqualNames reports whether two names are equal ignoring case.
func EqualNames(a, b string) bool {
	return FoldName(a) == FoldName(b)
}

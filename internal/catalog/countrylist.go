package catalog

import (
	"sort"

	"golang.org/x/text/language"

	"github.com/mattsblocklist/dialcodes/internal/countries"
)

// DefaultPlaceholder is the label of the unselected first option.
const DefaultPlaceholder = "Sélectionnez un pays"

// CountryOption is one item of the country selection list.
type CountryOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// ListBuilder builds country selection lists.
type ListBuilder struct {
	Placeholder string
	DefaultISO  string
	Locale      language.Tag
	// Compare overrides locale collation. It must be safe for concurrent
	// use when the builder is shared.
	Compare countries.CompareFunc
}

// NewListBuilder returns a builder with the French placeholder and
// collation, selecting defaultISO.
func NewListBuilder(defaultISO string) *ListBuilder {
	return &ListBuilder{
		Placeholder: DefaultPlaceholder,
		DefaultISO:  defaultISO,
		Locale:      language.French,
	}
}

// Build returns the placeholder followed by records sorted by label, ties
// kept in input order. The record keyed DefaultISO is marked selected.
// records is not modified.
func (b *ListBuilder) Build(records []CountryRecord) []CountryOption {
	cmp := b.Compare
	if cmp == nil {
		cmp = countries.Collation(b.Locale)
	}

	sorted := make([]CountryRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return cmp(sorted[i].Label, sorted[j].Label) < 0
	})

	out := make([]CountryOption, 0, len(sorted)+1)
	out = append(out, CountryOption{Value: "", Label: b.Placeholder})
	for _, r := range sorted {
		out = append(out, CountryOption{
			Value:    r.Key,
			Label:    r.Label,
			Selected: b.DefaultISO != "" && r.Key == b.DefaultISO,
		})
	}
	return out
}

// ApplyFallback selects an option when none is selected: alternateISO if
// listed, else the first real country. Placeholder-only lists are left
// unchanged. It reports whether a selection was made.
func ApplyFallback(options []CountryOption, alternateISO string) bool {
	for _, o := range options {
		if o.Selected {
			return false
		}
	}

	if alternateISO != "" {
		for i := range options {
			if options[i].Value == alternateISO {
				options[i].Selected = true
				return true
			}
		}
	}

	for i := range options {
		if options[i].Value != "" {
			options[i].Selected = true
			return true
		}
	}
	return false
}

package catalog

import "strings"

// DialOption is one item of the dial-code selection list.
type DialOption struct {
	Value      string `json:"value"`
	Label      string `json:"label"`
	CountryKey string `json:"country_key"`
	Selected   bool   `json:"selected"`
}

// Selectors bundles both selection lists.
type Selectors struct {
	Countries    []CountryOption `json:"countries"`
	DialCodes    []DialOption    `json:"dial_codes"`
	DefaultIndex int             `json:"default_index"`
}

// DialOptions lists every valid entry of res, selecting the default one.
// Flagged entries are labelled "<flag> <dial> <ISO>", others "<dial> <name>".
func DialOptions(res Result) []DialOption {
	out := make([]DialOption, 0, len(res.Entries))
	for _, e := range res.Entries {
		var parts []string
		if e.Flag != "" {
			parts = []string{e.Flag, e.Dial, e.ISO}
		} else {
			parts = []string{e.Dial, e.Name}
		}

		out = append(out, DialOption{
			Value:      e.Dial,
			Label:      strings.TrimSpace(strings.Join(parts, " ")),
			CountryKey: e.Key(),
			Selected:   e.Index == res.DefaultIndex,
		})
	}
	return out
}

// Assemble builds both selection lists from res.
func Assemble(res Result, b *ListBuilder) Selectors {
	return Selectors{
		Countries:    b.Build(res.Countries),
		DialCodes:    DialOptions(res),
		DefaultIndex: res.DefaultIndex,
	}
}

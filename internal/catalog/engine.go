// Package catalog turns raw dial-code entries into a deduplicated country
// selection list and a dial-code selection list with a default choice.
package catalog

import (
	"github.com/mattsblocklist/dialcodes/internal/countries"
	"github.com/mattsblocklist/dialcodes/internal/entry"
)

// NoIndex marks an absent default.
const NoIndex = -1

// Default identifies the country selected when nothing else is chosen.
type Default struct {
	ISO  string `yaml:"iso"`
	Name string `yaml:"name"`
	// FallbackISO is the alternate selection applied by ApplyFallback.
	FallbackISO string `yaml:"fallback_iso"`
}

// Togo is the stock default.
var Togo = Default{ISO: "TG", Name: "Togo"}

// Matches reports whether e designates the default country.
func (d Default) Matches(e entry.Parsed) bool {
	if d.ISO != "" && e.ISO == d.ISO {
		return true
	}
	return d.Name != "" && countries.EqualNames(e.Label(), d.Name)
}

// CountryRecord is one unique country: its identity key and first-seen label.
type CountryRecord struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Result is the output of one normalization run.
type Result struct {
	Countries []CountryRecord `json:"countries"`
	// Entries holds the valid entries in input order, duplicates included.
	Entries []entry.Parsed `json:"entries"`
	// DefaultIndex is the input index of the default dial entry, or NoIndex.
	DefaultIndex int `json:"default_index"`
	// Dropped holds the input indexes of entries without a dial code.
	Dropped []int `json:"dropped,omitempty"`
}

// Engine normalizes raw entries. The zero value is not usable; see NewEngine.
type Engine struct {
	parser *entry.Parser
	def    Default
}

// NewEngine creates an engine. A nil parser uses the default strategies.
func NewEngine(parser *entry.Parser, def Default) *Engine {
	if parser == nil {
		parser = entry.NewParser()
	}
	return &Engine{parser: parser, def: def}
}

// Normalize parses every raw entry in order, drops the invalid ones and
// deduplicates countries by identity key, keeping the first label seen.
//
// When reference is nil, the names resolved so far serve as the lookup for
// later entries. Normalize holds no state between calls.
func (e *Engine) Normalize(raw []string, reference []countries.Pair) Result {
	var ref *countries.Reference
	accumulate := reference == nil
	if accumulate {
		ref = countries.NewReference(nil)
	} else {
		ref = countries.NewReference(reference)
	}

	res := Result{DefaultIndex: NoIndex}
	seen := make(map[string]bool)

	for i, r := range raw {
		parsed := e.parser.Parse(r, ref)
		parsed.Index = i
		if !parsed.Valid() {
			res.Dropped = append(res.Dropped, i)
			continue
		}

		if accumulate && parsed.Resolved() && parsed.Name != "" {
			ref.Add(parsed.Name, parsed.ISO)
		}

		key := parsed.Key()
		if !seen[key] {
			seen[key] = true
			res.Countries = append(res.Countries, CountryRecord{Key: key, Label: parsed.Label()})
		}
		res.Entries = append(res.Entries, parsed)
	}

	if pos := SelectDefault(res.Entries, e.def); pos != NoIndex {
		res.DefaultIndex = res.Entries[pos].Index
	}
	return res
}

// Normalize runs a default engine configured with def.
func Normalize(raw []string, reference []countries.Pair, def Default) Result {
	return NewEngine(nil, def).Normalize(raw, reference)
}

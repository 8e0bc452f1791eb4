// Package entry parses loosely formatted dial-code display strings such as
// "🇹🇬 +228 Togo" into their flag, dial code and country name.
package entry

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mattsblocklist/dialcodes/internal/countries"
)

// Origin records where a parsed entry's ISO value came from.
type Origin string

const (
	OriginFlag      Origin = "flag"
	OriginReference Origin = "reference"
	OriginFallback  Origin = "fallback"
)

// Parsed is the result of parsing one raw entry. An entry with an empty
// Dial is invalid.
type Parsed struct {
	Index    int    `json:"index"`
	Raw      string `json:"raw"`
	Flag     string `json:"flag,omitempty"`
	Dial     string `json:"dial"`
	Name     string `json:"name,omitempty"`
	ISO      string `json:"iso,omitempty"`
	Origin   Origin `json:"origin,omitempty"`
	Strategy string `json:"strategy,omitempty"`
}

// Valid reports whether the entry carries a dial code.
func (p Parsed) Valid() bool {
	return p.Dial != ""
}

// Key returns the identity used to group entries of the same country:
// ISO, else name, else dial code.
func (p Parsed) Key() string {
	switch {
	case p.ISO != "":
		return p.ISO
	case p.Name != "":
		return p.Name
	default:
		return p.Dial
	}
}

// Label returns the country label: the name, else the dial code.
func (p Parsed) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Dial
}

// Resolved reports whether ISO is a genuine code rather than the name or
// dial fallback.
func (p Parsed) Resolved() bool {
	return p.Origin == OriginFlag || p.Origin == OriginReference
}

// Lookup resolves a country name to a code.
type Lookup interface {
	Lookup(name string) (string, bool)
}

// Strategy is one named parsing attempt. Match returns false when the raw
// string does not fit the strategy's pattern.
type Strategy struct {
	Name string
	// CrossReference enables name lookups for entries this strategy
	// produced without an ISO code.
	CrossReference bool
	Match          func(raw string) (Parsed, bool)
}

var (
	// space also covers NBSP and other Unicode separators.
	space = `[\s\p{Zs}]`

	dialExpr = `\+[\s\p{Zs}(]*\d(?:[\d\s\p{Zs}()]*[\d)])?`
	flagExpr = `[\x{1F1E6}-\x{1F1FF}]{2}`

	strictPattern = regexp.MustCompile(`^(` + flagExpr + `)` + space + `+(` + dialExpr + `)` + space + `+(\S.*)$`)
	dialPattern   = regexp.MustCompile(dialExpr)
	flagPattern   = regexp.MustCompile(flagExpr)
	emptyParens   = regexp.MustCompile(`\(` + space + `*\)`)
)

// DefaultStrategies returns the standard cascade: strict triple, loose
// dial+name, naive whitespace split.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "strict", Match: matchStrict},
		{Name: "loose", CrossReference: true, Match: matchLoose},
		{Name: "split", CrossReference: true, Match: matchSplit},
	}
}

// Parser applies strategies in order and keeps the first usable result.
type Parser struct {
	strategies []Strategy
}

// NewParser creates a parser. With no strategies it uses DefaultStrategies.
func NewParser(strategies ...Strategy) *Parser {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Parser{strategies: strategies}
}

// Parse parses one raw entry. ref may be nil. The returned entry is invalid
// (empty Dial) when no strategy finds a dial code.
func (p *Parser) Parse(raw string, ref Lookup) Parsed {
	raw = strings.TrimSpace(raw)

	for _, s := range p.strategies {
		parsed, ok := s.Match(raw)
		if !ok || parsed.Dial == "" {
			continue
		}
		parsed.Raw = raw
		parsed.Strategy = s.Name

		if parsed.ISO == "" && parsed.Name != "" && s.CrossReference && ref != nil {
			if code, found := ref.Lookup(parsed.Name); found {
				parsed.ISO = code
				parsed.Origin = OriginReference
			}
		}

		if parsed.ISO == "" {
			parsed.ISO = parsed.Label()
			parsed.Origin = OriginFallback
		}
		return parsed
	}

	return Parsed{Raw: raw}
}

// Parse parses raw with the default strategies.
func Parse(raw string, ref Lookup) Parsed {
	return defaultParser.Parse(raw, ref)
}

var defaultParser = NewParser()

func matchStrict(raw string) (Parsed, bool) {
	m := strictPattern.FindStringSubmatch(raw)
	if m == nil {
		return Parsed{}, false
	}

	parsed := Parsed{
		Flag: m[1],
		Dial: collapse(trimUnbalanced(m[2])),
		Name: strings.TrimSpace(m[3]),
	}
	if iso, ok := countries.DecodeFlag(parsed.Flag); ok {
		parsed.ISO = iso
		parsed.Origin = OriginFlag
	}
	return parsed, true
}

func matchLoose(raw string) (Parsed, bool) {
	loc := dialPattern.FindStringIndex(raw)
	if loc == nil {
		return Parsed{}, false
	}

	// A ")" closing a paren opened before the dial goes back to the name.
	dial := trimUnbalanced(raw[loc[0]:loc[1]])
	loc[1] = loc[0] + len(dial)

	parsed := Parsed{Dial: collapse(dial)}
	rest := raw[:loc[0]] + " " + raw[loc[1]:]

	if f := flagPattern.FindStringIndex(rest); f != nil {
		parsed.Flag = rest[f[0]:f[1]]
		rest = rest[:f[0]] + " " + rest[f[1]:]
		if iso, ok := countries.DecodeFlag(parsed.Flag); ok {
			parsed.ISO = iso
			parsed.Origin = OriginFlag
		}
	}

	parsed.Name = collapse(emptyParens.ReplaceAllString(rest, " "))
	return parsed, true
}

func matchSplit(raw string) (Parsed, bool) {
	var (
		parsed Parsed
		name   []string
	)

	for _, tok := range strings.Fields(raw) {
		switch {
		case parsed.Dial == "" && strings.HasPrefix(tok, "+"):
			parsed.Dial = tok
		case parsed.Flag == "" && isFlag(tok):
			parsed.Flag = tok
		default:
			name = append(name, tok)
		}
	}
	if parsed.Dial == "" {
		return Parsed{}, false
	}

	if parsed.Flag != "" {
		if iso, ok := countries.DecodeFlag(parsed.Flag); ok {
			parsed.ISO = iso
			parsed.Origin = OriginFlag
		}
	}
	parsed.Name = strings.Join(name, " ")
	return parsed, true
}

func isFlag(tok string) bool {
	runes := []rune(tok)
	return len(runes) == 2 && countries.IsRegionalIndicator(runes[0]) && countries.IsRegionalIndicator(runes[1])
}

// trimUnbalanced drops trailing ")" that have no matching "(" in dial.
func trimUnbalanced(dial string) string {
	for strings.HasSuffix(dial, ")") && strings.Count(dial, ")") > strings.Count(dial, "(") {
		dial = strings.TrimRightFunc(dial[:len(dial)-1], unicode.IsSpace)
	}
	return dial
}

// collapse trims s and reduces inner whitespace runs to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

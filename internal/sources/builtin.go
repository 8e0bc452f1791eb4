package sources

import (
	"context"

	"golang.org/x/text/language"

	"github.com/mattsblocklist/dialcodes/internal/countries"
)

// BuiltinSource renders the builtin country catalogue as raw entries,
// "<flag> +<code> <name>", with names in the given locale.
type BuiltinSource struct {
	baseSource
	locale language.Tag
}

// NewBuiltinSource creates the builtin source.
func NewBuiltinSource(locale language.Tag) *BuiltinSource {
	return &BuiltinSource{
		baseSource: baseSource{name: "builtin", location: "builtin:" + locale.String()},
		locale:     locale,
	}
}

// Load never fails unless ctx is done.
func (s *BuiltinSource) Load(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	list := countries.Builtin(s.locale)
	entries := make([]string, 0, len(list))
	for _, c := range list {
		entries = append(entries, c.Display())
	}
	return s.newResult(entries, nil), nil
}

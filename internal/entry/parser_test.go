package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsblocklist/dialcodes/internal/countries"
)

func TestParseStrict(t *testing.T) {
	tests := []struct {
		raw  string
		flag string
		dial string
		name string
		iso  string
	}{
		{"🇹🇬 +228 Togo", "🇹🇬", "+228", "Togo", "TG"},
		{"  🇫🇷   +33   France  ", "🇫🇷", "+33", "France", "FR"},
		{"🇹🇬 +228 Togo Republic", "🇹🇬", "+228", "Togo Republic", "TG"},
		{"🇦🇮 +1  (264) Anguilla", "🇦🇮", "+1 (264)", "Anguilla", "AI"},
		{"🇨🇮 +225 Côte d'Ivoire", "🇨🇮", "+225", "Côte d'Ivoire", "CI"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := Parse(tt.raw, nil)
			require.True(t, got.Valid())
			assert.Equal(t, "strict", got.Strategy)
			assert.Equal(t, tt.flag, got.Flag)
			assert.Equal(t, tt.dial, got.Dial)
			assert.Equal(t, tt.name, got.Name)
			assert.Equal(t, tt.iso, got.ISO)
			assert.Equal(t, OriginFlag, got.Origin)

			iso, ok := countries.DecodeFlag(got.Flag)
			require.True(t, ok)
			assert.Equal(t, iso, got.ISO)
		})
	}
}

func TestParseLoose(t *testing.T) {
	got := Parse("+1 (264) Anguilla", nil)
	require.True(t, got.Valid())
	assert.Equal(t, "loose", got.Strategy)
	assert.Equal(t, "+1 (264)", got.Dial)
	assert.Equal(t, "Anguilla", got.Name)
	assert.Empty(t, got.Flag)
	assert.Equal(t, "Anguilla", got.ISO, "falls back to the name")
	assert.Equal(t, OriginFallback, got.Origin)
	assert.False(t, got.Resolved())

	got = Parse("Togo +228", nil)
	assert.Equal(t, "+228", got.Dial)
	assert.Equal(t, "Togo", got.Name)

	got = Parse("🇹🇬+228 Togo", nil)
	assert.Equal(t, "loose", got.Strategy)
	assert.Equal(t, "🇹🇬", got.Flag)
	assert.Equal(t, "TG", got.ISO)
	assert.Equal(t, "Togo", got.Name)

	got = Parse("+228", nil)
	assert.Equal(t, "+228", got.Dial)
	assert.Empty(t, got.Name)
	assert.Equal(t, "+228", got.ISO, "falls back to the dial code")
	assert.Equal(t, "+228", got.Key())
}

func TestParseParenthesizedDial(t *testing.T) {
	tests := []struct {
		raw      string
		strategy string
		flag     string
		dial     string
		name     string
		iso      string
	}{
		{"Togo (+228)", "loose", "", "+228", "Togo", "Togo"},
		{"🇹🇬 Togo (+228)", "loose", "🇹🇬", "+228", "Togo", "TG"},
		{"Togo (🇹🇬) +228", "loose", "🇹🇬", "+228", "Togo", "TG"},
		{"🇹🇬 +228) Togo", "strict", "🇹🇬", "+228", "Togo", "TG"},
		{"🇦🇮 +1 (264)) Anguilla", "strict", "🇦🇮", "+1 (264)", "Anguilla", "AI"},
		{"+1 (264) Anguilla", "loose", "", "+1 (264)", "Anguilla", "Anguilla"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := Parse(tt.raw, nil)
			require.True(t, got.Valid())
			assert.Equal(t, tt.strategy, got.Strategy)
			assert.Equal(t, tt.flag, got.Flag)
			assert.Equal(t, tt.dial, got.Dial)
			assert.Equal(t, tt.name, got.Name)
			assert.Equal(t, tt.iso, got.ISO)
		})
	}
}

func TestParseSplit(t *testing.T) {
	got := Parse("Nowhere +xyz land", nil)
	require.True(t, got.Valid())
	assert.Equal(t, "split", got.Strategy)
	assert.Equal(t, "+xyz", got.Dial)
	assert.Equal(t, "Nowhere land", got.Name)
}

func TestParseInvalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "garbled-no-dial", "🇹🇬 Togo", "228 Togo"} {
		got := Parse(raw, nil)
		assert.False(t, got.Valid(), raw)
		assert.Empty(t, got.ISO, raw)
	}
}

func TestParseCrossReference(t *testing.T) {
	ref := countries.NewReference([]countries.Pair{
		{Label: "Anguilla", Value: "AI"},
		{Label: "Togo", Value: "TG"},
	})

	got := Parse("+1 (264) ANGUILLA", ref)
	assert.Equal(t, "AI", got.ISO)
	assert.Equal(t, OriginReference, got.Origin)
	assert.True(t, got.Resolved())

	got = Parse("+33 France", ref)
	assert.Equal(t, "France", got.ISO, "miss leaves the name fallback")

	// Flag-derived codes take precedence over the reference.
	got = Parse("🇹🇬 +228 Anguilla", ref)
	assert.Equal(t, "TG", got.ISO)
	assert.Equal(t, OriginFlag, got.Origin)
}

func TestParserCustomStrategies(t *testing.T) {
	p := NewParser(Strategy{
		Name: "fixed",
		Match: func(raw string) (Parsed, bool) {
			return Parsed{Dial: "+1", Name: raw}, true
		},
	})

	got := p.Parse(" anything ", nil)
	assert.Equal(t, "fixed", got.Strategy)
	assert.Equal(t, "+1", got.Dial)
	assert.Equal(t, "anything", got.Name)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "TG", Parsed{ISO: "TG", Name: "Togo", Dial: "+228"}.Key())
	assert.Equal(t, "Togo", Parsed{Name: "Togo", Dial: "+228"}.Key())
	assert.Equal(t, "+228", Parsed{Dial: "+228"}.Key())
}

package countries

import "strings"

// Regional indicator symbols A..Z occupy U+1F1E6..U+1F1FF.
const (
	regionalIndicatorA = 0x1F1E6
	regionalIndicatorZ = 0x1F1FF
)

// IsRegionalIndicator reports whether r is a regional indicator symbol.
func IsRegionalIndicator(r rune) bool {
	return r >= regionalIndicatorA && r <= regionalIndicatorZ
}

// DecodeFlag converts a flag glyph (a pair of regional indicator symbols) to
// its ISO 3166-1 alpha-2 code. Only the first two code points are examined.
// It returns false when fewer than two code points are present or either one
// lies outside the regional indicator range.
func DecodeFlag(flag string) (string, bool) {
	runes := []rune(flag)
	if len(runes) < 2 {
		return "", false
	}

	a := runes[0] - regionalIndicatorA
	b := runes[1] - regionalIndicatorA
	if a < 0 || b < 0 || a > 25 || b > 25 {
		return "", false
	}

	return string([]rune{'A' + a, 'A' + b}), true
}

// EncodeFlag converts an ISO 3166-1 alpha-2 code to its flag glyph.
// Returns an empty string for anything that is not two ASCII letters.
func EncodeFlag(iso string) string {
	code := strings.ToUpper(strings.TrimSpace(iso))
	if len(code) != 2 {
		return ""
	}
	if code[0] < 'A' || code[0] > 'Z' || code[1] < 'A' || code[1] > 'Z' {
		return ""
	}

	first := rune(regionalIndicatorA + int32(code[0]-'A'))
	second := rune(regionalIndicatorA + int32(code[1]-'A'))

	return string([]rune{first, second})
}

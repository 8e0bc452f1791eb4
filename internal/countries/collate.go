package countries

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CompareFunc orders two labels, returning a negative number, zero or a
// positive number like strings.Compare.
type CompareFunc func(a, b string) int

// Collation returns a locale-aware comparison for the given tag that folds
// case and accents. The returned function holds collator buffers and must
// not be shared between goroutines.
func Collation(tag language.Tag) CompareFunc {
	c := collate.New(tag, collate.Loose)
	return c.CompareString
}

// FrenchCollation is Collation(language.French).
func FrenchCollation() CompareFunc {
	return Collation(language.French)
}

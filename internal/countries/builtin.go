package countries

import (
	"fmt"
	"sort"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Country is a region known to the phone-number metadata.
type Country struct {
	Alpha2   string `json:"alpha2"`
	Name     string `json:"name"`
	DialCode int    `json:"dial_code"`
}

// Display renders the country as a raw dial-code entry:
// "<flag> +<code> <name>".
func (c Country) Display() string {
	return fmt.Sprintf("%s +%d %s", EncodeFlag(c.Alpha2), c.DialCode, c.Name)
}

// Builtin lists every region with a country calling code, named in the
// language of tag and sorted by Alpha2. Regions without a localised name
// fall back to their code.
func Builtin(tag language.Tag) []Country {
	namer := display.Regions(tag)

	var out []Country
	for region := range phonenumbers.GetSupportedRegions() {
		if len(region) != 2 {
			continue
		}
		code := phonenumbers.GetCountryCodeForRegion(region)
		if code == 0 {
			continue
		}

		name := region
		if namer != nil {
			if r, err := language.ParseRegion(region); err == nil {
				if n := namer.Name(r); n != "" {
					name = n
				}
			}
		}

		out = append(out, Country{Alpha2: region, Name: name, DialCode: code})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Alpha2 < out[j].Alpha2
	})
	return out
}

// BuiltinReference returns the builtin catalogue as label/code pairs.
func BuiltinReference(tag language.Tag) []Pair {
	list := Builtin(tag)
	pairs := make([]Pair, 0, len(list))
	for _, c := range list {
		pairs = append(pairs, Pair{Label: c.Name, Value: c.Alpha2})
	}
	return pairs
}

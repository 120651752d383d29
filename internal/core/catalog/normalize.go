package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds a name for matching: accents removed, lower case, dots
// dropped ("I.E." == "IE"), other punctuation treated as space and runs of
// whitespace collapsed.
func Normalize(s string) string {
	// transform.Chain keeps state, so a fresh one is needed per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.Map(func(r rune) rune {
		switch {
		case r == '.':
			return -1
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		}
		return ' '
	}, folded)
	return strings.Join(strings.Fields(folded), " ")
}

// Trailing district designations, already normalized. Longer forms first.
var townSuffixes = []string{
	"distrito turistico y cultural",
	"distrito capital",
	"dt y c",
	"dtych",
	"dtyc",
	"dtch",
	"deip",
	"d c",
	"dc",
}

// NormalizeTown is Normalize plus removal of district designations, so
// "Bogotá D.C.", "Bogota DC" and "Bogotá" compare equal.
func NormalizeTown(s string) string {
	town := Normalize(s)
	for trimmed := true; trimmed; {
		trimmed = false
		for _, suffix := range townSuffixes {
			if rest, ok := strings.CutSuffix(town, " "+suffix); ok && rest != "" {
				town = rest
				trimmed = true
				break
			}
		}
	}
	return town
}

package valueobject

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lowercaseParticles stay lowercase unless they open the name
var lowercaseParticles = map[string]bool{
	"da": true, "de": true, "do": true, "das": true, "dos": true,
	"e": true, "em": true, "a": true, "o": true, "as": true, "os": true,
	"para": true, "por": true, "com": true, "sem": true, "sob": true,
}

// CapitalizeNameBR title-cases a person, street or city name following
// Portuguese conventions: "RUA DAS FLORES" becomes "Rua das Flores".
func CapitalizeNameBR(s string) string {
	if s == "" {
		return s
	}
	// Casers are stateful; one per call.
	lower := cases.Lower(language.BrazilianPortuguese)
	upper := cases.Upper(language.BrazilianPortuguese)

	words := strings.Split(lower.String(s), " ")
	for i, w := range words {
		if w == "" || (i > 0 && lowercaseParticles[w]) {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = upper.String(string(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

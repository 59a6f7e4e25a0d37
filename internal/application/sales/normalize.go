package sales

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	docSepRe    = regexp.MustCompile(`[\s.\-/]+`)
	spacesRe    = regexp.MustCompile(`\s+`)
	tenDigitsRe = regexp.MustCompile(`^[0-9]{10}$`)
	pinRe       = regexp.MustCompile(`^[0-9]{4}$`)
)

// normalizeName NFC, sin espacios repetidos ni en los bordes.
func normalizeName(s string) string {
	return spacesRe.ReplaceAllString(strings.TrimSpace(norm.NFC.String(s)), " ")
}

// normalizeDocument en mayúsculas y sin separadores: "20-12.345.678-9" -> "20123456789".
// cases.Caser no se comparte entre goroutines.
func normalizeDocument(s string) string {
	return cases.Upper(language.Und).String(docSepRe.ReplaceAllString(norm.NFC.String(s), ""))
}

// normalizePhone deja solo dígitos y un '+' inicial.
func normalizePhone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for i, r := range s {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

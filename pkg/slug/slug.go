// Package slug genera identificadores URL-safe a partir de nombres con
// acentos y caracteres fuera de ASCII (normalización Unicode NFD).
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make convierte un nombre en slug: quita acentos, pasa a minúsculas y
// colapsa todo lo que no sea alfanumérico en guiones.
func Make(name string) string {
	cleaned, _, err := transform.String(stripAccents, name)
	if err != nil {
		cleaned = name
	}
	var b strings.Builder
	lastDash := true // evita guion inicial
	for _, r := range strings.ToLower(cleaned) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

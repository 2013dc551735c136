// Package slug normaliza nombres de negocio a subdominios válidos
// ("Café Luna & Spa" -> "cafe-luna-spa").
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removeDiacritics descompone (NFD), elimina marcas diacríticas y recompone (NFC).
var removeDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// MaxLen longitud máxima de un subdominio (límite DNS por etiqueta).
const MaxLen = 63

// Make convierte un nombre libre en un slug apto para subdominio:
// minúsculas, sin acentos ni ñ->n, todo lo no alfanumérico colapsado a '-'.
// Devuelve "" si el nombre no contiene ningún carácter utilizable.
func Make(name string) string {
	s, _, err := transform.String(removeDiacritics, name)
	if err != nil {
		s = name
	}
	s = strings.ToLower(s)

	var b strings.Builder
	lastDash := true // evita guión inicial
	for _, r := range s {
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
	out := strings.Trim(b.String(), "-")
	if len(out) > MaxLen {
		out = strings.Trim(out[:MaxLen], "-")
	}
	return out
}

// Valid reporta si s ya es un slug válido (lo que Make dejaría intacto).
func Valid(s string) bool {
	return s != "" && s == Make(s)
}

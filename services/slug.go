package services

import (
	"strings"
	"unicode"
)

// GenerateSlug erzeugt einen URL-tauglichen Bezeichner aus einem Namen.
func GenerateSlug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String()
}

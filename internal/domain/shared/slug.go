package shared

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Slugify turns a title into a lower-case, dash separated URL segment.
// Letters and digits of any script are kept.
func Slugify(title string) string {
	lowered := cases.Lower(language.Und).String(strings.TrimSpace(title))
	var b strings.Builder
	dash := false
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

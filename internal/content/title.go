package content

import (
	"strings"
	"unicode"
)

const untitled = "Untitled"

// DeriveTitle turns a slug into a display title: dashes become spaces and the
// first ASCII letter of every word is upper-cased ("my-first_post" becomes
// "My First_post"). Blank slugs yield "Untitled".
func DeriveTitle(slug string) string {
	spaced := strings.ReplaceAll(slug, "-", " ")

	var b strings.Builder
	b.Grow(len(spaced))
	prevWord := false
	for _, r := range spaced {
		word := isWordRune(r)
		if word && !prevWord {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prevWord = word
	}

	title := b.String()
	if strings.TrimSpace(title) == "" {
		return untitled
	}
	return title
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

package display

import (
	"unicode/utf8"

	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DefaultWidth = 80

// Wrap word-wraps text to DefaultWidth, preserving ANSI escape sequences.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}

// Capitalize upper-cases the first letter of s and leaves the rest alone,
// so "chambre" becomes "Chambre" and "salle de bain" becomes "Salle de bain".
// A Caser is stateful, so each call gets its own.
func Capitalize(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(s[:size]) + s[size:]
}

package main

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningMarks is the Combining Diacritical Marks block (U+0300–U+036F).
var combiningMarks = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

// Normalize folds text into the canonical form used for every comparison in the
// catalog: NFD decomposition, combining marks removed, lower case.
// "Función" and "funcion" normalize to the same string.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	// transform.Chain keeps state, so it is built per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(combiningMarks)))
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// nameKey is the identity of a supplement for de-duplication. Surrounding
// whitespace is not significant in a name.
func nameKey(name string) string {
	return Normalize(strings.TrimSpace(name))
}

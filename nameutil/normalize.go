// Package nameutil holds the pure string transforms applied to name fields
// before any comparison: diacritic folding and noble-particle removal.
package nameutil

import (
	"strings"
	"unicode"
)

// foldTable maps characters of the lowercased input to their replacement.
// Letters of the Latin-1 supplement fold to ASCII, typographic quotes and
// braces are dropped, separators and punctuation become a space.
var foldTable = map[rune]string{
	'š': "s",
	'ž': "z",
	'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'ä': "a", 'å': "a", 'æ': "a",
	'ç': "c",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e",
	'ì': "i", 'í': "i", 'î': "i", 'ï': "i",
	'ñ': "n",
	'ð': "o", 'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ö': "o", 'ø': "o",
	'ù': "u", 'ú': "u", 'û': "u", 'ü': "u",
	'ý': "y", 'ÿ': "y",
	'þ': "b",
	'ß': "ss",
	'`': "", '´': "", '„': "", '“': "", '”': "", '’': "", '~': "",
	'"': "", '\'': "",
	'{': "", '}': "", '[': "", ']': "", '(': "", ')': "",
	'–': " ", '-': " ", '.': " ", ':': " ", '/': " ", '\\': " ", '|': " ", '*': " ",
	'&': " and ",
}

// Normalize lowercases a name, folds diacritics to ASCII, drops digits,
// turns separators into spaces and collapses runs of whitespace.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			continue
		}
		if repl, ok := foldTable[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

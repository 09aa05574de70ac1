package gsm

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Replacements for characters that have a close equivalent in the GSM alphabet.
var replacements = map[rune]string{
	'\u2013': "-",
	'\u2014': "-",
	'\u2026': "...",
	'\u2018': "'",
	'\u2019': "'",
	'\u201C': "\"",
	'\u201D': "\"",
	'\u180E': "",
	'\u200B': "",
	'\u200C': "",
	'\u200D': "",
	'\u2060': "",
	'\uFEFF': "",
	'\u00A0': " ",
	'\t':     " ",
}

// Sanitise downgrades the given content so that it only contains GSM characters and the Welsh
// non-GSM characters. Everything else is replaced by a close equivalent, by its base character
// or by a question mark.
func Sanitise(content string) string {
	var b strings.Builder
	b.Grow(len(content))
	for _, r := range content {
		b.WriteString(encodeRune(r))
	}
	return b.String()
}

// NonCompatibleCharacters returns the characters of the given content that Sanitise would change.
func NonCompatibleCharacters(content string) []rune {
	seen := make(map[rune]bool)
	result := make([]rune, 0)
	for _, r := range content {
		if IsAllowed(r) || seen[r] {
			continue
		}
		seen[r] = true
		result = append(result, r)
	}
	return result
}

func encodeRune(r rune) string {
	if IsAllowed(r) {
		return string(r)
	}
	if replacement, ok := replacements[r]; ok {
		return replacement
	}
	if downgraded, ok := downgrade(r); ok {
		return string(downgraded)
	}
	return "?"
}

// downgrade returns the base character of the compatibility decomposition, if that is allowed.
func downgrade(r rune) (rune, bool) {
	decomposed := norm.NFKD.String(string(r))
	if decomposed == "" {
		return 0, false
	}
	base, _ := utf8.DecodeRuneInString(decomposed)
	if base == r || !IsAllowed(base) {
		return 0, false
	}
	return base, true
}

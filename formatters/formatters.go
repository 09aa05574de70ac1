// Package formatters contains the text transformations that are applied to message content
// before it is counted, sent or previewed.
package formatters

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	obscureZeroWidthWhitespace = "\u180E\u200B\u200C\u200D\u2060\uFEFF"
	obscureFullWidthWhitespace = "\u00A0\u202F"
)

var (
	zeroWidthRemover     = replacerFor(obscureZeroWidthWhitespace, "")
	fullWidthReplacer    = replacerFor(obscureFullWidthWhitespace, " ")
	htmlEscaper          = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	whitespaceBeforePunc = regexp.MustCompile(`[ \t]+([,.;:!?])`)
	multipleNewlines     = regexp.MustCompile(`\n{3,}`)
	lineBreak            = regexp.MustCompile(`\n|\r`)
)

func replacerFor(characters string, replacement string) *strings.Replacer {
	oldnew := make([]string, 0, 2*len(characters))
	for _, r := range characters {
		oldnew = append(oldnew, string(r), replacement)
	}
	return strings.NewReplacer(oldnew...)
}

// EscapeHTML escapes ampersands and angle brackets. Quotes are kept as they are.
func EscapeHTML(value string) string {
	return htmlEscaper.Replace(value)
}

// AddPrefix puts the given prefix in front of the body, separated by a colon.
func AddPrefix(body string, prefix string) string {
	if prefix == "" {
		return body
	}
	return strings.TrimSpace(prefix) + ": " + body
}

// RemoveWhitespaceBeforePunctuation removes spaces and tabs in front of punctuation marks.
func RemoveWhitespaceBeforePunctuation(value string) string {
	return whitespaceBeforePunc.ReplaceAllString(value, "$1")
}

// NormaliseWhitespace trims the value, removes zero width whitespace and collapses any other
// whitespace into single spaces.
func NormaliseWhitespace(value string) string {
	value = fullWidthReplacer.Replace(value)
	value = zeroWidthRemover.Replace(value)
	return strings.Join(strings.FieldsFunc(value, isWhitespace), " ")
}

// NormaliseWhitespaceAndNewlines normalises the whitespace of each line and joins the lines
// with plain newlines.
func NormaliseWhitespaceAndNewlines(value string) string {
	lines := SplitLines(value)
	for i, line := range lines {
		lines[i] = NormaliseWhitespace(line)
	}
	return strings.Join(lines, "\n")
}

// NormaliseMultipleNewlines collapses three or more newlines into two.
func NormaliseMultipleNewlines(value string) string {
	return multipleNewlines.ReplaceAllString(value, "\n\n")
}

// StripAndRemoveObscureWhitespace removes zero width whitespace and trims the value.
func StripAndRemoveObscureWhitespace(value string) string {
	if value == "" {
		return ""
	}
	value = zeroWidthRemover.Replace(value)
	value = fullWidthReplacer.Replace(value)
	return strings.TrimFunc(value, isWhitespace)
}

// Nl2br trims the value and replaces every line break with a <br> tag.
func Nl2br(value string) string {
	return lineBreak.ReplaceAllString(strings.TrimFunc(value, isWhitespace), "<br>")
}

// SplitLines splits the value at any line boundary. A trailing line break does not
// produce an empty last line.
func SplitLines(value string) []string {
	result := make([]string, 0)
	runes := []rune(value)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isLineBoundary(runes[i]) {
			continue
		}
		result = append(result, string(runes[start:i]))
		if runes[i] == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
			i++
		}
		start = i + 1
	}
	if start < len(runes) {
		result = append(result, string(runes[start:]))
	}
	return result
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	default:
		return false
	}
}

func isWhitespace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

// FormattedList joins the items into a human readable list, e.g. "a, b and c".
func FormattedList(items []string, conjunction string, beforeEach string, afterEach string) string {
	if len(items) == 0 {
		return ""
	}
	wrapped := make([]string, len(items))
	for i, item := range items {
		wrapped[i] = beforeEach + item + afterEach
	}
	if len(wrapped) == 1 {
		return wrapped[0]
	}
	return strings.Join(wrapped[:len(wrapped)-1], ", ") + " " + conjunction + " " + wrapped[len(wrapped)-1]
}

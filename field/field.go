// Package field substitutes ((placeholders)) in message content.
//
// A placeholder is written as ((name)). A conditional placeholder ((name??text)) shows text if
// the value of name is truthy and nothing otherwise. Placeholders without a value are rendered
// as markup, so they can be highlighted in previews.
package field

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/eas-tools/alerts-utils/formatters"
	"github.com/eas-tools/alerts-utils/insensitive"
)

// HTML defines how HTML in the content and the values is handled.
type HTML int

// All HTML modes.
const (
	Escape HTML = iota
	Passthrough
)

func (h HTML) sanitise(value string) string {
	if h == Passthrough {
		return value
	}
	return formatters.EscapeHTML(value)
}

var placeholderPattern = regexp.MustCompile(`\(\(([^()]+)\)\)`)

type tags struct {
	placeholder string
	conditional string
	noBrackets  string
	redacted    string
}

var (
	htmlTags = tags{
		placeholder: "<span class='placeholder'>((%s))</span>",
		conditional: "<span class='placeholder-conditional'>((%s??</span>%s))",
		noBrackets:  "<span class='placeholder-no-brackets'>%s</span>",
		redacted:    "<span class='placeholder-redacted'>hidden</span>",
	}
	plainTags = tags{
		placeholder: "((%s))",
		conditional: "((%s??%s))",
		noBrackets:  "%s",
		redacted:    "[hidden]",
	}
)

// Field is a piece of content together with the values for its placeholders.
type Field struct {
	content       string
	values        *insensitive.Dict
	html          HTML
	tags          tags
	withBrackets  bool
	redact        bool
	markdownLists bool
}

// Option configures a Field.
type Option func(*Field)

// WithHTML sets the HTML mode. The default is Escape.
func WithHTML(html HTML) Option {
	return func(f *Field) {
		f.html = html
	}
}

// Plain renders placeholders without values as plain text instead of markup.
func Plain() Option {
	return func(f *Field) {
		f.tags = plainTags
	}
}

// WithoutBrackets renders placeholders without values without the surrounding brackets.
func WithoutBrackets() Option {
	return func(f *Field) {
		f.withBrackets = false
	}
}

// RedactMissing hides the names of placeholders without values.
func RedactMissing(redact bool) Option {
	return func(f *Field) {
		f.redact = redact
	}
}

// MarkdownLists renders list values as markdown bullet lists.
func MarkdownLists() Option {
	return func(f *Field) {
		f.markdownLists = true
	}
}

// New returns a field for the given content and values. values may be nil.
func New(content string, values *insensitive.Dict, opts ...Option) *Field {
	result := &Field{
		content:      content,
		values:       values,
		html:         Escape,
		tags:         htmlTags,
		withBrackets: true,
	}
	for _, opt := range opts {
		opt(result)
	}
	return result
}

// String returns the content with all placeholders replaced. If there are no values at all,
// the content is returned with every placeholder formatted.
func (f *Field) String() string {
	if f.values.Len() > 0 {
		return f.Replaced()
	}
	return f.Formatted()
}

// Formatted returns the sanitised content with every placeholder formatted as markup.
func (f *Field) Formatted() string {
	return placeholderPattern.ReplaceAllStringFunc(f.html.sanitise(f.content), func(match string) string {
		return f.format(placeholderFromMatch(match))
	})
}

// Replaced returns the sanitised content with every placeholder replaced by its value.
func (f *Field) Replaced() string {
	return placeholderPattern.ReplaceAllStringFunc(f.html.sanitise(f.content), func(match string) string {
		placeholder := placeholderFromMatch(match)
		replacement, ok := f.replacement(placeholder)
		if !ok {
			return f.format(placeholder)
		}
		if placeholder.IsConditional() {
			return placeholder.ConditionalBody(replacement)
		}
		return replacement
	})
}

// Placeholders returns the names of all placeholders in the content, in order and without duplicates.
func (f *Field) Placeholders() []string {
	return Placeholders(f.content)
}

func (f *Field) format(placeholder Placeholder) string {
	switch {
	case f.redact:
		return f.tags.redacted
	case placeholder.IsConditional():
		return fmt.Sprintf(f.tags.conditional, placeholder.Name(), placeholder.ConditionalText())
	case !f.withBrackets:
		return fmt.Sprintf(f.tags.noBrackets, placeholder.Name())
	default:
		return fmt.Sprintf(f.tags.placeholder, placeholder.Name())
	}
}

func (f *Field) replacement(placeholder Placeholder) (string, bool) {
	value := f.values.Value(placeholder.Name())
	if value == nil {
		return "", false
	}
	if items, ok := listItems(value); ok {
		if len(items) == 0 {
			return "", true
		}
		return f.html.sanitise(f.formattedList(items)), true
	}
	return f.html.sanitise(Stringify(value)), true
}

func (f *Field) formattedList(items []string) string {
	if f.markdownLists {
		bullets := make([]string, len(items))
		for i, item := range items {
			bullets[i] = "* " + item
		}
		return "\n\n" + strings.Join(bullets, "\n")
	}
	return formatters.FormattedList(items, "and", "", "")
}

// listItems returns the non-empty, trimmed items of a list value.
func listItems(value any) ([]string, bool) {
	var raw []any
	switch v := value.(type) {
	case []string:
		raw = make([]any, len(v))
		for i, item := range v {
			raw[i] = item
		}
	case []any:
		raw = v
	default:
		return nil, false
	}

	result := make([]string, 0, len(raw))
	for _, item := range raw {
		if item == nil {
			continue
		}
		s := formatters.StripAndRemoveObscureWhitespace(Stringify(item))
		if s != "" {
			result = append(result, s)
		}
	}
	return result, true
}

// Placeholders returns the names of all placeholders in the given content, in order and without duplicates.
func Placeholders(content string) []string {
	result := make([]string, 0)
	seen := make(map[string]bool)
	for _, match := range placeholderPattern.FindAllStringSubmatch(content, -1) {
		name := Placeholder{Body: match[1]}.Name()
		if seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}
	return result
}

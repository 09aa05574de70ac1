// Package template models the content of SMS and broadcast templates: personalisation,
// character counting, fragment counting, length limits and previews.
package template

import (
	"sort"
	"strings"

	"github.com/eas-tools/alerts-utils/field"
	"github.com/eas-tools/alerts-utils/insensitive"
)

// SMSCharCountLimit is the maximum number of characters of an SMS or broadcast, without prefix.
const SMSCharCountLimit = 918

type base struct {
	renderer   *Renderer
	definition Definition
	values     *insensitive.Dict
	redact     bool
}

func newBase(r *Renderer, definition Definition, o options) base {
	result := base{
		renderer:   r,
		definition: definition,
		redact:     o.redact,
	}
	result.setValues(o.values)
	return result
}

// ID of the template.
func (b *base) ID() string {
	return b.definition.ID
}

// Name of the template.
func (b *base) Name() string {
	return b.definition.Name
}

// Type of the template.
func (b *base) Type() Type {
	return b.definition.Type
}

// Content of the template, as it was defined.
func (b *base) Content() string {
	return b.definition.Content
}

// Raw returns any attribute of the template definition.
func (b *base) Raw(key string) (any, bool) {
	return b.definition.Get(key)
}

// Placeholders returns the placeholder names of the content, in order and without duplicates.
func (b *base) Placeholders() []string {
	return b.renderer.placeholders.Placeholders(b.definition.Content)
}

// Values returns the personalisation. Keys that match a placeholder use the placeholder's
// spelling, every placeholder is present.
func (b *base) Values() map[string]any {
	return b.values.AsMap()
}

func (b *base) setValues(values map[string]any) {
	if len(values) == 0 {
		b.values = nil
		return
	}

	placeholders := b.Placeholders()
	placeholderKeys := b.renderer.keys.FromKeys(placeholders)
	given := b.renderer.keys.FromMap(values)

	keys := append([]string{}, placeholders...)
	extra := make([]string, 0)
	for key := range values {
		if !placeholderKeys.Contains(key) {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	keys = append(keys, extra...)

	b.values = given.WithKeys(keys)
}

// MissingData returns the placeholders without value.
func (b *base) MissingData() []string {
	result := make([]string, 0)
	for _, placeholder := range b.Placeholders() {
		if b.values.Value(placeholder) == nil {
			result = append(result, placeholder)
		}
	}
	return result
}

// AdditionalData returns the keys of values that do not belong to any placeholder.
func (b *base) AdditionalData() []string {
	placeholders := make(map[string]bool)
	for _, placeholder := range b.Placeholders() {
		placeholders[placeholder] = true
	}
	result := make([]string, 0)
	for _, key := range b.values.OriginalKeys() {
		if !placeholders[key] {
			result = append(result, key)
		}
	}
	sort.Strings(result)
	return result
}

// Template is a template without any channel specific rules.
type Template struct {
	base
}

// SetValues replaces the personalisation.
func (t *Template) SetValues(values map[string]any) {
	t.setValues(values)
}

// ContentWithPlaceholdersFilledIn returns the trimmed content with all placeholders replaced.
func (t *Template) ContentWithPlaceholdersFilledIn() string {
	filled := field.New(
		t.definition.Content,
		t.values,
		field.WithHTML(field.Passthrough),
		field.RedactMissing(t.redact),
		field.MarkdownLists(),
	).String()
	return strings.TrimSpace(filled)
}

// ContentCount returns the number of characters of the filled in content.
func (t *Template) ContentCount() int {
	return len([]rune(t.ContentWithPlaceholdersFilledIn()))
}

// IsMessageEmpty reports whether the message would be empty. Content that does not start and
// end with a placeholder is never empty.
func (t *Template) IsMessageEmpty() bool {
	content := t.definition.Content
	if content == "" {
		return true
	}
	if !strings.HasPrefix(content, "((") || !strings.HasSuffix(content, "))") {
		return false
	}
	return t.ContentCount() == 0
}

// IsMessageTooLong is always false, generic templates have no length limit.
func (t *Template) IsMessageTooLong() bool {
	return false
}

func (t *Template) String() string {
	return t.ContentWithPlaceholdersFilledIn()
}

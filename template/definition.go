package template

import (
	"errors"
	"fmt"

	"github.com/eas-tools/alerts-utils/field"
)

// Type of a template.
type Type string

// All supported template types.
const (
	SMS       Type = "sms"
	Broadcast Type = "broadcast"
)

// TypesByName allows to access all the supported template types by their name as string
var TypesByName = map[string]Type{
	string(SMS):       SMS,
	string(Broadcast): Broadcast,
}

// Errors reported when a template cannot be built.
var (
	ErrMissingContent   = errors.New("template has no content")
	ErrInvalidContent   = errors.New("template content must be a string")
	ErrIncompatibleType = errors.New("incompatible template type")
	ErrMissingBody      = errors.New("broadcast event has no transmitted content body")
)

// Definition describes a template as it is stored.
type Definition struct {
	ID      string
	Name    string
	Type    Type
	Content string
	// Raw holds all attributes of the stored template, including the ones above.
	Raw map[string]any
}

// DefinitionFromMap builds a definition from its JSON representation, e.g.
// {"id": "...", "name": "...", "template_type": "broadcast", "content": "..."}
func DefinitionFromMap(m map[string]any) (Definition, error) {
	rawContent, ok := m["content"]
	if !ok {
		return Definition{}, ErrMissingContent
	}
	content, ok := rawContent.(string)
	if !ok {
		return Definition{}, fmt.Errorf("%w: %T", ErrInvalidContent, rawContent)
	}

	raw := make(map[string]any, len(m))
	for key, value := range m {
		raw[key] = value
	}

	return Definition{
		ID:      optionalString(m["id"]),
		Name:    optionalString(m["name"]),
		Type:    Type(optionalString(m["template_type"])),
		Content: content,
		Raw:     raw,
	}, nil
}

func optionalString(value any) string {
	if value == nil {
		return ""
	}
	return field.Stringify(value)
}

// Get returns the raw attribute with the given key.
func (d Definition) Get(key string) (any, bool) {
	value, ok := d.Raw[key]
	return value, ok
}

package template

import (
	"github.com/eas-tools/alerts-utils/insensitive"
)

// PlaceholderSource is anything that has placeholders, e.g. any of the templates.
type PlaceholderSource interface {
	Placeholders() []string
}

// Change describes how the placeholders differ between two versions of a template.
type Change struct {
	old *insensitive.Dict
	new *insensitive.Dict
}

// Compare the placeholders of the old and the new version of a template.
func Compare(old, new PlaceholderSource) Change {
	return Change{
		old: insensitive.FromKeys(old.Placeholders()),
		new: insensitive.FromKeys(new.Placeholders()),
	}
}

// HasDifferentPlaceholders reports whether placeholders were added or removed.
func (c Change) HasDifferentPlaceholders() bool {
	return len(c.PlaceholdersAdded()) > 0 || len(c.PlaceholdersRemoved()) > 0
}

// PlaceholdersAdded returns the placeholders that are only in the new version.
func (c Change) PlaceholdersAdded() []string {
	return difference(c.new, c.old)
}

// PlaceholdersRemoved returns the placeholders that are only in the old version.
func (c Change) PlaceholdersRemoved() []string {
	return difference(c.old, c.new)
}

func difference(a, b *insensitive.Dict) []string {
	result := make([]string, 0)
	for _, key := range a.Keys() {
		if !b.Contains(key) {
			result = append(result, a.Value(key).(string))
		}
	}
	return result
}

// Package insensitive provides an ordered dictionary that ignores case, spaces, hyphens and
// underscores in its keys, so that "FIRST_NAME" and "first name" address the same entry.
package insensitive

import (
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru"
)

// DefaultKeyCacheSize is the number of keys a Keys normaliser remembers by default.
const DefaultKeyCacheSize = 2048

var keyReplacer = strings.NewReplacer(" ", "", "_", "", "-", "")

// MakeKey normalises the given key.
func MakeKey(key string) string {
	return strings.ToLower(keyReplacer.Replace(key))
}

// Keys normalises keys and remembers the most recently used ones. It is safe for concurrent use.
// A nil *Keys normalises without caching.
type Keys struct {
	cache *lru.Cache
}

// NewKeys returns a normaliser that caches the given number of keys.
func NewKeys(size int) (*Keys, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("cannot create key cache: %w", err)
	}
	return &Keys{cache: cache}, nil
}

// MakeKey normalises the given key like the package level MakeKey.
func (k *Keys) MakeKey(key string) string {
	if k == nil {
		return MakeKey(key)
	}
	if cached, ok := k.cache.Get(key); ok {
		return cached.(string)
	}
	result := MakeKey(key)
	k.cache.Add(key, result)
	return result
}

// Len returns the number of cached keys.
func (k *Keys) Len() int {
	if k == nil {
		return 0
	}
	return k.cache.Len()
}

// New returns an empty dictionary that normalises its keys with k.
func (k *Keys) New() *Dict {
	return &Dict{keys: k, entries: make(map[string]entry)}
}

// FromMap returns a dictionary with the entries of the given map, inserted in the order of their keys.
func (k *Keys) FromMap(m map[string]any) *Dict {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := k.New()
	for _, key := range keys {
		result.Set(key, m[key])
	}
	return result
}

// FromKeys returns a dictionary that maps each of the given keys to itself.
func (k *Keys) FromKeys(keys []string) *Dict {
	result := k.New()
	for _, key := range keys {
		result.Set(key, key)
	}
	return result
}

type entry struct {
	key   string
	value any
}

// Dict is an ordered dictionary with normalised keys. It remembers the key that was
// used to store each entry. The zero value and nil are empty dictionaries.
type Dict struct {
	keys    *Keys
	order   []string
	entries map[string]entry
}

// New returns an empty dictionary that does not cache its keys.
func New() *Dict {
	return (*Keys)(nil).New()
}

// FromMap is Keys.FromMap without a key cache.
func FromMap(m map[string]any) *Dict {
	return (*Keys)(nil).FromMap(m)
}

// FromKeys is Keys.FromKeys without a key cache.
func FromKeys(keys []string) *Dict {
	return (*Keys)(nil).FromKeys(keys)
}

// Set the value for the given key. An existing entry with the same normalised key keeps its position.
func (d *Dict) Set(key string, value any) {
	if d.entries == nil {
		d.entries = make(map[string]entry)
	}
	normalised := d.keys.MakeKey(key)
	if _, ok := d.entries[normalised]; !ok {
		d.order = append(d.order, normalised)
	}
	d.entries[normalised] = entry{key: key, value: value}
}

// Get the value for the given key.
func (d *Dict) Get(key string) (any, bool) {
	if d == nil {
		return nil, false
	}
	e, ok := d.entries[d.keys.MakeKey(key)]
	return e.value, ok
}

// Value returns the value for the given key or nil.
func (d *Dict) Value(key string) any {
	value, _ := d.Get(key)
	return value
}

// Contains reports whether there is an entry for the given key.
func (d *Dict) Contains(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}

// Keys returns the normalised keys in insertion order.
func (d *Dict) Keys() []string {
	if d == nil {
		return []string{}
	}
	result := make([]string, len(d.order))
	copy(result, d.order)
	return result
}

// OriginalKeys returns the keys as they were stored, in insertion order.
func (d *Dict) OriginalKeys() []string {
	if d == nil {
		return []string{}
	}
	result := make([]string, 0, len(d.order))
	for _, key := range d.order {
		result = append(result, d.entries[key].key)
	}
	return result
}

// AsMap returns the entries keyed by their original keys.
func (d *Dict) AsMap() map[string]any {
	result := make(map[string]any, d.Len())
	if d == nil {
		return result
	}
	for _, key := range d.order {
		e := d.entries[key]
		result[e.key] = e.value
	}
	return result
}

// WithKeys returns a new dictionary that contains exactly the given keys, in the given order.
// Keys without an entry map to nil.
func (d *Dict) WithKeys(keys []string) *Dict {
	var result *Dict
	if d == nil {
		result = New()
	} else {
		result = d.keys.New()
	}
	for _, key := range keys {
		result.Set(key, d.Value(key))
	}
	return result
}

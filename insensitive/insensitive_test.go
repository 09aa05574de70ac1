package insensitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeKey(t *testing.T) {
	tt := []struct {
		desc     string
		value    string
		expected string
	}{
		{desc: "lower case", value: "name", expected: "name"},
		{desc: "upper case", value: "FIRST_NAME", expected: "firstname"},
		{desc: "spaces", value: "first name", expected: "firstname"},
		{desc: "hyphens", value: "First-Name", expected: "firstname"},
		{desc: "mixed", value: " Phone_Number - ", expected: "phonenumber"},
		{desc: "empty", value: "", expected: ""},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, MakeKey(tc.value))
			assert.Equal(t, tc.expected, MakeKey(tc.value), "cached")
		})
	}
}

func TestDictLookups(t *testing.T) {
	d := FromMap(map[string]any{"FIRST_NAME": "example"})

	assert.True(t, d.Contains("first name"))
	assert.Equal(t, "example", d.Value("First-Name"))
	assert.Nil(t, d.Value("last name"))
	assert.Equal(t, []string{"firstname"}, d.Keys())
	assert.Equal(t, []string{"FIRST_NAME"}, d.OriginalKeys())
}

func TestDictKeepsInsertionOrder(t *testing.T) {
	d := New()
	d.Set("b", 1)
	d.Set("A", 2)
	d.Set("B", 3)

	assert.Equal(t, 2, d.Len())
	assert.Equal(t, []string{"b", "a"}, d.Keys())
	assert.Equal(t, []string{"B", "A"}, d.OriginalKeys())
	assert.Equal(t, 3, d.Value("b"))
}

func TestDictWithKeys(t *testing.T) {
	d := FromMap(map[string]any{"NAME": "Chris", "Town": "London"})

	result := d.WithKeys([]string{"name", "age"})

	assert.Equal(t, map[string]any{"name": "Chris", "age": nil}, result.AsMap())
	assert.Equal(t, 2, result.Len())
}

func TestNilDict(t *testing.T) {
	var d *Dict

	assert.Equal(t, 0, d.Len())
	assert.False(t, d.Contains("a"))
	assert.Empty(t, d.Keys())
	assert.Empty(t, d.AsMap())
}

func TestFromKeys(t *testing.T) {
	d := FromKeys([]string{"Phone Number", "name"})

	assert.Equal(t, "Phone Number", d.Value("phone_number"))
	assert.Equal(t, []string{"phonenumber", "name"}, d.Keys())
}

func TestNewKeys(t *testing.T) {
	_, err := NewKeys(0)
	assert.Error(t, err)

	keys, err := NewKeys(2)
	require.NoError(t, err)
	assert.Equal(t, 0, keys.Len())

	assert.Equal(t, "firstname", keys.MakeKey("First_Name"))
	assert.Equal(t, "firstname", keys.MakeKey("First_Name"))
	assert.Equal(t, 1, keys.Len())

	keys.MakeKey("a")
	keys.MakeKey("b")
	assert.Equal(t, 2, keys.Len())
}

func TestKeysDicts(t *testing.T) {
	keys, err := NewKeys(DefaultKeyCacheSize)
	require.NoError(t, err)

	d := keys.FromMap(map[string]any{"Phone Number": "07700900000"})
	assert.Equal(t, "07700900000", d.Value("phone-number"))

	result := d.WithKeys([]string{"PHONE_NUMBER", "name"})
	assert.Equal(t, map[string]any{"PHONE_NUMBER": "07700900000", "name": nil}, result.AsMap())

	assert.Equal(t, []string{"a", "b"}, keys.FromKeys([]string{"A", "B"}).Keys())
	assert.Equal(t, 0, keys.New().Len())
	assert.Equal(t, 6, keys.Len())
}

func TestNilKeys(t *testing.T) {
	var keys *Keys

	assert.Equal(t, "phonenumber", keys.MakeKey("Phone Number"))
	assert.Equal(t, 0, keys.Len())
	assert.Equal(t, "x", keys.FromKeys([]string{"x"}).Value("X"))
}

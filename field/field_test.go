package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eas-tools/alerts-utils/insensitive"
)

func TestFieldHandlesHTML(t *testing.T) {
	tt := []struct {
		desc                string
		content             string
		values              map[string]any
		expectedEscaped     string
		expectedPassthrough string
	}{
		{
			desc:                "html in content",
			content:             "string <em>with</em> html",
			expectedEscaped:     "string &lt;em&gt;with&lt;/em&gt; html",
			expectedPassthrough: "string <em>with</em> html",
		},
		{
			desc:                "html in placeholder name",
			content:             "string ((<em>with</em>)) html",
			expectedEscaped:     "string <span class='placeholder'>((&lt;em&gt;with&lt;/em&gt;))</span> html",
			expectedPassthrough: "string <span class='placeholder'>((<em>with</em>))</span> html",
		},
		{
			desc:                "html in value",
			content:             "string ((placeholder)) html",
			values:              map[string]any{"placeholder": "<em>without</em>"},
			expectedEscaped:     "string &lt;em&gt;without&lt;/em&gt; html",
			expectedPassthrough: "string <em>without</em> html",
		},
		{
			desc:    "html in conditional placeholder",
			content: "string ((<em>conditional</em>??<em>placeholder</em>)) html",
			expectedEscaped: "string <span class='placeholder-conditional'>((&lt;em&gt;conditional&lt;/em&gt;??</span>" +
				"&lt;em&gt;placeholder&lt;/em&gt;)) html",
			expectedPassthrough: "string <span class='placeholder-conditional'>((<em>conditional</em>??</span>" +
				"<em>placeholder</em>)) html",
		},
		{
			desc:                "html in conditional text",
			content:             "string ((conditional??<em>placeholder</em>)) html",
			values:              map[string]any{"conditional": true},
			expectedEscaped:     "string &lt;em&gt;placeholder&lt;/em&gt; html",
			expectedPassthrough: "string <em>placeholder</em> html",
		},
		{
			desc:                "entity",
			content:             "string & entity",
			expectedEscaped:     "string &amp; entity",
			expectedPassthrough: "string & entity",
		},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			var values *insensitive.Dict
			if tc.values != nil {
				values = insensitive.FromMap(tc.values)
			}
			assert.Equal(t, tc.expectedEscaped, New(tc.content, values).String())
			assert.Equal(t, tc.expectedEscaped, New(tc.content, values, WithHTML(Escape)).String())
			assert.Equal(t, tc.expectedPassthrough, New(tc.content, values, WithHTML(Passthrough)).String())
		})
	}
}

func TestFieldReplacesValues(t *testing.T) {
	tt := []struct {
		desc     string
		content  string
		values   map[string]any
		opts     []Option
		expected string
	}{
		{
			desc:     "insensitive keys",
			content:  "Hello ((First Name))",
			values:   map[string]any{"first_name": "Jo"},
			expected: "Hello Jo",
		},
		{
			desc:     "missing value",
			content:  "Hello ((name)) from ((place))",
			values:   map[string]any{"name": "Jo"},
			expected: "Hello Jo from <span class='placeholder'>((place))</span>",
		},
		{
			desc:     "missing value in plain text",
			content:  "Hello ((name)) from ((place))",
			values:   map[string]any{"name": "Jo"},
			opts:     []Option{Plain()},
			expected: "Hello Jo from ((place))",
		},
		{
			desc:     "redacted",
			content:  "Hello ((name))",
			opts:     []Option{RedactMissing(true)},
			expected: "Hello <span class='placeholder-redacted'>hidden</span>",
		},
		{
			desc:     "redacted plain text",
			content:  "Hello ((name))",
			opts:     []Option{Plain(), RedactMissing(true)},
			expected: "Hello [hidden]",
		},
		{
			desc:     "without brackets",
			content:  "((phone number))",
			opts:     []Option{WithoutBrackets()},
			expected: "<span class='placeholder-no-brackets'>phone number</span>",
		},
		{
			desc:     "conditional shown",
			content:  "((warn??Stay indoors. ))Keep safe",
			values:   map[string]any{"warn": "yes"},
			expected: "Stay indoors. Keep safe",
		},
		{
			desc:     "conditional hidden",
			content:  "((warn??Stay indoors. ))Keep safe",
			values:   map[string]any{"warn": "no"},
			expected: "Keep safe",
		},
		{
			desc:     "conditional with further separators",
			content:  "((a??b??c))",
			values:   map[string]any{"a": 1},
			expected: "b??c",
		},
		{
			desc:     "list",
			content:  "Areas: ((areas))",
			values:   map[string]any{"areas": []any{" Cardiff ", "", nil, "Swansea", "Newport"}},
			expected: "Areas: Cardiff, Swansea and Newport",
		},
		{
			desc:     "markdown list",
			content:  "Areas:((areas))",
			values:   map[string]any{"areas": []string{"Cardiff", "Swansea"}},
			opts:     []Option{MarkdownLists(), WithHTML(Passthrough)},
			expected: "Areas:\n\n* Cardiff\n* Swansea",
		},
		{
			desc:     "empty list",
			content:  "Areas: ((areas))",
			values:   map[string]any{"areas": []string{" "}},
			expected: "Areas: ",
		},
		{
			desc:     "numbers",
			content:  "((a)) ((b)) ((c))",
			values:   map[string]any{"a": 3, "b": 1.5, "c": 2.0},
			expected: "3 1.5 2.0",
		},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			var values *insensitive.Dict
			if tc.values != nil {
				values = insensitive.FromMap(tc.values)
			}
			assert.Equal(t, tc.expected, New(tc.content, values, tc.opts...).String())
		})
	}
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"name", "warn", "Name"}, Placeholders("((name)) ((warn??x)) ((name)) ((Name))"))
	assert.Empty(t, Placeholders("no placeholders (here)"))
	assert.Equal(t, []string{"a"}, New("((a))", nil).Placeholders())
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder{Body: "warn??Stay indoors"}
	assert.True(t, p.IsConditional())
	assert.Equal(t, "warn", p.Name())
	assert.Equal(t, "Stay indoors", p.ConditionalText())
	assert.Equal(t, "Stay indoors", p.ConditionalBody("Show"))
	assert.Equal(t, "", p.ConditionalBody(""))

	plain := Placeholder{Body: "name"}
	assert.False(t, plain.IsConditional())
	assert.Equal(t, "name", plain.Name())
	assert.Equal(t, "", plain.ConditionalBody(true))
}

func TestStr2Bool(t *testing.T) {
	for _, value := range []any{"yes", "Y", "TRUE", "t", "1", "include", "show", true, 1} {
		assert.True(t, Str2Bool(value), "%v", value)
	}
	for _, value := range []any{nil, "", "no", "false", false, 0, "2"} {
		assert.False(t, Str2Bool(value), "%v", value)
	}
}

func TestPlaceholderCache(t *testing.T) {
	cache, err := NewPlaceholderCache(2)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, cache.Placeholders("((a)) ((b))"))
	names := cache.Placeholders("((a)) ((b))")
	names[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, cache.Placeholders("((a)) ((b))"))

	cache.Placeholders("((c))")
	cache.Placeholders("((d))")
	assert.Equal(t, 2, cache.Len())

	_, err = NewPlaceholderCache(0)
	assert.Error(t, err)
}

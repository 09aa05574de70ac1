package field

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const conditionalSeparator = "??"

// Placeholder is the body of a ((placeholder)), without the brackets.
type Placeholder struct {
	Body string
}

func placeholderFromMatch(match string) Placeholder {
	return Placeholder{Body: match[2 : len(match)-2]}
}

// IsConditional reports whether this is a ((name??text)) placeholder.
func (p Placeholder) IsConditional() bool {
	return strings.Contains(p.Body, conditionalSeparator)
}

// Name of the placeholder. For conditional placeholders this is the part before the first ??.
func (p Placeholder) Name() string {
	name, _, _ := strings.Cut(p.Body, conditionalSeparator)
	return name
}

// ConditionalText is the text after the first ??, or the empty string if the placeholder is not conditional.
func (p Placeholder) ConditionalText() string {
	_, text, _ := strings.Cut(p.Body, conditionalSeparator)
	return text
}

// ConditionalBody returns the conditional text if show is truthy.
func (p Placeholder) ConditionalBody(show any) string {
	if !p.IsConditional() {
		return ""
	}
	if Str2Bool(show) {
		return p.ConditionalText()
	}
	return ""
}

var truthy = map[string]bool{
	"yes":     true,
	"y":       true,
	"true":    true,
	"t":       true,
	"1":       true,
	"include": true,
	"show":    true,
}

// Str2Bool reports whether the given value reads as yes.
func Str2Bool(value any) bool {
	if value == nil {
		return false
	}
	return truthy[strings.ToLower(Stringify(value))]
}

// Stringify renders a value the way it appears in a message.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "True"
		}
		return "False"
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(v float64) string {
	result := strconv.FormatFloat(v, 'f', -1, 64)
	if v == math.Trunc(v) && !math.IsInf(v, 0) && !strings.Contains(result, ".") {
		result += ".0"
	}
	return result
}

package formatters

import (
	"fmt"
	"regexp"
	"strings"
)

// url matches web addresses with or without protocol. Two more conditions are checked
// in AutolinkURLs: the match must not follow an @ or a dot, and the domain must not be
// followed by an @.
var url = regexp.MustCompile(`(?i)\b(https?://)?([\w\-]+\.)+([a-z]{2,63})\b[/?#]?(\S*)`)

// AutolinkURLs wraps every web address in the given HTML with a link.
func AutolinkURLs(value string, classes string) string {
	matches := url.FindAllStringSubmatchIndex(value, -1)
	if len(matches) == 0 {
		return value
	}

	var b strings.Builder
	last := 0
	for _, match := range matches {
		start, end := match[0], match[1]
		domainEnd := match[7]
		if start > 0 && (value[start-1] == '@' || value[start-1] == '.') {
			continue
		}
		if domainEnd < len(value) && value[domainEnd] == '@' {
			continue
		}
		b.WriteString(value[last:start])
		b.WriteString(SanitisedLink(value[start:end], classes))
		last = end
	}
	b.WriteString(value[last:])
	return b.String()
}

// SanitisedLink returns the HTML of a link to the given address. Addresses without a protocol
// are linked with http.
func SanitisedLink(link string, classes string) string {
	text := link
	if !strings.HasPrefix(strings.ToLower(link), "http") {
		link = "http://" + link
	}
	classAttribute := ""
	if classes != "" {
		classAttribute = fmt.Sprintf(`class="%s" `, classes)
	}
	return fmt.Sprintf(`<a %shref="%s">%s</a>`, classAttribute, quote(unquote(link), ":/?#=&;"), text)
}

// unquote decodes %XX escapes and leaves invalid escapes as they are.
func unquote(value string) string {
	if !strings.Contains(value, "%") {
		return value
	}
	result := make([]byte, 0, len(value))
	for i := 0; i < len(value); i++ {
		if value[i] == '%' && i+2 < len(value) && isHex(value[i+1]) && isHex(value[i+2]) {
			result = append(result, unhex(value[i+1])<<4|unhex(value[i+2]))
			i += 2
			continue
		}
		result = append(result, value[i])
	}
	return string(result)
}

// quote percent-encodes every byte that is neither unreserved nor in the given safe set.
func quote(value string, safe string) string {
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		if isUnreserved(c) || strings.IndexByte(safe, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	default:
		return false
	}
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

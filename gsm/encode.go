package gsm

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

/* Encoding and splitting of message content */

const escape byte = 0x1B

var basicCodes = map[rune]byte{
	'@': 0x00, '£': 0x01, '$': 0x02, '¥': 0x03, 'è': 0x04, 'é': 0x05, 'ù': 0x06, 'ì': 0x07,
	'ò': 0x08, 'Ç': 0x09, '\n': 0x0A, 'Ø': 0x0B, 'ø': 0x0C, '\r': 0x0D, 'Å': 0x0E, 'å': 0x0F,
	'Δ': 0x10, '_': 0x11, 'Φ': 0x12, 'Γ': 0x13, 'Λ': 0x14, 'Ω': 0x15, 'Π': 0x16, 'Ψ': 0x17,
	'Σ': 0x18, 'Θ': 0x19, 'Ξ': 0x1A, '\x1b': 0x1B, 'Æ': 0x1C, 'æ': 0x1D, 'ß': 0x1E, 'É': 0x1F,
	' ': 0x20, '!': 0x21, '"': 0x22, '#': 0x23, '¤': 0x24, '%': 0x25, '&': 0x26, '\'': 0x27,
	'(': 0x28, ')': 0x29, '*': 0x2A, '+': 0x2B, ',': 0x2C, '-': 0x2D, '.': 0x2E, '/': 0x2F,
	'0': 0x30, '1': 0x31, '2': 0x32, '3': 0x33, '4': 0x34, '5': 0x35, '6': 0x36, '7': 0x37,
	'8': 0x38, '9': 0x39, ':': 0x3A, ';': 0x3B, '<': 0x3C, '=': 0x3D, '>': 0x3E, '?': 0x3F,
	'¡': 0x40, 'A': 0x41, 'B': 0x42, 'C': 0x43, 'D': 0x44, 'E': 0x45, 'F': 0x46, 'G': 0x47,
	'H': 0x48, 'I': 0x49, 'J': 0x4A, 'K': 0x4B, 'L': 0x4C, 'M': 0x4D, 'N': 0x4E, 'O': 0x4F,
	'P': 0x50, 'Q': 0x51, 'R': 0x52, 'S': 0x53, 'T': 0x54, 'U': 0x55, 'V': 0x56, 'W': 0x57,
	'X': 0x58, 'Y': 0x59, 'Z': 0x5A, 'Ä': 0x5B, 'Ö': 0x5C, 'Ñ': 0x5D, 'Ü': 0x5E, '§': 0x5F,
	'¿': 0x60, 'a': 0x61, 'b': 0x62, 'c': 0x63, 'd': 0x64, 'e': 0x65, 'f': 0x66, 'g': 0x67,
	'h': 0x68, 'i': 0x69, 'j': 0x6A, 'k': 0x6B, 'l': 0x6C, 'm': 0x6D, 'n': 0x6E, 'o': 0x6F,
	'p': 0x70, 'q': 0x71, 'r': 0x72, 's': 0x73, 't': 0x74, 'u': 0x75, 'v': 0x76, 'w': 0x77,
	'x': 0x78, 'y': 0x79, 'z': 0x7A, 'ä': 0x7B, 'ö': 0x7C, 'ñ': 0x7D, 'ü': 0x7E, 'à': 0x7F,
}

var extendedCodes = map[rune]byte{
	'^':  0x14,
	'{':  0x28,
	'}':  0x29,
	'\\': 0x2F,
	'[':  0x3C,
	'~':  0x3D,
	']':  0x3E,
	'|':  0x40,
	'€':  0x65,
}

var ucs2 = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// Encode the given content with the coding that CodingFor selects. GSM-7 content is returned as
// unpacked septets, extended characters are preceded by the escape septet. UCS-2 content is
// returned as big endian octets.
func Encode(content string) (Coding, []byte, error) {
	coding := CodingFor(content)
	result, err := EncodeWith(coding, content)
	return coding, result, err
}

// EncodeWith encodes the given content with the given coding.
func EncodeWith(coding Coding, content string) ([]byte, error) {
	switch coding {
	case GSM7:
		return encodeSeptets(content)
	case UCS2:
		return ucs2.NewEncoder().Bytes([]byte(content))
	default:
		return nil, fmt.Errorf("invalid coding: %d", coding)
	}
}

func encodeSeptets(content string) ([]byte, error) {
	result := make([]byte, 0, len(content))
	for _, r := range content {
		if code, ok := basicCodes[r]; ok {
			result = append(result, code)
			continue
		}
		if code, ok := extendedCodes[r]; ok {
			result = append(result, escape, code)
			continue
		}
		return nil, fmt.Errorf("character %q is not part of the GSM alphabet", r)
	}
	return result, nil
}

// Pack the given septets into octets according to 3GPP TS 23.038 section 6.1.2.1
func Pack(septets []byte) []byte {
	bits := GSM7.EncodedBits(len(septets))
	result := make([]byte, (bits+7)/8)
	for i, septet := range septets {
		bitOffset := i * 7
		byteIndex := bitOffset / 8
		shift := bitOffset % 8
		value := uint16(septet&0x7F) << shift
		result[byteIndex] |= byte(value)
		if shift > 1 && byteIndex+1 < len(result) {
			result[byteIndex+1] |= byte(value >> 8)
		}
	}
	return result
}

// Split the given content into the fragments it is sent as. An extended character and its escape
// are never split.
func Split(content string) []string {
	if content == "" {
		return []string{}
	}

	coding := CodingFor(content)
	runes := []rune(content)
	total := 0
	for _, r := range runes {
		total += characterWeight(coding, r)
	}
	if total <= coding.SingleFragmentSize() {
		return []string{content}
	}

	maxPartLength := coding.MultiFragmentSize()
	result := make([]string, 0, coding.FragmentCount(total))
	start := 0
	length := 0
	for i, r := range runes {
		weight := characterWeight(coding, r)
		if length+weight > maxPartLength {
			result = append(result, string(runes[start:i]))
			start = i
			length = 0
		}
		length += weight
	}
	if start < len(runes) {
		result = append(result, string(runes[start:]))
	}
	return result
}

func characterWeight(coding Coding, r rune) int {
	switch {
	case coding == GSM7 && IsExtended(r):
		return 2
	case coding == UCS2 && r > 0xFFFF:
		return 2
	default:
		return 1
	}
}

package gsm

import (
	"fmt"
	"math"
	"strings"
)

/* Character classification for short messages and cell broadcasts */

// Coding of a message according to 3GPP TS 23.038 section 4
type Coding byte

// All supported message codings.
const (
	GSM7 Coding = iota
	UCS2
)

// CodingsByName allows to access all the supported codings by their name as string
var CodingsByName = map[string]Coding{
	"GSM7": GSM7,
	"UCS2": UCS2,
}

// CodingByName returns the coding with the given name.
func CodingByName(name string) (Coding, error) {
	result, ok := CodingsByName[strings.ToUpper(name)]
	if !ok {
		return 0, fmt.Errorf("invalid coding name: %s", name)
	}
	return result, nil
}

func (c Coding) String() string {
	switch c {
	case GSM7:
		return "GSM7"
	case UCS2:
		return "UCS2"
	default:
		return fmt.Sprintf("Coding(%d)", c)
	}
}

// Fragment sizes in characters. A concatenated message loses some characters per fragment to the user data header.
const (
	GSM7SingleFragment = 160
	GSM7MultiFragment  = 153
	UCS2SingleFragment = 70
	UCS2MultiFragment  = 67
)

// SingleFragmentSize returns the number of characters that fit into a message that is not concatenated.
func (c Coding) SingleFragmentSize() int {
	if c == UCS2 {
		return UCS2SingleFragment
	}
	return GSM7SingleFragment
}

// MultiFragmentSize returns the number of characters that fit into one fragment of a concatenated message.
func (c Coding) MultiFragmentSize() int {
	if c == UCS2 {
		return UCS2MultiFragment
	}
	return GSM7MultiFragment
}

// FragmentCount returns the number of fragments needed for a message with the given number of characters.
func (c Coding) FragmentCount(characterCount int) int {
	if characterCount <= c.SingleFragmentSize() {
		return 1
	}
	return int(math.Ceil(float64(characterCount) / float64(c.MultiFragmentSize())))
}

// EncodedBits returns the length in bits of an encoded text with the given number of characters.
func (c Coding) EncodedBits(characterCount int) int {
	if c == UCS2 {
		return characterCount * 16
	}
	return characterCount * 7
}

// SMSFragmentCount returns the number of fragments for a message with the given number of
// characters. nonGSM is true if the message contains characters that force UCS-2.
func SMSFragmentCount(characterCount int, nonGSM bool) int {
	if nonGSM {
		return UCS2.FragmentCount(characterCount)
	}
	return GSM7.FragmentCount(characterCount)
}

// The GSM 03.38 default alphabet, including the escape character.
const basicCharacters = "@£$¥èéùìòÇ\nØø\rÅåΔ_ΦΓΛΩΠΨΣΘΞ\x1bÆæßÉ !\"#¤%&'()*+,-./0123456789:;<=>?" +
	"¡ABCDEFGHIJKLMNOPQRSTUVWXYZÄÖÑÜ§¿abcdefghijklmnopqrstuvwxyzäöñüà"

// ExtendedCharacters need an escape character and are counted twice in GSM-7.
const ExtendedCharacters = "^{}\\[~]|€"

// WelshNonGSMCharacters are the Welsh accented vowels outside the GSM alphabet. Any of them forces UCS-2.
const WelshNonGSMCharacters = "ÁÍÓÚẂÝ" + "ËÏẄŸ" + "ÂÊÎÔÛŴŶ" + "ÀÈÌÒẀÙỲ" + "áíóúẃý" + "ëïẅÿ" + "âêîôûŵŷ" + "ẁỳ"

var (
	basicSet    = runeSet(basicCharacters)
	extendedSet = runeSet(ExtendedCharacters)
	welshSet    = runeSet(WelshNonGSMCharacters)
)

func runeSet(s string) map[rune]struct{} {
	result := make(map[rune]struct{}, len(s))
	for _, r := range s {
		result[r] = struct{}{}
	}
	return result
}

// IsGSM reports whether the rune is part of the basic or the extended GSM alphabet.
func IsGSM(r rune) bool {
	_, basic := basicSet[r]
	_, extended := extendedSet[r]
	return basic || extended
}

// IsExtended reports whether the rune is part of the extended GSM alphabet.
func IsExtended(r rune) bool {
	_, ok := extendedSet[r]
	return ok
}

// IsWelshNonGSM reports whether the rune is one of the Welsh characters outside the GSM alphabet.
func IsWelshNonGSM(r rune) bool {
	_, ok := welshSet[r]
	return ok
}

// IsAllowed reports whether the rune can be sent without downgrading it.
func IsAllowed(r rune) bool {
	return IsGSM(r) || IsWelshNonGSM(r)
}

// NonGSMCharacters returns the set of Welsh non-GSM characters in the given content.
// Characters that are downgraded before sending are not included.
func NonGSMCharacters(content string) map[rune]struct{} {
	result := make(map[rune]struct{})
	for _, r := range content {
		if IsWelshNonGSM(r) {
			result[r] = struct{}{}
		}
	}
	return result
}

// HasNonGSMCharacters reports whether the content contains any Welsh non-GSM character.
func HasNonGSMCharacters(content string) bool {
	for _, r := range content {
		if IsWelshNonGSM(r) {
			return true
		}
	}
	return false
}

// CountExtendedGSMChars returns the number of extended GSM characters in the given content.
func CountExtendedGSMChars(content string) int {
	result := 0
	for _, r := range content {
		if IsExtended(r) {
			result++
		}
	}
	return result
}

// CodingFor returns the coding that is needed to send the given content as it is.
func CodingFor(content string) Coding {
	for _, r := range content {
		if !IsGSM(r) {
			return UCS2
		}
	}
	return GSM7
}

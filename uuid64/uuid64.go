// Package uuid64 converts UUIDs to and from their compact URL-safe base64 form, 22 characters
// without padding.
package uuid64

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// FromBytes returns the URL-safe base64 encoding of b without padding.
func FromBytes(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// ToBytes decodes URL-safe base64. Padding is optional, surplus padding is ignored.
func ToBytes(s string) ([]byte, error) {
	result, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return nil, fmt.Errorf("invalid base64-encoded string: %w", err)
	}
	return result, nil
}

// FromUUID returns the compact form of the UUID.
func FromUUID(id uuid.UUID) string {
	return FromBytes(id[:])
}

// FromString returns the compact form of a UUID in its canonical text form.
func FromString(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return FromUUID(id), nil
}

// ToUUID decodes the compact form of a UUID.
func ToUUID(s string) (uuid.UUID, error) {
	b, err := ToBytes(s)
	if err != nil {
		return uuid.Nil, err
	}
	result, err := uuid.FromBytes(b)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid base64-encoded UUID: %w", err)
	}
	return result, nil
}

// New returns the compact form of a new random UUID.
func New() string {
	return FromUUID(uuid.New())
}

package alert

import (
	"errors"
	"fmt"
)

// ErrInvalidEvent is matched by every ValidationError.
var ErrInvalidEvent = errors.New("invalid broadcast event")

// Kinds of validation errors.
var (
	ErrUnknownMessageFormat   = errors.New("unknown message format")
	ErrUnknownMessageType     = errors.New("unknown message type")
	ErrUnknownChannel         = errors.New("unknown channel")
	ErrMissingField           = errors.New("missing field")
	ErrUnsupportedMessageType = errors.New("unsupported message type")
)

// ValidationError reports a broadcast event that cannot be turned into XML.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
	kind   error
}

// MissingField returns the validation error for a required field without value.
func MissingField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "required", kind: ErrMissingField}
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%v: %s: %s", ErrInvalidEvent, e.Field, e.Reason)
	}
	return fmt.Sprintf("%v: %s %q: %s", ErrInvalidEvent, e.Field, e.Value, e.Reason)
}

// Is reports whether the target is ErrInvalidEvent or the kind of this error.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidEvent || (e.kind != nil && target == e.kind)
}

func (e *ValidationError) Unwrap() error {
	return e.kind
}

// Unsupported returns the validation error for a message type that has no generator.
func Unsupported(messageType MessageType) error {
	return &ValidationError{
		Field:  "message_type",
		Value:  messageType.String(),
		Reason: "no generator for this message type",
		kind:   ErrUnsupportedMessageType,
	}
}

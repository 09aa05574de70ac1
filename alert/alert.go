// Package alert holds the broadcast event record that is turned into CAP or IBAG XML, together
// with the message types, formats and channels it may use.
package alert

import (
	"fmt"
	"strings"
)

// Sender identifies the sending gateway in every generated message.
const Sender = "broadcasts@notifications.service.gov.uk"

// Headline is the default headline of a broadcast.
const Headline = "GOV.UK Emergency Alert"

// MessageType enum
type MessageType byte

// All defined message types.
const (
	AlertMessage MessageType = iota
	UpdateMessage
	CancelMessage
	TestMessage
)

// MessageTypesByName allows to access all the message types by their lower case name
var MessageTypesByName = map[string]MessageType{
	"alert":  AlertMessage,
	"update": UpdateMessage,
	"cancel": CancelMessage,
	"test":   TestMessage,
}

func (t MessageType) String() string {
	switch t {
	case AlertMessage:
		return "Alert"
	case UpdateMessage:
		return "Update"
	case CancelMessage:
		return "Cancel"
	case TestMessage:
		return "Test"
	default:
		return fmt.Sprintf("MessageType(%d)", t)
	}
}

// ParseMessageType returns the message type with the given name, ignoring case.
func ParseMessageType(name string) (MessageType, error) {
	result, ok := MessageTypesByName[strings.ToLower(name)]
	if !ok {
		return 0, &ValidationError{Field: "message_type", Value: name, Reason: "unknown message type", kind: ErrUnknownMessageType}
	}
	return result, nil
}

// MessageFormat enum
type MessageFormat byte

// All supported message formats.
const (
	CAP MessageFormat = iota
	IBAG
)

// MessageFormatsByName allows to access all the message formats by their lower case name
var MessageFormatsByName = map[string]MessageFormat{
	"cap":  CAP,
	"ibag": IBAG,
}

func (f MessageFormat) String() string {
	switch f {
	case CAP:
		return "CAP"
	case IBAG:
		return "IBAG"
	default:
		return fmt.Sprintf("MessageFormat(%d)", f)
	}
}

// ParseMessageFormat returns the message format with the given name, ignoring case.
func ParseMessageFormat(name string) (MessageFormat, error) {
	result, ok := MessageFormatsByName[strings.ToLower(name)]
	if !ok {
		return 0, &ValidationError{Field: "message_format", Value: name, Reason: "unknown message format", kind: ErrUnknownMessageFormat}
	}
	return result, nil
}

// Channel on which a broadcast goes out.
type Channel string

// The channels that may be requested. They map to the 4380 test, the 4382 operator, the 4378 severe
// and the 4370 government channel.
const (
	TestChannel       Channel = "test"
	OperatorChannel   Channel = "operator"
	SevereChannel     Channel = "severe"
	GovernmentChannel Channel = "government"
)

// AllowedChannels lists all channels in the order of their severity.
var AllowedChannels = []Channel{TestChannel, OperatorChannel, SevereChannel, GovernmentChannel}

// ValidateChannel returns the channel with the given name. Channel names are case sensitive.
func ValidateChannel(name string) (Channel, error) {
	for _, channel := range AllowedChannels {
		if string(channel) == name {
			return channel, nil
		}
	}
	return "", &ValidationError{
		Field:  "channel",
		Value:  name,
		Reason: fmt.Sprintf("not an allowed channel, must be one of %v", AllowedChannels),
		kind:   ErrUnknownChannel,
	}
}

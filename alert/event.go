package alert

import (
	"encoding/json"
	"fmt"
	"io"
)

// Event describes a broadcast that is sent to the cell broadcast centre.
// Timestamps are copied into the XML as they are.
type Event struct {
	Identifier    string      `json:"identifier"`
	MessageType   string      `json:"message_type"`
	MessageFormat string      `json:"message_format"`
	MessageNumber string      `json:"message_number,omitempty"`
	Headline      string      `json:"headline,omitempty"`
	Description   string      `json:"description,omitempty"`
	Areas         []Area      `json:"areas,omitempty"`
	Sent          string      `json:"sent,omitempty"`
	Expires       string      `json:"expires,omitempty"`
	Language      string      `json:"language,omitempty"`
	Channel       string      `json:"channel,omitempty"`
	Web           string      `json:"web,omitempty"`
	References    []Reference `json:"references,omitempty"`
}

// Area is a polygon of [lat, lon] points. The name is accepted but not used in the XML.
type Area struct {
	Name    string      `json:"name,omitempty"`
	Polygon [][]float64 `json:"polygon"`
}

// Reference points to a message that was sent before, e.g. the alert a cancel message cancels.
type Reference struct {
	MessageID     string `json:"message_id"`
	MessageNumber string `json:"message_number"`
	Sent          string `json:"sent"`
}

// ReadEvent decodes one event from JSON.
func ReadEvent(r io.Reader) (Event, error) {
	var result Event
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&result); err != nil {
		return Event{}, fmt.Errorf("cannot decode broadcast event: %w", err)
	}
	return result, nil
}

type requirement struct {
	field   string
	present bool
}

// CheckRequired reports the first field that the given message needs but the event lacks.
func (e Event) CheckRequired(format MessageFormat, messageType MessageType) error {
	required := []requirement{{"identifier", e.Identifier != ""}}
	if format == IBAG {
		required = append(required, requirement{"message_number", e.MessageNumber != ""})
	}

	switch messageType {
	case AlertMessage, UpdateMessage:
		required = append(required,
			requirement{"headline", e.Headline != ""},
			requirement{"description", e.Description != ""},
			requirement{"areas", len(e.Areas) > 0},
			requirement{"sent", e.Sent != ""},
			requirement{"expires", e.Expires != ""},
			requirement{"language", e.Language != ""},
			requirement{"channel", e.Channel != ""},
		)
	case CancelMessage:
		required = append(required,
			requirement{"sent", e.Sent != ""},
			requirement{"references", len(e.References) > 0},
		)
	}

	for _, r := range required {
		if !r.present {
			return MissingField(r.field)
		}
	}
	return e.checkAreas()
}

func (e Event) checkAreas() error {
	for i, area := range e.Areas {
		for _, point := range area.Polygon {
			if len(point) != 2 {
				return &ValidationError{
					Field:  fmt.Sprintf("areas[%d].polygon", i),
					Value:  fmt.Sprint(point),
					Reason: "points must be [lat, lon] pairs",
					kind:   ErrInvalidEvent,
				}
			}
		}
	}
	return nil
}

// LastReference returns the most recent of the referenced messages, which is the last one.
func LastReference(references []Reference) (Reference, bool) {
	if len(references) == 0 {
		return Reference{}, false
	}
	return references[len(references)-1], true
}

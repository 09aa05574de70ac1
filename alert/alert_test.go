package alert

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessageType(t *testing.T) {
	tt := []struct {
		value    string
		expected MessageType
		invalid  bool
	}{
		{value: "alert", expected: AlertMessage},
		{value: "ALERT", expected: AlertMessage},
		{value: "Update", expected: UpdateMessage},
		{value: "cancel", expected: CancelMessage},
		{value: "TeSt", expected: TestMessage},
		{value: "notify", invalid: true},
		{value: "", invalid: true},
	}
	for _, tc := range tt {
		t.Run(tc.value, func(t *testing.T) {
			actual, err := ParseMessageType(tc.value)
			if tc.invalid {
				assert.ErrorIs(t, err, ErrInvalidEvent)
				assert.ErrorIs(t, err, ErrUnknownMessageType)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestParseMessageFormat(t *testing.T) {
	tt := []struct {
		value    string
		expected MessageFormat
		invalid  bool
	}{
		{value: "cap", expected: CAP},
		{value: "CAP", expected: CAP},
		{value: "ibag", expected: IBAG},
		{value: "IBag", expected: IBAG},
		{value: "cmas", invalid: true},
	}
	for _, tc := range tt {
		t.Run(tc.value, func(t *testing.T) {
			actual, err := ParseMessageFormat(tc.value)
			if tc.invalid {
				assert.ErrorIs(t, err, ErrInvalidEvent)
				assert.ErrorIs(t, err, ErrUnknownMessageFormat)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestMessageStrings(t *testing.T) {
	assert.Equal(t, "Alert", AlertMessage.String())
	assert.Equal(t, "Update", UpdateMessage.String())
	assert.Equal(t, "Cancel", CancelMessage.String())
	assert.Equal(t, "Test", TestMessage.String())
	assert.Equal(t, "CAP", CAP.String())
	assert.Equal(t, "IBAG", IBAG.String())
}

func TestValidateChannel(t *testing.T) {
	for _, channel := range AllowedChannels {
		actual, err := ValidateChannel(string(channel))
		assert.NoError(t, err)
		assert.Equal(t, channel, actual)
	}

	_, err := ValidateChannel("Severe")
	assert.ErrorIs(t, err, ErrUnknownChannel)

	_, err = ValidateChannel("extreme")
	require.ErrorIs(t, err, ErrInvalidEvent)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "channel", validationErr.Field)
	assert.Equal(t, "extreme", validationErr.Value)
	assert.Contains(t, err.Error(), `channel "extreme"`)
}

func TestUnsupported(t *testing.T) {
	err := Unsupported(UpdateMessage)
	assert.ErrorIs(t, err, ErrInvalidEvent)
	assert.ErrorIs(t, err, ErrUnsupportedMessageType)
	assert.False(t, errors.Is(err, ErrMissingField))
}

func TestReadEvent(t *testing.T) {
	event, err := ReadEvent(strings.NewReader(`{
		"identifier": "ABC123",
		"message_type": "alert",
		"message_format": "cap",
		"headline": "GOV.UK Emergency Alert",
		"description": "Flood warning",
		"areas": [{"name": "Lambeth", "polygon": [[51.12, -1.2], [51.12, 1.2], [51.74, 1.2]]}],
		"sent": "2020-12-08T11:19:44+00:00",
		"expires": "2020-12-08T12:19:44+00:00",
		"language": "en-GB",
		"channel": "severe",
		"references": [{"message_id": "XYZ", "message_number": "00000074", "sent": "2020-12-08 11:19:44.130585"}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "ABC123", event.Identifier)
	assert.Equal(t, "Lambeth", event.Areas[0].Name)
	assert.Equal(t, [][]float64{{51.12, -1.2}, {51.12, 1.2}, {51.74, 1.2}}, event.Areas[0].Polygon)
	assert.Equal(t, "severe", event.Channel)

	_, err = ReadEvent(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestLastReference(t *testing.T) {
	tt := []struct {
		desc       string
		references []Reference
		expected   Reference
		expectedOK bool
	}{
		{desc: "no references"},
		{
			desc:       "single reference",
			references: []Reference{{MessageID: "XYZ", MessageNumber: "00000074"}},
			expected:   Reference{MessageID: "XYZ", MessageNumber: "00000074"},
			expectedOK: true,
		},
		{
			desc: "last of several",
			references: []Reference{
				{MessageID: "XYZ", MessageNumber: "00000074"},
				{MessageID: "ABC", MessageNumber: "00000075"},
			},
			expected:   Reference{MessageID: "ABC", MessageNumber: "00000075"},
			expectedOK: true,
		},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			actual, ok := LastReference(tc.references)
			assert.Equal(t, tc.expectedOK, ok)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestCheckRequired(t *testing.T) {
	complete := Event{
		Identifier:    "ABC123",
		MessageNumber: "00000001",
		Headline:      "headline",
		Description:   "description",
		Areas:         []Area{{Polygon: [][]float64{{1, 2}, {3, 4}, {5, 6}}}},
		Sent:          "sent",
		Expires:       "expires",
		Language:      "en-GB",
		Channel:       "test",
		References:    []Reference{{MessageID: "XYZ", MessageNumber: "00000001", Sent: "sent"}},
	}
	tt := []struct {
		desc          string
		modify        func(e *Event)
		format        MessageFormat
		messageType   MessageType
		expectedField string
	}{
		{desc: "complete alert", modify: func(*Event) {}, format: CAP, messageType: AlertMessage},
		{desc: "complete cancel", modify: func(*Event) {}, format: IBAG, messageType: CancelMessage},
		{desc: "complete test", modify: func(*Event) {}, format: IBAG, messageType: TestMessage},
		{
			desc:          "missing identifier",
			modify:        func(e *Event) { e.Identifier = "" },
			format:        CAP,
			messageType:   TestMessage,
			expectedField: "identifier",
		},
		{
			desc:        "message number is not needed for CAP",
			modify:      func(e *Event) { e.MessageNumber = "" },
			format:      CAP,
			messageType: CancelMessage,
		},
		{
			desc:          "message number is needed for IBAG",
			modify:        func(e *Event) { e.MessageNumber = "" },
			format:        IBAG,
			messageType:   TestMessage,
			expectedField: "message_number",
		},
		{
			desc:          "alert without areas",
			modify:        func(e *Event) { e.Areas = nil },
			format:        CAP,
			messageType:   AlertMessage,
			expectedField: "areas",
		},
		{
			desc:          "alert without channel",
			modify:        func(e *Event) { e.Channel = "" },
			format:        IBAG,
			messageType:   AlertMessage,
			expectedField: "channel",
		},
		{
			desc:          "cancel without references",
			modify:        func(e *Event) { e.References = nil },
			format:        CAP,
			messageType:   CancelMessage,
			expectedField: "references",
		},
		{
			desc:          "point with a single coordinate",
			modify:        func(e *Event) { e.Areas = []Area{{Polygon: [][]float64{{1}}}} },
			format:        CAP,
			messageType:   AlertMessage,
			expectedField: "areas[0].polygon",
		},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			event := complete
			tc.modify(&event)

			err := event.CheckRequired(tc.format, tc.messageType)
			if tc.expectedField == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tc.expectedField, validationErr.Field)
			assert.ErrorIs(t, err, ErrInvalidEvent)
		})
	}
}

func TestFormatPolygon(t *testing.T) {
	tt := []struct {
		desc     string
		polygon  [][]float64
		expected string
	}{
		{
			desc:     "decimals",
			polygon:  [][]float64{{51.12, -1.2}, {51.12, 1.2}, {51.74, 1.2}, {51.74, -1.2}, {51.12, -1.2}},
			expected: "51.12,-1.2 51.12,1.2 51.74,1.2 51.74,-1.2 51.12,-1.2",
		},
		{desc: "integral values", polygon: [][]float64{{51, -1}, {0, 0.5}}, expected: "51.0,-1.0 0.0,0.5"},
		{desc: "empty", polygon: nil, expected: ""},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatPolygon(tc.polygon))
		})
	}
}

func TestSerialise(t *testing.T) {
	root := NewRoot("alert", "urn:example")
	SubElement(root, "identifier", "a&b")
	SubElement(root, "description", "  line one\nline \"two\"")
	SubElement(root, "empty", "")

	actual, err := Serialise(root)
	require.NoError(t, err)
	assert.Equal(t, `<alert xmlns="urn:example"><identifier>a&amp;b</identifier>`+
		"<description>  line one\nline \"two\"</description><empty/></alert>", actual)
}

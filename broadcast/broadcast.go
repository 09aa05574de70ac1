// Package broadcast turns broadcast events into the XML body that is sent to the cell broadcast
// centre, optionally signed.
package broadcast

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"github.com/eas-tools/alerts-utils/alert"
	"github.com/eas-tools/alerts-utils/cap"
	"github.com/eas-tools/alerts-utils/ibag"
	"github.com/eas-tools/alerts-utils/xmlsig"
)

// Generator builds XML bodies. A Generator is safe for concurrent use.
type Generator struct {
	logger zerolog.Logger
	clock  clock.Clock
	signer *xmlsig.Signer
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. The body of every generated message is logged at info level.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithClock sets the clock that dates link tests and Now.
func WithClock(c clock.Clock) Option {
	return func(g *Generator) {
		g.clock = c
	}
}

// WithSigner enables digital signatures. A nil signer disables them.
func WithSigner(signer *xmlsig.Signer) Option {
	return func(g *Generator) {
		g.signer = signer
	}
}

// New returns a Generator that does not sign its messages unless configured otherwise.
func New(opts ...Option) *Generator {
	g := &Generator{
		logger: zerolog.Nop(),
		clock:  clock.New(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Now returns the time of the generator's clock in the format of CAP sent and expires times.
func (g *Generator) Now() string {
	return cap.FormatTime(g.clock.Now().UTC())
}

// SigningEnabled reports whether generated messages are signed.
func (g *Generator) SigningEnabled() bool {
	return g.signer != nil
}

// GenerateXMLBody validates the event and returns its XML representation.
func (g *Generator) GenerateXMLBody(event alert.Event) (string, error) {
	root, format, err := g.Generate(event)
	if err != nil {
		return "", err
	}

	body, err := alert.Serialise(root)
	if err != nil {
		return "", fmt.Errorf("cannot serialise %s message: %w", format, err)
	}

	g.logger.Info().
		Str("identifier", event.Identifier).
		Str("format", format.String()).
		Str("message_type", event.MessageType).
		Bool("signed", g.SigningEnabled()).
		Msg("Body: " + body)
	return body, nil
}

// Generate validates the event and returns its XML tree, signed if signing is enabled.
func (g *Generator) Generate(event alert.Event) (*etree.Element, alert.MessageFormat, error) {
	format, err := alert.ParseMessageFormat(event.MessageFormat)
	if err != nil {
		return nil, 0, err
	}
	messageType, err := alert.ParseMessageType(event.MessageType)
	if err != nil {
		return nil, 0, err
	}
	if messageType == alert.UpdateMessage {
		return nil, 0, alert.Unsupported(messageType)
	}
	if err := event.CheckRequired(format, messageType); err != nil {
		return nil, 0, err
	}

	root, err := g.route(event, format, messageType)
	if err != nil {
		return nil, 0, err
	}

	if g.signer == nil {
		return root, format, nil
	}

	signed, err := g.signer.Sign(root)
	if err != nil {
		return nil, 0, err
	}
	if format == alert.IBAG {
		if err := ibag.RelocateSignature(signed); err != nil {
			return nil, 0, fmt.Errorf("cannot relocate IBAG signature: %w", err)
		}
	}
	return signed, format, nil
}

func (g *Generator) route(event alert.Event, format alert.MessageFormat, messageType alert.MessageType) (*etree.Element, error) {
	switch messageType {
	case alert.TestMessage:
		sent := g.clock.Now().UTC().Truncate(time.Minute)
		if format == alert.IBAG {
			return ibag.GenerateLinkTest(event.MessageNumber, event.Identifier, sent), nil
		}
		return cap.GenerateLinkTest(event.Identifier, sent), nil

	case alert.AlertMessage:
		channel, err := alert.ValidateChannel(event.Channel)
		if err != nil {
			return nil, err
		}
		if format == alert.IBAG {
			return ibag.GenerateAlert(ibag.AlertParams{
				MessageNumber: event.MessageNumber,
				Identifier:    event.Identifier,
				Headline:      event.Headline,
				Description:   event.Description,
				Areas:         event.Areas,
				Sent:          event.Sent,
				Expires:       event.Expires,
				Language:      event.Language,
				Channel:       channel,
			}), nil
		}
		return cap.GenerateAlert(cap.AlertParams{
			Identifier:  event.Identifier,
			Headline:    event.Headline,
			Description: event.Description,
			Areas:       event.Areas,
			Sent:        event.Sent,
			Expires:     event.Expires,
			Language:    event.Language,
			Channel:     channel,
			Web:         event.Web,
		}), nil

	case alert.CancelMessage:
		if format == alert.IBAG {
			return ibag.GenerateCancel(event.MessageNumber, event.Identifier, event.References, event.Sent)
		}
		return cap.GenerateCancel(event.Identifier, event.Sent, event.References), nil

	default:
		return nil, alert.Unsupported(messageType)
	}
}

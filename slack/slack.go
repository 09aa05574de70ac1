// Package slack posts formatted messages to Slack incoming webhooks.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// MessageType selects the colour bar of a message.
type MessageType string

const (
	SuccessMessage MessageType = "success"
	ErrorMessage   MessageType = "error"
	InfoMessage    MessageType = "info"
	GeneralMessage MessageType = "general"
)

var colours = map[MessageType]string{
	SuccessMessage: "#02b101",
	ErrorMessage:   "#e82b2a",
	InfoMessage:    "#f5ca00",
	GeneralMessage: "#68737d",
}

// Colour returns the attachment colour of the message type.
func (t MessageType) Colour() (string, error) {
	colour, ok := colours[t]
	if !ok {
		return "", fmt.Errorf("unknown message type %q", string(t))
	}
	return colour, nil
}

// Config holds the webhook a notifier posts to.
type Config struct {
	// The incoming webhook URL.
	WebhookURL string `mapstructure:"webhook"`
}

// Validate reports a missing or malformed webhook URL.
func (c Config) Validate() error {
	if c.WebhookURL == "" {
		return errors.New("must specify webhook url")
	}
	if _, err := url.ParseRequestURI(c.WebhookURL); err != nil {
		return errors.Wrapf(err, "invalid webhook url %q", c.WebhookURL)
	}
	return nil
}

// Message is one webhook post: a header, a divider and one markdown section per entry.
type Message struct {
	WebhookURL       string
	Subject          string
	Type             MessageType
	MarkdownSections []string
}

type text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type block struct {
	Type string `json:"type"`
	Text *text  `json:"text,omitempty"`
}

type attachment struct {
	Color  string  `json:"color"`
	Blocks []block `json:"blocks"`
}

// RequestData is the JSON body of a webhook post.
type RequestData struct {
	Attachments []attachment `json:"attachments"`
}

// RequestData returns the JSON payload of the message.
func (m Message) RequestData() (RequestData, error) {
	colour, err := m.Type.Colour()
	if err != nil {
		return RequestData{}, err
	}
	blocks := []block{
		{Type: "header", Text: &text{Type: "plain_text", Text: m.Subject}},
		{Type: "divider"},
	}
	for _, section := range m.MarkdownSections {
		blocks = append(blocks, block{Type: "section", Text: &text{Type: "mrkdwn", Text: section}})
	}
	return RequestData{Attachments: []attachment{{Color: colour, Blocks: blocks}}}, nil
}

// Error is returned when Slack does not accept a message.
type Error struct {
	StatusCode int
	Body       []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("slack message creation request failed with %d", e.StatusCode)
}

// Client posts messages to Slack webhooks. A Client is safe for concurrent use.
type Client struct {
	http   *http.Client
	logger zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client, http.DefaultClient by default.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.http = c
	}
}

// WithLogger sets the logger. Failed and successful posts are logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(client *Client) {
		client.logger = logger
	}
}

// NewClient returns a Client that logs nothing unless configured otherwise.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:   http.DefaultClient,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send posts the message to its webhook. Any status other than 200 is an *Error.
func (c *Client) Send(ctx context.Context, m Message) error {
	data, err := m.RequestData()
	if err != nil {
		return err
	}
	var post bytes.Buffer
	if err := json.NewEncoder(&post).Encode(data); err != nil {
		return fmt.Errorf("cannot encode slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.WebhookURL, &post)
	if err != nil {
		return fmt.Errorf("cannot create slack request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cannot send slack message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error().Int("status", resp.StatusCode).Msgf("Slack message creation request failed with %d", resp.StatusCode)
		return &Error{StatusCode: resp.StatusCode, Body: body}
	}

	c.logger.Info().Msg("Slack message sent successfully.")
	return nil
}

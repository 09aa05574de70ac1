// Package zendesk raises and updates support tickets in Zendesk.
package zendesk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	TicketURL         = "https://govuk.zendesk.com/api/v2/tickets.json"
	SearchTicketsURL  = "https://govuk.zendesk.com/api/v2/search.json"
	TicketIDURLPrefix = "https://govuk.zendesk.com/api/v2/tickets/"
)

// AdminTicketTitlePrefix starts the subject of tickets about out of hours admin activity.
const AdminTicketTitlePrefix = "Out of Hours Admin Activity"

var ErrUnknownPriority = errors.New("unknown priority")

// Error is returned when Zendesk answers with an unexpected status.
type Error struct {
	StatusCode int
	Body       []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("zendesk request failed with %d '%s'", e.StatusCode, e.Body)
}

// Config holds the credentials of the Zendesk API.
type Config struct {
	// Basic auth credentials, already base64 encoded.
	APIKey string `mapstructure:"api-key"`
}

// Validate reports a missing API key.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return pkgerrors.New("must specify api key")
	}
	return nil
}

// Client creates and updates tickets through the Zendesk API. A Client is safe for concurrent use.
type Client struct {
	apiKey string
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

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(client *Client) {
		client.logger = logger
	}
}

// NewClient returns a Client for the given configuration, which must be valid.
func NewClient(c Config, opts ...Option) (*Client, error) {
	if err := c.Validate(); err != nil {
		return nil, pkgerrors.Wrap(err, "invalid zendesk config")
	}
	client := &Client{
		apiKey: c.APIKey,
		http:   http.DefaultClient,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (c *Client) do(ctx context.Context, method, target string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(payload); err != nil {
			return nil, fmt.Errorf("cannot encode zendesk request: %w", err)
		}
		body = &buf
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("cannot create zendesk request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zendesk %s %s: %w", method, target, err)
	}
	return resp, nil
}

// CreateTicket creates the ticket and returns its id.
func (c *Client) CreateTicket(ctx context.Context, ticket EASSupportTicket) (int64, error) {
	resp, err := c.do(ctx, http.MethodPost, TicketURL, ticket.RequestData())
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("cannot read zendesk response: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		c.logger.Error().Int("status", resp.StatusCode).
			Msgf("Zendesk create ticket request failed with %d '%s'", resp.StatusCode, body)
		return 0, &Error{StatusCode: resp.StatusCode, Body: body}
	}

	var created struct {
		Ticket struct {
			ID int64 `json:"id"`
		} `json:"ticket"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return 0, fmt.Errorf("cannot decode zendesk ticket: %w", err)
	}

	c.logger.Info().Int64("ticket_id", created.Ticket.ID).
		Msgf("Zendesk create ticket %d succeeded", created.Ticket.ID)
	return created.Ticket.ID, nil
}

// OpenAdminTicketID returns the id of the open out of hours admin activity ticket raised for
// the user becoming an admin. ok is false when there is none.
func (c *Client) OpenAdminTicketID(ctx context.Context, email string) (id int64, ok bool, err error) {
	query := url.Values{}
	query.Set("query", fmt.Sprintf("type:ticket status:new status:open %s requester:%s", AdminTicketTitlePrefix, email))

	resp, err := c.do(ctx, http.MethodGet, SearchTicketsURL+"?"+query.Encode(), nil)
	if err != nil {
		return 0, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, false, &Error{StatusCode: resp.StatusCode, Body: body}
	}

	var found struct {
		Count   int `json:"count"`
		Results []struct {
			ID int64 `json:"id"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&found); err != nil {
		return 0, false, fmt.Errorf("cannot decode zendesk search: %w", err)
	}
	if found.Count == 0 || len(found.Results) == 0 {
		return 0, false, nil
	}
	return found.Results[0].ID, true, nil
}

// UpdateTicketPriority sets the priority of a ticket, adding a comment when one is given.
func (c *Client) UpdateTicketPriority(ctx context.Context, ticketID int64, priority, comment string) error {
	switch priority {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPriority, priority)
	}

	update := struct {
		Priority string   `json:"priority"`
		Comment  *Comment `json:"comment,omitempty"`
	}{Priority: priority}
	if comment != "" {
		update.Comment = &Comment{Body: comment}
	}

	resp, err := c.do(ctx, http.MethodPut, TicketIDURLPrefix+strconv.FormatInt(ticketID, 10),
		map[string]any{"ticket": update})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &Error{StatusCode: resp.StatusCode, Body: body}
	}
	return nil
}

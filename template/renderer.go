package template

import (
	"fmt"
	htmltemplate "html/template"

	"github.com/eas-tools/alerts-utils/field"
	"github.com/eas-tools/alerts-utils/insensitive"
)

const smsPreviewSource = `{{if .ShowSender}}
  <p class="sms-message-sender">
    From: {{.Sender}}
  </p>
{{end}}
{{if .ShowRecipient}}
  <p class="sms-message-recipient">
    To: {{.Recipient}}
  </p>
{{end}}
<div class="sms-message-wrapper">
  {{.Body}}
</div>`

const broadcastPreviewSource = `<div class="broadcast-message-wrapper">
  <h2 class="broadcast-message-heading">
    <svg class="broadcast-message-heading__icon" xmlns="http://www.w3.org/2000/svg" width="22" height="18.23" viewBox="0 0 17.5 14.5" aria-hidden="true">
      <path fill-rule="evenodd"
            fill="currentcolor"
            d="M8.6 0L0 14.5h17.5L8.6 0zm.2 10.3c-.8 0-1.5.7-1.5 1.5s.7 1.5 1.5 1.5 1.5-.7 1.5-1.5c-.1-.8-.7-1.5-1.5-1.5zm1.3-4.5c.1.8-.3 3.2-.3 3.2h-2s-.5-2.3-.5-3c0 0 0-1.6 1.4-1.6s1.4 1.4 1.4 1.4z"
      />
    </svg>
    Emergency alert
  </h2>
  {{.Body}}
</div>`

// Renderer creates templates. It owns the preview markup, the placeholder cache and the
// personalisation key cache that all its templates share. A Renderer is safe for concurrent use, the templates it creates are not.
type Renderer struct {
	placeholders     *field.PlaceholderCache
	keys             *insensitive.Keys
	smsPreview       *htmltemplate.Template
	broadcastPreview *htmltemplate.Template
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	placeholderCacheSize int
	keyCacheSize         int
}

// WithPlaceholderCacheSize sets the number of contents whose placeholders are cached.
func WithPlaceholderCacheSize(size int) RendererOption {
	return func(c *rendererConfig) {
		c.placeholderCacheSize = size
	}
}

// WithKeyCacheSize sets the number of normalised personalisation keys that are cached.
func WithKeyCacheSize(size int) RendererOption {
	return func(c *rendererConfig) {
		c.keyCacheSize = size
	}
}

// NewRenderer returns a new Renderer.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	config := rendererConfig{
		placeholderCacheSize: field.DefaultPlaceholderCacheSize,
		keyCacheSize:         insensitive.DefaultKeyCacheSize,
	}
	for _, opt := range opts {
		opt(&config)
	}

	placeholders, err := field.NewPlaceholderCache(config.placeholderCacheSize)
	if err != nil {
		return nil, err
	}
	keys, err := insensitive.NewKeys(config.keyCacheSize)
	if err != nil {
		return nil, err
	}
	smsPreview, err := htmltemplate.New("sms_preview").Parse(smsPreviewSource)
	if err != nil {
		return nil, fmt.Errorf("cannot parse SMS preview: %w", err)
	}
	broadcastPreview, err := htmltemplate.New("broadcast_preview").Parse(broadcastPreviewSource)
	if err != nil {
		return nil, fmt.Errorf("cannot parse broadcast preview: %w", err)
	}

	return &Renderer{
		placeholders:     placeholders,
		keys:             keys,
		smsPreview:       smsPreview,
		broadcastPreview: broadcastPreview,
	}, nil
}

// NewTemplate returns a generic template. It accepts definitions of any type.
func (r *Renderer) NewTemplate(definition Definition, opts ...Option) *Template {
	o := applyOptions(opts)
	return &Template{base: newBase(r, definition, o)}
}

// NewSMSMessage returns the template of an SMS as it is sent.
func (r *Renderer) NewSMSMessage(definition Definition, opts ...Option) (*SMSMessage, error) {
	if err := checkType("SMSMessage", SMS, definition); err != nil {
		return nil, err
	}
	return &SMSMessage{sms: newSMS(r, definition, applyOptions(opts))}, nil
}

// NewSMSPreview returns the template of an SMS as it is previewed.
func (r *Renderer) NewSMSPreview(definition Definition, opts ...Option) (*SMSPreview, error) {
	if err := checkType("SMSPreview", SMS, definition); err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	return &SMSPreview{sms: newSMS(r, definition, o), preview: newPreview(o)}, nil
}

// NewBroadcastMessage returns the template of a broadcast as it is sent.
func (r *Renderer) NewBroadcastMessage(definition Definition, opts ...Option) (*BroadcastMessage, error) {
	if err := checkType("BroadcastMessage", Broadcast, definition); err != nil {
		return nil, err
	}
	return &BroadcastMessage{broadcast: broadcast{sms: newSMS(r, definition, applyOptions(opts))}}, nil
}

// NewBroadcastPreview returns the template of a broadcast as it is previewed.
func (r *Renderer) NewBroadcastPreview(definition Definition, opts ...Option) (*BroadcastPreview, error) {
	if err := checkType("BroadcastPreview", Broadcast, definition); err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	return &BroadcastPreview{broadcast: broadcast{sms: newSMS(r, definition, o)}, preview: newPreview(o)}, nil
}

// BroadcastMessageFromContent returns a broadcast message for content that is already personalised.
func (r *Renderer) BroadcastMessageFromContent(content string) *BroadcastMessage {
	definition := Definition{
		Type:    Broadcast,
		Content: content,
		Raw: map[string]any{
			"template_type": string(Broadcast),
			"content":       content,
		},
	}
	return &BroadcastMessage{broadcast: broadcast{sms: newSMS(r, definition, defaultOptions())}}
}

// BroadcastMessageFromEvent returns a broadcast message for the transmitted content of a
// serialised broadcast event: {"transmitted_content": {"body": "..."}}
func (r *Renderer) BroadcastMessageFromEvent(event map[string]any) (*BroadcastMessage, error) {
	transmitted, ok := event["transmitted_content"].(map[string]any)
	if !ok {
		return nil, ErrMissingBody
	}
	body, ok := transmitted["body"].(string)
	if !ok {
		return nil, ErrMissingBody
	}
	return r.BroadcastMessageFromContent(body), nil
}

func applyOptions(opts []Option) options {
	result := defaultOptions()
	for _, opt := range opts {
		opt(&result)
	}
	return result
}

func checkType(name string, expected Type, definition Definition) error {
	if definition.Type != expected {
		return fmt.Errorf("%w: cannot initialise %s with %s template_type", ErrIncompatibleType, name, definition.Type)
	}
	return nil
}

package template

import (
	htmltemplate "html/template"
	"strings"

	"github.com/eas-tools/alerts-utils/field"
	"github.com/eas-tools/alerts-utils/formatters"
	"github.com/eas-tools/alerts-utils/gsm"
)

const linkClasses = "govuk-link govuk-link--no-visited-state"

// magicSequence stands in for placeholders without values while counting. It survives
// whitespace normalisation and is removed afterwards.
const magicSequence = "\uE000\uE001\uE002"

type sms struct {
	base
	prefix     string
	showPrefix bool
	sender     string

	count   int
	counted bool
}

func newSMS(r *Renderer, definition Definition, o options) sms {
	return sms{
		base:       newBase(r, definition, o),
		prefix:     o.prefix,
		showPrefix: o.showPrefix,
		sender:     o.sender,
	}
}

// SetValues replaces the personalisation.
func (s *sms) SetValues(values map[string]any) {
	s.counted = false
	s.setValues(values)
}

// Prefix returns the prefix, or the empty string if the prefix is not shown.
func (s *sms) Prefix() string {
	if !s.showPrefix {
		return ""
	}
	return s.prefix
}

// SetPrefix sets the prefix.
func (s *sms) SetPrefix(prefix string) {
	s.counted = false
	s.prefix = prefix
}

// SetShowPrefix defines if the prefix is used.
func (s *sms) SetShowPrefix(show bool) {
	s.counted = false
	s.showPrefix = show
}

// Sender of the message.
func (s *sms) Sender() string {
	return s.sender
}

// SetSender sets the sender of the message.
func (s *sms) SetSender(sender string) {
	s.sender = sender
}

// ContentCount returns the number of characters of the message, including the prefix. Without
// values, placeholders do not count, ((placeholder)) counts as nothing.
func (s *sms) ContentCount() int {
	if !s.counted {
		s.count = len([]rune(s.unsanitised()))
		s.counted = true
	}
	return s.count
}

// ContentCountWithoutPrefix returns the number of characters of the message without the
// prefix and its separator.
func (s *sms) ContentCountWithoutPrefix() int {
	prefix := s.Prefix()
	if prefix == "" {
		return s.ContentCount()
	}
	return max(s.ContentCount()-len([]rune(prefix))-2, 0)
}

// FragmentCount returns the number of fragments the message is sent as.
func (s *sms) FragmentCount() int {
	filledIn := s.ContentWithPlaceholdersFilledIn()
	characterCount := s.ContentCount() + gsm.CountExtendedGSMChars(filledIn)
	return gsm.SMSFragmentCount(characterCount, gsm.HasNonGSMCharacters(filledIn))
}

// IsMessageTooLong reports whether the message without the prefix exceeds SMSCharCountLimit.
func (s *sms) IsMessageTooLong() bool {
	return s.ContentCountWithoutPrefix() > SMSCharCountLimit
}

// IsMessageEmpty reports whether the message has no content besides the prefix.
func (s *sms) IsMessageEmpty() bool {
	return s.ContentCountWithoutPrefix() == 0
}

// ContentWithPlaceholdersFilledIn returns the message as it is sent.
func (s *sms) ContentWithPlaceholdersFilledIn() string {
	return gsm.Sanitise(s.unsanitised())
}

func (s *sms) unsanitised() string {
	values := s.values
	if values.Len() == 0 {
		values = s.renderer.keys.New()
		for _, placeholder := range s.Placeholders() {
			values.Set(placeholder, magicSequence)
		}
	}

	body := field.New(s.definition.Content, values, field.Plain(), field.WithHTML(field.Passthrough)).String()
	body = formatters.AddPrefix(body, s.Prefix())
	body = formatters.RemoveWhitespaceBeforePunctuation(body)
	body = formatters.NormaliseWhitespaceAndNewlines(body)
	body = formatters.NormaliseMultipleNewlines(body)
	body = strings.TrimSpace(body)
	return strings.ReplaceAll(body, magicSequence, "")
}

func (s *sms) previewBody(downgrade bool) string {
	body := field.New(s.definition.Content, s.values, field.WithHTML(field.Escape), field.RedactMissing(s.redact)).String()
	body = formatters.AddPrefix(body, formatters.EscapeHTML(s.Prefix()))
	if downgrade {
		body = gsm.Sanitise(body)
	}
	body = formatters.RemoveWhitespaceBeforePunctuation(body)
	body = formatters.NormaliseWhitespaceAndNewlines(body)
	body = formatters.NormaliseMultipleNewlines(body)
	body = formatters.Nl2br(body)
	return formatters.AutolinkURLs(body, linkClasses)
}

// SMSMessage is an SMS as it is sent.
type SMSMessage struct {
	sms
}

func (m *SMSMessage) String() string {
	return m.ContentWithPlaceholdersFilledIn()
}

type preview struct {
	showSender    bool
	showRecipient bool
	downgrade     bool
}

func newPreview(o options) preview {
	return preview{
		showSender:    o.showSender,
		showRecipient: o.showRecipient,
		downgrade:     o.downgrade,
	}
}

type previewData struct {
	ShowSender    bool
	Sender        string
	ShowRecipient bool
	Recipient     htmltemplate.HTML
	Body          htmltemplate.HTML
}

// SMSPreview is an SMS as it is shown to users, as HTML.
type SMSPreview struct {
	sms
	preview
}

// Render the preview as HTML.
func (p *SMSPreview) Render() (string, error) {
	recipient := field.New("((phone number))", p.values, field.WithoutBrackets(), field.WithHTML(field.Escape)).String()
	data := previewData{
		ShowSender:    p.showSender,
		Sender:        p.sender,
		ShowRecipient: p.showRecipient,
		Recipient:     htmltemplate.HTML(recipient),
		Body:          htmltemplate.HTML(p.previewBody(p.downgrade)),
	}

	var b strings.Builder
	if err := p.renderer.smsPreview.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (p *SMSPreview) String() string {
	result, _ := p.Render()
	return result
}

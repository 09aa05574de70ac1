package template

import (
	htmltemplate "html/template"
	"strings"

	"github.com/eas-tools/alerts-utils/field"
	"github.com/eas-tools/alerts-utils/formatters"
	"github.com/eas-tools/alerts-utils/gsm"
)

// Capacity of a cell broadcast in characters.
const (
	MaxContentCountGSM  = 1395
	MaxContentCountUCS2 = 615
)

type broadcast struct {
	sms
}

// NonGSMCharacters returns the Welsh non-GSM characters of the content.
func (b *broadcast) NonGSMCharacters() map[rune]struct{} {
	return gsm.NonGSMCharacters(b.definition.Content)
}

// EncodedContentCount returns the number of characters as they are encoded. Extended GSM
// characters count twice, unless the content is sent as UCS-2.
func (b *broadcast) EncodedContentCount() int {
	if gsm.HasNonGSMCharacters(b.definition.Content) {
		return b.ContentCount()
	}
	return b.ContentCount() + gsm.CountExtendedGSMChars(b.ContentWithPlaceholdersFilledIn())
}

// MaxContentCount returns the capacity of the broadcast for its content.
func (b *broadcast) MaxContentCount() int {
	if gsm.HasNonGSMCharacters(b.definition.Content) {
		return MaxContentCountUCS2
	}
	return MaxContentCountGSM
}

// ContentTooLong reports whether the encoded content exceeds the capacity of the broadcast.
func (b *broadcast) ContentTooLong() bool {
	return b.EncodedContentCount() > b.MaxContentCount()
}

// BroadcastMessage is a broadcast as it is sent.
type BroadcastMessage struct {
	broadcast
}

func (m *BroadcastMessage) String() string {
	body := field.New(strings.TrimSpace(m.definition.Content), m.values, field.WithHTML(field.Escape)).String()
	body = gsm.Sanitise(body)
	body = formatters.RemoveWhitespaceBeforePunctuation(body)
	body = formatters.NormaliseWhitespaceAndNewlines(body)
	return formatters.NormaliseMultipleNewlines(body)
}

// BroadcastPreview is a broadcast as it is shown to users, as HTML.
type BroadcastPreview struct {
	broadcast
	preview
}

// Render the preview as HTML.
func (p *BroadcastPreview) Render() (string, error) {
	data := previewData{
		Body: htmltemplate.HTML(p.previewBody(p.downgrade)),
	}

	var b strings.Builder
	if err := p.renderer.broadcastPreview.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (p *BroadcastPreview) String() string {
	result, _ := p.Render()
	return result
}

package broadcast

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eas-tools/alerts-utils/alert"
	"github.com/eas-tools/alerts-utils/xmlsig"
)

var testPolygon = [][]float64{{51.12, -1.2}, {51.12, 1.2}, {51.74, 1.2}, {51.74, -1.2}, {51.12, -1.2}}

func alertEvent(format string) alert.Event {
	return alert.Event{
		Identifier:    "ABC123",
		MessageType:   "alert",
		MessageFormat: format,
		MessageNumber: "00000074",
		Headline:      "GOV.UK Emergency Alert",
		Description:   "  description\nwith\nnewlines",
		Areas:         []alert.Area{{Polygon: testPolygon}},
		Sent:          "2020-12-08T11:19:44+00:00",
		Expires:       "2020-12-08T12:19:44+00:00",
		Language:      "en-GB",
		Channel:       "severe",
	}
}

func cancelEvent(format string) alert.Event {
	return alert.Event{
		Identifier:    "DEF456",
		MessageType:   "cancel",
		MessageFormat: format,
		MessageNumber: "00000075",
		Sent:          "2020-12-08T11:29:44+00:00",
		References: []alert.Reference{
			{MessageID: "ABC123", MessageNumber: "00000074", Sent: "2020-12-08 11:19:44.130585"},
		},
	}
}

func newTestSigner(t *testing.T) (*xmlsig.Signer, []byte) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	template := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "broadcasts"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	signer, err := xmlsig.NewSigner(keyPEM, certPEM)
	require.NoError(t, err)
	return signer, certPEM
}

func parse(t *testing.T, body string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(body))
	return doc.Root()
}

func TestGenerateCAPAlert(t *testing.T) {
	body, err := New().GenerateXMLBody(alertEvent("cap"))
	require.NoError(t, err)

	assert.Equal(t, `<alert xmlns="urn:oasis:names:tc:emergency:cap:1.2">`+
		`<identifier>ABC123</identifier>`+
		`<sender>broadcasts@notifications.service.gov.uk</sender>`+
		`<sent>2020-12-08T11:19:44+00:00</sent>`+
		`<status>Actual</status>`+
		`<msgType>Alert</msgType>`+
		`<scope>Public</scope>`+
		`<info>`+
		`<language>en-GB</language>`+
		`<category>Safety</category>`+
		`<event>Alert</event>`+
		`<urgency>Expected</urgency>`+
		`<severity>Severe</severity>`+
		`<certainty>Likely</certainty>`+
		`<expires>2020-12-08T12:19:44+00:00</expires>`+
		`<senderName>GOV.UK Emergency Alerts</senderName>`+
		`<headline>GOV.UK Emergency Alert</headline>`+
		"<description>  description\nwith\nnewlines</description>"+
		`<area>`+
		`<areaDesc>area-1</areaDesc>`+
		`<polygon>51.12,-1.2 51.12,1.2 51.74,1.2 51.74,-1.2 51.12,-1.2</polygon>`+
		`</area>`+
		`</info>`+
		`</alert>`, body)
}

func TestGenerateIBAGAlert(t *testing.T) {
	body, err := New().GenerateXMLBody(alertEvent("IBAG"))
	require.NoError(t, err)

	root := parse(t, body)
	assert.Equal(t, "IBAG_Alert_Attributes", root.Tag)
	assert.Equal(t, "00000074", root.SelectElement("IBAG_message_number").Text())
	info := root.SelectElement("IBAG_alert_info")
	require.NotNil(t, info)
	assert.Equal(t, "4378-CAT3-ENGLISH", info.SelectElement("IBAG_channel_category").Text())
	assert.Equal(t, "  description\nwith\nnewlines", info.SelectElement("IBAG_text_alert_message").Text())
	assert.True(t, strings.HasSuffix(body, "<IBAG_Digital_Signature/></IBAG_Alert_Attributes>"))
}

func TestGeneratorNow(t *testing.T) {
	mock := clock.NewMock()
	mock.Set(time.Date(2021, 2, 3, 14, 5, 42, 123456, time.FixedZone("BST", 3600)))
	generator := New(WithClock(mock))

	assert.Equal(t, "2021-02-03T13:05:42-00:00", generator.Now())
}

func TestGenerateLinkTest(t *testing.T) {
	mock := clock.NewMock()
	mock.Set(time.Date(2021, 2, 3, 14, 5, 42, 123456, time.UTC))
	generator := New(WithClock(mock))

	tt := []struct {
		desc     string
		format   string
		expected string
	}{
		{
			desc:   "cap",
			format: "cap",
			expected: `<alert xmlns="urn:oasis:names:tc:emergency:cap:1.2">` +
				`<identifier>ABC123</identifier>` +
				`<sender>broadcasts@notifications.service.gov.uk</sender>` +
				`<sent>2021-02-03T14:05:00+00:00</sent>` +
				`<status>Test</status>` +
				`<msgType>Alert</msgType>` +
				`<scope>Public</scope>` +
				`</alert>`,
		},
		{
			desc:   "ibag",
			format: "ibag",
			expected: `<IBAG_Alert_Attributes xmlns="ibag:1.0">` +
				`<IBAG_protocol_version>1.0</IBAG_protocol_version>` +
				`<IBAG_sending_gateway_id>broadcasts@notifications.service.gov.uk</IBAG_sending_gateway_id>` +
				`<IBAG_message_number>00000001</IBAG_message_number>` +
				`<IBAG_sent_date_time>2021-02-03T14:05:00+00:00</IBAG_sent_date_time>` +
				`<IBAG_status>System</IBAG_status>` +
				`<IBAG_message_type>Link Test</IBAG_message_type>` +
				`<IBAG_Digital_Signature/>` +
				`</IBAG_Alert_Attributes>`,
		},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			body, err := generator.GenerateXMLBody(alert.Event{
				Identifier:    "ABC123",
				MessageType:   "Test",
				MessageFormat: tc.format,
				MessageNumber: "00000001",
			})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, body)
		})
	}
}

func TestGenerateCancel(t *testing.T) {
	body, err := New().GenerateXMLBody(cancelEvent("cap"))
	require.NoError(t, err)
	root := parse(t, body)
	assert.Equal(t, "Cancel", root.SelectElement("msgType").Text())
	assert.Equal(t, "broadcasts@notifications.service.gov.uk,ABC123,2020-12-08 11:19:44.130585",
		root.SelectElement("references").Text())

	body, err = New().GenerateXMLBody(cancelEvent("ibag"))
	require.NoError(t, err)
	root = parse(t, body)
	assert.Equal(t, "Cancel", root.SelectElement("IBAG_message_type").Text())
	assert.Equal(t, "00000074", root.SelectElement("IBAG_referenced_message_number").Text())
	assert.Equal(t, "ABC123", root.SelectElement("IBAG_referenced_message_cap_identifier").Text())
}

func TestGenerateRejectsInvalidEvents(t *testing.T) {
	tt := []struct {
		desc     string
		modify   func(e *alert.Event)
		expected error
	}{
		{desc: "unknown format", modify: func(e *alert.Event) { e.MessageFormat = "cmas" }, expected: alert.ErrUnknownMessageFormat},
		{desc: "unknown type", modify: func(e *alert.Event) { e.MessageType = "notify" }, expected: alert.ErrUnknownMessageType},
		{desc: "update", modify: func(e *alert.Event) { e.MessageType = "update" }, expected: alert.ErrUnsupportedMessageType},
		{desc: "unknown channel", modify: func(e *alert.Event) { e.Channel = "extreme" }, expected: alert.ErrUnknownChannel},
		{desc: "missing description", modify: func(e *alert.Event) { e.Description = "" }, expected: alert.ErrMissingField},
		{desc: "missing message number", modify: func(e *alert.Event) { e.MessageNumber = "" }, expected: alert.ErrMissingField},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			event := alertEvent("ibag")
			tc.modify(&event)

			body, err := New().GenerateXMLBody(event)
			assert.ErrorIs(t, err, tc.expected)
			assert.ErrorIs(t, err, alert.ErrInvalidEvent)
			assert.Empty(t, body)
		})
	}
}

func TestChannelIsOnlyCheckedForAlerts(t *testing.T) {
	event := cancelEvent("cap")
	event.Channel = "extreme"

	_, err := New().GenerateXMLBody(event)
	assert.NoError(t, err)
}

func TestGenerateSignedCAP(t *testing.T) {
	signer, certPEM := newTestSigner(t)
	generator := New(WithSigner(signer))
	assert.True(t, generator.SigningEnabled())

	body, err := generator.GenerateXMLBody(alertEvent("cap"))
	require.NoError(t, err)

	root := parse(t, body)
	children := root.ChildElements()
	last := children[len(children)-1]
	assert.Equal(t, "Signature", last.Tag)
	assert.Equal(t, alert.SignatureNamespace, last.NamespaceURI())

	assert.NoError(t, xmlsig.Verify(root, certPEM))
}

func TestGenerateSignedIBAG(t *testing.T) {
	signer, certPEM := newTestSigner(t)
	generator := New(WithSigner(signer))

	for _, event := range []alert.Event{alertEvent("ibag"), cancelEvent("ibag")} {
		t.Run(event.MessageType, func(t *testing.T) {
			body, err := generator.GenerateXMLBody(event)
			require.NoError(t, err)

			root := parse(t, body)
			children := root.ChildElements()
			wrapper := children[len(children)-1]
			assert.Equal(t, "IBAG_Digital_Signature", wrapper.Tag)
			require.Len(t, wrapper.ChildElements(), 1)
			assert.Equal(t, "Signature", wrapper.ChildElements()[0].Tag)

			assert.NoError(t, xmlsig.Verify(root, certPEM))
		})
	}
}

func TestGenerateLogsBody(t *testing.T) {
	var out bytes.Buffer
	generator := New(WithLogger(zerolog.New(&out)))

	body, err := generator.GenerateXMLBody(cancelEvent("cap"))
	require.NoError(t, err)

	logged := out.String()
	assert.Contains(t, logged, `"level":"info"`)
	assert.Contains(t, logged, `"identifier":"DEF456"`)
	assert.Contains(t, logged, `"format":"CAP"`)
	assert.Contains(t, logged, "Body: <alert")
	assert.NotEmpty(t, body)
}

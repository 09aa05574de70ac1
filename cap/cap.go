// Package cap generates OASIS Common Alerting Protocol 1.2 messages.
package cap

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/eas-tools/alerts-utils/alert"
)

// Namespace of CAP 1.2 documents.
const Namespace = "urn:oasis:names:tc:emergency:cap:1.2"

// SenderName is shown to recipients as the originator of an alert.
const SenderName = "GOV.UK Emergency Alerts"

// Fixed values of the info block.
const (
	Category  = "Safety"
	Urgency   = "Expected"
	Severity  = "Severe"
	Certainty = "Likely"
)

// Event codes per channel.
const (
	EventRequiredMonthlyTest = "RMT"
	EventOperator            = "OPR"
	EventAlert               = "Alert"
	EventEmergencyAction     = "EAN"
)

// linkTestTimeLayout is ISO 8601 with a numeric zone offset, +00:00 for UTC.
const linkTestTimeLayout = "2006-01-02T15:04:05-07:00"

// AlertParams are the contents of an alert message.
type AlertParams struct {
	Identifier  string
	Headline    string
	Description string
	Areas       []alert.Area
	Sent        string
	Expires     string
	Language    string
	Channel     alert.Channel
	Web         string
}

// EventFor returns the CAP event code of the given channel.
func EventFor(channel alert.Channel) string {
	switch channel {
	case alert.OperatorChannel:
		return EventOperator
	case alert.SevereChannel:
		return EventAlert
	case alert.GovernmentChannel:
		return EventEmergencyAction
	default:
		return EventRequiredMonthlyTest
	}
}

func newEnvelope(identifier string, sent string, status string, msgType string) *etree.Element {
	result := alert.NewRoot("alert", Namespace)
	alert.SubElement(result, "identifier", identifier)
	alert.SubElement(result, "sender", alert.Sender)
	alert.SubElement(result, "sent", sent)
	alert.SubElement(result, "status", status)
	alert.SubElement(result, "msgType", msgType)
	alert.SubElement(result, "scope", "Public")
	return result
}

// GenerateLinkTest returns a test message that checks the link to the broadcast centre.
func GenerateLinkTest(identifier string, sent time.Time) *etree.Element {
	return newEnvelope(identifier, sent.Format(linkTestTimeLayout), "Test", "Alert")
}

// GenerateAlert returns an alert with a single info block.
func GenerateAlert(params AlertParams) *etree.Element {
	result := newEnvelope(params.Identifier, params.Sent, "Actual", "Alert")

	info := alert.SubElement(result, "info", "")
	alert.SubElement(info, "language", params.Language)
	alert.SubElement(info, "category", Category)
	alert.SubElement(info, "event", EventFor(params.Channel))
	alert.SubElement(info, "urgency", Urgency)
	alert.SubElement(info, "severity", Severity)
	alert.SubElement(info, "certainty", Certainty)
	alert.SubElement(info, "expires", params.Expires)
	alert.SubElement(info, "senderName", SenderName)
	alert.SubElement(info, "headline", params.Headline)
	alert.SubElement(info, "description", params.Description)
	if params.Web != "" {
		alert.SubElement(info, "web", params.Web)
	}

	for i, a := range params.Areas {
		area := alert.SubElement(info, "area", "")
		alert.SubElement(area, "areaDesc", fmt.Sprintf("area-%d", i+1))
		alert.SubElement(area, "polygon", alert.FormatPolygon(a.Polygon))
	}

	return result
}

// GenerateCancel returns a message that cancels all the referenced messages.
func GenerateCancel(identifier string, sent string, references []alert.Reference) *etree.Element {
	result := newEnvelope(identifier, sent, "Actual", "Cancel")
	alert.SubElement(result, "references", FormatReferences(references))
	return result
}

// FormatReferences renders the references as space separated "sender,identifier,sent" triples.
func FormatReferences(references []alert.Reference) string {
	triples := make([]string, 0, len(references))
	for _, reference := range references {
		triples = append(triples, fmt.Sprintf("%s,%s,%s", alert.Sender, reference.MessageID, reference.Sent))
	}
	return strings.Join(triples, " ")
}

// FormatTime renders a UTC time as YYYY-MM-DDThh:mm:ss-00:00, as defined in section 3.3.2 of CAP 1.2.
// The time is not converted.
func FormatTime(t time.Time) string {
	return t.Format("2006-01-02T15:04:05") + "-00:00"
}

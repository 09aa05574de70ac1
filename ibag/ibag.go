// Package ibag generates IBAG 1.0 messages, the Integrated Broadcast Alert Gateway format of the
// cell broadcast centre.
package ibag

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/eas-tools/alerts-utils/alert"
)

// Namespace of IBAG 1.0 documents.
const Namespace = "ibag:1.0"

// ProtocolVersion of the generated messages.
const ProtocolVersion = "1.0"

// CAPAlertURI is the public location of the alert.
const CAPAlertURI = "https://www.gov.uk/alerts"

// Fixed values of the alert info block.
const (
	Category  = "Safety"
	EventCode = "LAE"
	Severity  = "Severe"
	Urgency   = "Expected"
	Certainty = "Likely"
)

// Channel categories, the cell broadcast channel and the language of its messages.
const (
	CategoryRequiredMonthlyTest = "4380-CAT5-ENGLISH"
	CategoryOperator            = "4382-CAT7-ENGLISH"
	CategorySevere              = "4378-CAT3-ENGLISH"
	CategoryGovernment          = "4370-CAT1-ENGLISH"
)

// SignatureTag is the element that holds the digital signature of a message.
const SignatureTag = "IBAG_Digital_Signature"

const linkTestTimeLayout = "2006-01-02T15:04:05-07:00"

// ErrMissingSignature is returned by RelocateSignature if the root carries no signature.
var ErrMissingSignature = errors.New("no signature to relocate")

// AlertParams are the contents of an alert message.
type AlertParams struct {
	MessageNumber string
	Identifier    string
	Headline      string
	Description   string
	Areas         []alert.Area
	Sent          string
	Expires       string
	Language      string
	Channel       alert.Channel
}

// ChannelCategoryFor returns the IBAG channel category of the given channel.
func ChannelCategoryFor(channel alert.Channel) string {
	switch channel {
	case alert.OperatorChannel:
		return CategoryOperator
	case alert.SevereChannel:
		return CategorySevere
	case alert.GovernmentChannel:
		return CategoryGovernment
	default:
		return CategoryRequiredMonthlyTest
	}
}

func newEnvelope(messageNumber string) *etree.Element {
	result := alert.NewRoot("IBAG_Alert_Attributes", Namespace)
	alert.SubElement(result, "IBAG_protocol_version", ProtocolVersion)
	alert.SubElement(result, "IBAG_sending_gateway_id", alert.Sender)
	alert.SubElement(result, "IBAG_message_number", messageNumber)
	return result
}

// GenerateLinkTest returns a test message that checks the link to the broadcast centre.
// The identifier is not part of IBAG link tests.
func GenerateLinkTest(messageNumber string, identifier string, sent time.Time) *etree.Element {
	result := newEnvelope(messageNumber)
	alert.SubElement(result, "IBAG_sent_date_time", sent.Format(linkTestTimeLayout))
	alert.SubElement(result, "IBAG_status", "System")
	alert.SubElement(result, "IBAG_message_type", "Link Test")
	alert.SubElement(result, SignatureTag, "")
	return result
}

// GenerateAlert returns an alert message.
func GenerateAlert(params AlertParams) *etree.Element {
	result := newEnvelope(params.MessageNumber)
	alert.SubElement(result, "IBAG_sender", alert.Sender)
	alert.SubElement(result, "IBAG_sent_date_time", params.Sent)
	alert.SubElement(result, "IBAG_status", "Actual")
	alert.SubElement(result, "IBAG_message_type", "Alert")
	alert.SubElement(result, "IBAG_cap_alert_uri", CAPAlertURI)
	alert.SubElement(result, "IBAG_cap_identifier", params.Identifier)
	alert.SubElement(result, "IBAG_cap_sent_date_time", params.Sent)

	info := alert.SubElement(result, "IBAG_alert_info", "")
	alert.SubElement(info, "IBAG_category", Category)
	alert.SubElement(info, "IBAG_event_code", EventCode)
	alert.SubElement(info, "IBAG_severity", Severity)
	alert.SubElement(info, "IBAG_urgency", Urgency)
	alert.SubElement(info, "IBAG_certainty", Certainty)
	alert.SubElement(info, "IBAG_expires_date_time", params.Expires)
	alert.SubElement(info, "IBAG_text_language", params.Language)
	// octets, not characters
	alert.SubElement(info, "IBAG_text_alert_message_length", strconv.Itoa(len(params.Description)))
	alert.SubElement(info, "IBAG_text_alert_message", params.Description)
	alert.SubElement(info, "IBAG_channel_category", ChannelCategoryFor(params.Channel))

	for i, a := range params.Areas {
		area := alert.SubElement(info, "IBAG_Alert_Area", "")
		alert.SubElement(area, "IBAG_area_description", fmt.Sprintf("area-%d", i+1))
		alert.SubElement(area, "IBAG_polygon", alert.FormatPolygon(a.Polygon))
	}

	alert.SubElement(result, SignatureTag, "")
	return result
}

// GenerateCancel returns a message that cancels the last of the referenced messages.
func GenerateCancel(messageNumber string, identifier string, references []alert.Reference, sent string) (*etree.Element, error) {
	last, ok := alert.LastReference(references)
	if !ok {
		return nil, alert.MissingField("references")
	}

	result := newEnvelope(messageNumber)
	alert.SubElement(result, "IBAG_referenced_message_number", last.MessageNumber)
	alert.SubElement(result, "IBAG_referenced_message_cap_identifier", last.MessageID)
	alert.SubElement(result, "IBAG_sender", alert.Sender)
	alert.SubElement(result, "IBAG_sent_date_time", sent)
	alert.SubElement(result, "IBAG_status", "Actual")
	alert.SubElement(result, "IBAG_message_type", "Cancel")
	alert.SubElement(result, "IBAG_cap_alert_uri", CAPAlertURI)
	alert.SubElement(result, "IBAG_cap_identifier", identifier)
	alert.SubElement(result, "IBAG_cap_sent_date_time", sent)
	alert.SubElement(result, SignatureTag, "")
	return result, nil
}

// RelocateSignature moves the enveloped signature of the root into its IBAG_Digital_Signature
// element. The signature stays valid, it was computed over the message with the empty element.
func RelocateSignature(root *etree.Element) error {
	index := -1
	for i, token := range root.Child {
		child, ok := token.(*etree.Element)
		if ok && child.Tag == "Signature" && child.NamespaceURI() == alert.SignatureNamespace {
			index = i
			break
		}
	}
	if index < 0 {
		return ErrMissingSignature
	}

	wrapper := root.SelectElement(SignatureTag)
	if wrapper == nil {
		return fmt.Errorf("%s element missing", SignatureTag)
	}

	signature := root.RemoveChildAt(index)
	wrapper.AddChild(signature)
	return nil
}

package zendesk

import "fmt"

// Ticket priorities.
const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityNormal = "normal"
	PriorityLow    = "low"
)

// Ticket types.
const (
	TypeProblem  = "problem"
	TypeIncident = "incident"
	TypeQuestion = "question"
	TypeTask     = "task"
)

// Tags that route a ticket to its notification targets.
const (
	TagSlackDev          = "emergency_alerts_send_slack_dev"
	TagSlackTest         = "emergency_alerts_send_slack_test"
	TagSlackSupport      = "emergency_alerts_send_slack_support"
	TagSlackPipelines    = "emergency_alerts_send_slack_pipelines"
	TagEmailTest         = "emergency_alerts_send_email_test"
	TagEmailGroupMailbox = "emergency_alerts_send_email_project"
	TagEmailSitcen       = "emergency_alerts_send_email_sitcen"
	TagPagerDuty         = "emergency_alerts_send_pagerduty"
)

// Every ticket formatted for Slack or email recipients carries the base tags.
var (
	BaseTags = []string{"emergency_alerts_new_alarm"}
	TagsP2   = append(append([]string{}, BaseTags...), TagSlackDev, TagEmailGroupMailbox)
	TagsP1   = append(append([]string{}, TagsP2...), TagPagerDuty)
)

const (
	// 3rd Line--Emergency Alerts Support
	EASGroupID = 21842358
	// GDS
	EASOrgID        = 21891972
	EASTicketFormID = 9450316961820
)

const noNameSupplied = "(no name supplied)"

// Custom field ids of the EAS ticket form.
const (
	fieldTicketType       = "9450265441308"
	fieldCategories       = "9450275731228"
	fieldOrgID            = "9450285728028"
	fieldOrgType          = "9450288116380"
	fieldServiceID        = "9450320852636"
	fieldStatus           = "12811397846172"
	fieldContentDisplay   = "12811367206428"
	fieldRequesterDisplay = "12811389347356"
)

// EASSupportTicket is a support request raised for the emergency alerts team.
type EASSupportTicket struct {
	Subject string
	Message string
	Type    string
	P1      bool
	// Overrides the priority derived from P1.
	CustomPriority string

	UserName  string
	UserEmail string
	// The comment is private when set.
	HideMessageFromRequester bool
	TechnicalTicket          bool
	Categories               []string
	OrgID                    string
	OrgType                  string
	ServiceID                string
	EmailCCs                 []string
	MessageAsHTML            bool
}

// Comment is the first comment of a ticket, plain or HTML. It is public unless Public is false.
type Comment struct {
	Body     string `json:"body,omitempty"`
	HTMLBody string `json:"html_body,omitempty"`
	Public   *bool  `json:"public,omitempty"`
}

// CustomField sets a field of the ticket form.
type CustomField struct {
	ID    string `json:"id"`
	Value any    `json:"value"`
}

// EmailCC adds an address to the copies of a ticket.
type EmailCC struct {
	UserEmail string `json:"user_email"`
	Action    string `json:"action"`
}

// Requester is the user a ticket is raised for.
type Requester struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Ticket is a ticket as the Zendesk API expects it.
type Ticket struct {
	Subject        string        `json:"subject"`
	Comment        Comment       `json:"comment"`
	GroupID        int64         `json:"group_id"`
	OrganizationID int64         `json:"organization_id"`
	TicketFormID   int64         `json:"ticket_form_id"`
	Priority       string        `json:"priority"`
	Tags           []string      `json:"tags"`
	Type           string        `json:"type"`
	CustomFields   []CustomField `json:"custom_fields"`
	EmailCCs       []EmailCC     `json:"email_ccs,omitempty"`
	Requester      *Requester    `json:"requester,omitempty"`
}

// RequestData is the JSON body that creates a ticket.
type RequestData struct {
	Ticket Ticket `json:"ticket"`
}

// Priority is urgent for P1 tickets and normal otherwise, unless a custom priority is set.
func (t EASSupportTicket) Priority() string {
	switch {
	case t.CustomPriority != "":
		return t.CustomPriority
	case t.P1:
		return PriorityUrgent
	default:
		return PriorityNormal
	}
}

func (t EASSupportTicket) tags() []string {
	if t.P1 {
		return append([]string{}, TagsP1...)
	}
	return append([]string{}, TagsP2...)
}

func (t EASSupportTicket) requesterName() string {
	if t.UserName == "" {
		return noNameSupplied
	}
	return t.UserName
}

// RequestData returns the payload that creates the ticket.
func (t EASSupportTicket) RequestData() RequestData {
	public := !t.HideMessageFromRequester
	comment := Comment{Public: &public}
	if t.MessageAsHTML {
		comment.HTMLBody = t.Message
	} else {
		comment.Body = t.Message
	}

	ticket := Ticket{
		Subject:        t.Subject,
		Comment:        comment,
		GroupID:        EASGroupID,
		OrganizationID: EASOrgID,
		TicketFormID:   EASTicketFormID,
		Priority:       t.Priority(),
		Tags:           t.tags(),
		Type:           t.Type,
		CustomFields:   t.customFields(),
	}
	for _, email := range t.EmailCCs {
		ticket.EmailCCs = append(ticket.EmailCCs, EmailCC{UserEmail: email, Action: "put"})
	}
	if t.UserEmail != "" {
		ticket.Requester = &Requester{Email: t.UserEmail, Name: t.requesterName()}
	}
	return RequestData{Ticket: ticket}
}

func (t EASSupportTicket) customFields() []CustomField {
	technical := "emergency_alerts_ticket_type_non_technical"
	if t.TechnicalTicket {
		technical = "emergency_alerts_ticket_type_technical"
	}
	status := "info"
	if t.P1 {
		status = "alarm"
	}
	categories := t.Categories
	if categories == nil {
		categories = []string{}
	}

	return []CustomField{
		{ID: fieldTicketType, Value: technical},
		{ID: fieldCategories, Value: categories},
		{ID: fieldOrgID, Value: nullable(t.OrgID)},
		{ID: fieldOrgType, Value: nullable(prefixed("emergency_alerts_org_type_", t.OrgType))},
		{ID: fieldServiceID, Value: nullable(t.ServiceID)},
		{ID: fieldStatus, Value: status},
		{ID: fieldContentDisplay, Value: fmt.Sprintf("*Content*: %s", t.Message)},
		{ID: fieldRequesterDisplay, Value: fmt.Sprintf("*Requester*: %s", t.requesterName())},
	}
}

func prefixed(prefix, s string) string {
	if s == "" {
		return ""
	}
	return prefix + s
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

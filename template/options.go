package template

type options struct {
	values        map[string]any
	prefix        string
	showPrefix    bool
	sender        string
	showSender    bool
	showRecipient bool
	downgrade     bool
	redact        bool
}

func defaultOptions() options {
	return options{
		showPrefix: true,
		downgrade:  true,
	}
}

// Option configures a template.
type Option func(*options)

// WithValues sets the personalisation values.
func WithValues(values map[string]any) Option {
	return func(o *options) {
		o.values = values
	}
}

// WithPrefix sets the prefix, usually the service name, that is put in front of SMS content.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// ShowPrefix defines if the prefix is used. It is used by default.
func ShowPrefix(show bool) Option {
	return func(o *options) {
		o.showPrefix = show
	}
}

// WithSender sets the sender shown in SMS previews.
func WithSender(sender string) Option {
	return func(o *options) {
		o.sender = sender
	}
}

// ShowSender shows the sender in previews.
func ShowSender(show bool) Option {
	return func(o *options) {
		o.showSender = show
	}
}

// ShowRecipient shows the ((phone number)) value in previews.
func ShowRecipient(show bool) Option {
	return func(o *options) {
		o.showRecipient = show
	}
}

// Downgrade defines if previews replace characters that cannot be sent. They do by default.
func Downgrade(downgrade bool) Option {
	return func(o *options) {
		o.downgrade = downgrade
	}
}

// RedactMissing hides the names of placeholders without values.
func RedactMissing(redact bool) Option {
	return func(o *options) {
		o.redact = redact
	}
}

package page

import "time"

type FormState int

const (
	FormIdle FormState = iota
	FormSending
	FormSent
)

const (
	SendingDuration = 1500 * time.Millisecond
	SentDuration    = 2 * time.Second
)

// Form is the contact form: focusable fields and a submit button that walks
// Idle -> Sending -> Sent -> Idle, clearing the fields at the end.
type Form struct {
	Fields  []string
	Values  map[string]string
	focused string
	state   FormState
	left    time.Duration
}

func NewForm(fields ...string) *Form {
	return &Form{Fields: fields, Values: make(map[string]string, len(fields))}
}

func (f *Form) State() FormState { return f.state }

// Focus lifts field name; an unknown name blurs every field.
func (f *Form) Focus(name string) {
	f.focused = ""
	for _, fl := range f.Fields {
		if fl == name {
			f.focused = name
		}
	}
}

func (f *Form) Focused() string { return f.focused }

func (f *Form) Set(name, value string) { f.Values[name] = value }

// Submit starts sending. It is ignored while a submission is in flight.
func (f *Form) Submit() bool {
	if f.state != FormIdle {
		return false
	}
	f.state = FormSending
	f.left = SendingDuration
	return true
}

func (f *Form) Advance(dt time.Duration) {
	for dt > 0 && f.state != FormIdle {
		if dt < f.left {
			f.left -= dt
			return
		}
		dt -= f.left
		switch f.state {
		case FormSending:
			f.state = FormSent
			f.left = SentDuration
		case FormSent:
			f.state = FormIdle
			f.left = 0
			f.reset()
		}
	}
}

func (f *Form) reset() {
	f.Values = make(map[string]string, len(f.Fields))
	f.focused = ""
}

// Button is the submit button label for the current state.
func (f *Form) Button() string {
	switch f.state {
	case FormSending:
		return "Sending..."
	case FormSent:
		return "Sent!"
	}
	return "Send message"
}

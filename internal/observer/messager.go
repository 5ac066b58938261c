package observer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// listener prints a notification line per update.
type listener struct {
	id     string
	out    io.Writer
	format string
}

func newListener(id string, out io.Writer, format string) listener {
	if id == "" {
		id = NewSubscriberID()
	}
	if out == nil {
		out = io.Discard
	}
	return listener{id: id, out: out, format: format}
}

// ID implements Subscriber.
func (l listener) ID() string { return l.id }

// Update implements Subscriber.
func (l listener) Update(data any) error {
	_, err := fmt.Fprintf(l.out, l.format, data)
	return err
}

// EmailListener reports e-mail notifications.
type EmailListener struct{ listener }

// NewEmailListener creates an e-mail listener. An empty id is replaced by a
// generated one.
func NewEmailListener(id string, out io.Writer) *EmailListener {
	return &EmailListener{newListener(id, out, "E-mail notification: %v.\n")}
}

// SMSListener reports SMS notifications.
type SMSListener struct{ listener }

// NewSMSListener creates an SMS listener. An empty id is replaced by a
// generated one.
func NewSMSListener(id string, out io.Writer) *SMSListener {
	return &SMSListener{newListener(id, out, "SMS notification: %v.\n")}
}

// Messager sends messages and publishes an event for each.
type Messager struct {
	Events *Publisher
	out    io.Writer
}

// NewMessager creates a messager printing to out.
func NewMessager(out io.Writer) *Messager {
	if out == nil {
		out = io.Discard
	}
	return &Messager{Events: NewPublisher(), out: out}
}

// SendEmail reports the e-mail, then notifies e-mail subscribers.
func (m *Messager) SendEmail(email string) error {
	if _, err := fmt.Fprintf(m.out, "Sending e-mail: %s\n", email); err != nil {
		return err
	}
	return m.Events.Notify(EventEmail, email)
}

// SendSMS reports the SMS, then notifies SMS subscribers.
func (m *Messager) SendSMS(sms string) error {
	if _, err := fmt.Fprintf(m.out, "Sending SMS: %s\n", sms); err != nil {
		return err
	}
	return m.Events.Notify(EventSMS, sms)
}

// Demo subscribes one listener per event type and sends one of each.
type Demo struct {
	logger *slog.Logger
}

// NewDemo creates the observer demo.
func NewDemo(logger *slog.Logger) *Demo {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Demo{logger: logger}
}

// Name implements the catalog demo contract.
func (d *Demo) Name() string {
	return "Observer"
}

// Run executes the demo.
func (d *Demo) Run(_ context.Context, out io.Writer) error {
	m := NewMessager(out)

	email := NewEmailListener("EmailListener1", out)
	sms := NewSMSListener("SMSListener1", out)
	if err := m.Events.Subscribe(EventEmail, email); err != nil {
		return err
	}
	if err := m.Events.Subscribe(EventSMS, sms); err != nil {
		return err
	}
	d.logger.Debug("listeners subscribed", "email", email.ID(), "sms", sms.ID())

	if err := m.SendEmail("EmailTest"); err != nil {
		return fmt.Errorf("send e-mail: %w", err)
	}
	if err := m.SendSMS("SMSTest"); err != nil {
		return fmt.Errorf("send SMS: %w", err)
	}
	return nil
}

// Package decorator stacks notification services around a base notifier.
//
// Each decorator delegates to the notifier it wraps before reporting its own
// delivery, so services report in the order they were wrapped.
package decorator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Notifier sends a message.
type Notifier interface {
	Send(msg string) error
}

// Base is the innermost notifier. It sends nothing.
type Base struct{}

// Send implements Notifier.
func (Base) Send(string) error { return nil }

// service is a decorator that prints one line per delivered message.
type service struct {
	next   Notifier
	out    io.Writer
	format string
}

func newService(next Notifier, out io.Writer, format string) *service {
	if next == nil {
		next = Base{}
	}
	if out == nil {
		out = io.Discard
	}
	return &service{next: next, out: out, format: format}
}

// Send delegates to the wrapped notifier, then reports the delivery.
func (s *service) Send(msg string) error {
	if err := s.next.Send(msg); err != nil {
		return err
	}
	_, err := fmt.Fprintf(s.out, s.format, msg)
	return err
}

// SMS sends text messages.
type SMS struct{ *service }

// NewSMS wraps next with SMS delivery.
func NewSMS(next Notifier, out io.Writer) *SMS {
	return &SMS{newService(next, out, "SMS sent: %s\n")}
}

// Facebook posts Facebook messages.
type Facebook struct{ *service }

// NewFacebook wraps next with Facebook delivery.
func NewFacebook(next Notifier, out io.Writer) *Facebook {
	return &Facebook{newService(next, out, "Facebook message sent: %s\n")}
}

// Slack posts Slack messages.
type Slack struct{ *service }

// NewSlack wraps next with Slack delivery.
func NewSlack(next Notifier, out io.Writer) *Slack {
	return &Slack{newService(next, out, "Slack message sent: %s\n")}
}

// Services selects which decorators Build applies.
type Services struct {
	SMS      bool
	Facebook bool
	Slack    bool
}

// DefaultServices enables SMS and Slack.
func DefaultServices() Services {
	return Services{SMS: true, Slack: true}
}

// Enabled returns the names of the enabled services in wrapping order.
func (s Services) Enabled() []string {
	var names []string
	if s.SMS {
		names = append(names, "SMS")
	}
	if s.Facebook {
		names = append(names, "Facebook")
	}
	if s.Slack {
		names = append(names, "Slack")
	}
	return names
}

// Build wraps base with the enabled services in the order SMS, Facebook,
// Slack. A nil base means Base.
func Build(base Notifier, services Services, out io.Writer) Notifier {
	n := base
	if n == nil {
		n = Base{}
	}
	if services.SMS {
		n = NewSMS(n, out)
	}
	if services.Facebook {
		n = NewFacebook(n, out)
	}
	if services.Slack {
		n = NewSlack(n, out)
	}
	return n
}

// Demo sends one message through the configured services.
type Demo struct {
	message  string
	services Services
	logger   *slog.Logger
}

// NewDemo creates the decorator demo.
func NewDemo(message string, services Services, logger *slog.Logger) *Demo {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Demo{message: message, services: services, logger: logger}
}

// Name implements the catalog demo contract.
func (d *Demo) Name() string {
	return "Decorator"
}

// Run executes the demo.
func (d *Demo) Run(_ context.Context, out io.Writer) error {
	d.logger.Debug("building notifier", "services", d.services.Enabled())
	if err := Build(Base{}, d.services, out).Send(d.message); err != nil {
		return fmt.Errorf("send %q: %w", d.message, err)
	}
	return nil
}

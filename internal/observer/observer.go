// Package observer delivers messager events to subscribed listeners.
package observer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Sentinel errors for the publisher.
var (
	// ErrNilSubscriber is returned when a nil subscriber is provided.
	ErrNilSubscriber = errors.New("subscriber cannot be nil")

	// ErrUnknownEventType is returned for event types outside EventTypes.
	ErrUnknownEventType = errors.New("unknown event type")

	// ErrSubscriberPanic is returned when a subscriber panics.
	ErrSubscriberPanic = errors.New("subscriber panicked")
)

// EventType identifies a kind of message.
type EventType string

const (
	// EventEmail is published for every sent e-mail.
	EventEmail EventType = "Email"
	// EventSMS is published for every sent SMS.
	EventSMS EventType = "SMS"
)

// EventTypes returns every known event type.
func EventTypes() []EventType {
	return []EventType{EventEmail, EventSMS}
}

func (t EventType) valid() bool {
	return t == EventEmail || t == EventSMS
}

// Subscriber receives event data.
type Subscriber interface {
	// ID returns the identifier the subscriber is registered under.
	ID() string
	// Update handles one event.
	Update(data any) error
}

// NewSubscriberID returns a random subscriber identifier.
func NewSubscriberID() string {
	return uuid.NewString()
}

// SubscriberError wraps a failure from one subscriber.
type SubscriberError struct {
	SubscriberID string
	EventType    EventType
	Err          error
}

// Error implements the error interface.
func (e *SubscriberError) Error() string {
	return fmt.Sprintf("subscriber %s on %s: %v", e.SubscriberID, e.EventType, e.Err)
}

// Unwrap returns the underlying error.
func (e *SubscriberError) Unwrap() error {
	return e.Err
}

// Publisher keeps subscribers per event type in subscription order.
// It is safe for concurrent use.
type Publisher struct {
	mu          sync.RWMutex
	subscribers map[EventType][]Subscriber
}

// NewPublisher creates a publisher with no subscribers.
func NewPublisher() *Publisher {
	p := &Publisher{subscribers: make(map[EventType][]Subscriber)}
	for _, t := range EventTypes() {
		p.subscribers[t] = nil
	}
	return p
}

// Subscribe registers s for t. A subscriber with the same ID replaces the
// existing one and keeps its position.
func (p *Publisher) Subscribe(t EventType, s Subscriber) error {
	if s == nil {
		return ErrNilSubscriber
	}
	if !t.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownEventType, t)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	subs := p.subscribers[t]
	for i, existing := range subs {
		if existing.ID() == s.ID() {
			subs[i] = s
			return nil
		}
	}
	p.subscribers[t] = append(subs, s)
	return nil
}

// Unsubscribe removes the subscriber with s's ID from t. It reports whether
// a subscriber was removed.
func (p *Publisher) Unsubscribe(t EventType, s Subscriber) bool {
	if s == nil {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	subs := p.subscribers[t]
	for i, existing := range subs {
		if existing.ID() == s.ID() {
			p.subscribers[t] = append(subs[:i:i], subs[i+1:]...)
			return true
		}
	}
	return false
}

// Subscribers returns the IDs subscribed to t in notification order.
func (p *Publisher) Subscribers(t EventType) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ids := make([]string, 0, len(p.subscribers[t]))
	for _, s := range p.subscribers[t] {
		ids = append(ids, s.ID())
	}
	return ids
}

// Notify calls Update on every subscriber of t in subscription order. A
// failing or panicking subscriber does not stop delivery to the rest; all
// failures are returned joined.
func (p *Publisher) Notify(t EventType, data any) error {
	if !t.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownEventType, t)
	}

	p.mu.RLock()
	subs := append([]Subscriber(nil), p.subscribers[t]...)
	p.mu.RUnlock()

	var errs []error
	for _, s := range subs {
		if err := safeUpdate(s, data); err != nil {
			errs = append(errs, &SubscriberError{SubscriberID: s.ID(), EventType: t, Err: err})
		}
	}
	return errors.Join(errs...)
}

func safeUpdate(s Subscriber, data any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSubscriberPanic, r)
		}
	}()
	return s.Update(data)
}

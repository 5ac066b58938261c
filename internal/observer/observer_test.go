package observer

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubscriber struct {
	id  string
	log *[]string
	err error
}

func (r *recordingSubscriber) ID() string { return r.id }

func (r *recordingSubscriber) Update(data any) error {
	*r.log = append(*r.log, r.id+":"+data.(string))
	return r.err
}

type panickingSubscriber struct{}

func (panickingSubscriber) ID() string { return "panics" }
func (panickingSubscriber) Update(any) error { panic("boom") }

func TestPublisherOrderAndReplace(t *testing.T) {
	var log []string
	p := NewPublisher()

	require.NoError(t, p.Subscribe(EventEmail, &recordingSubscriber{id: "a", log: &log}))
	require.NoError(t, p.Subscribe(EventEmail, &recordingSubscriber{id: "b", log: &log}))
	replacement := &recordingSubscriber{id: "a", log: &log}
	require.NoError(t, p.Subscribe(EventEmail, replacement))

	assert.Equal(t, []string{"a", "b"}, p.Subscribers(EventEmail))
	assert.Empty(t, p.Subscribers(EventSMS))

	require.NoError(t, p.Notify(EventEmail, "x"))
	assert.Equal(t, []string{"a:x", "b:x"}, log)
}

func TestPublisherUnsubscribe(t *testing.T) {
	var log []string
	p := NewPublisher()
	a := &recordingSubscriber{id: "a", log: &log}
	b := &recordingSubscriber{id: "b", log: &log}
	require.NoError(t, p.Subscribe(EventSMS, a))
	require.NoError(t, p.Subscribe(EventSMS, b))

	assert.True(t, p.Unsubscribe(EventSMS, a))
	assert.False(t, p.Unsubscribe(EventSMS, a))
	assert.False(t, p.Unsubscribe(EventEmail, b))
	assert.False(t, p.Unsubscribe(EventSMS, nil))

	require.NoError(t, p.Notify(EventSMS, "y"))
	assert.Equal(t, []string{"b:y"}, log)
}

func TestPublisherErrors(t *testing.T) {
	p := NewPublisher()

	assert.ErrorIs(t, p.Subscribe(EventEmail, nil), ErrNilSubscriber)
	assert.ErrorIs(t, p.Subscribe("Fax", NewEmailListener("x", nil)), ErrUnknownEventType)
	assert.ErrorIs(t, p.Notify("Fax", "x"), ErrUnknownEventType)
}

func TestNotifyContainsFailures(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	p := NewPublisher()
	require.NoError(t, p.Subscribe(EventEmail, &recordingSubscriber{id: "fails", log: &log, err: boom}))
	require.NoError(t, p.Subscribe(EventEmail, panickingSubscriber{}))
	require.NoError(t, p.Subscribe(EventEmail, &recordingSubscriber{id: "ok", log: &log}))

	err := p.Notify(EventEmail, "z")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, ErrSubscriberPanic)

	var se *SubscriberError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "fails", se.SubscriberID)
	assert.Equal(t, EventEmail, se.EventType)

	assert.Equal(t, []string{"fails:z", "ok:z"}, log, "later subscribers still notified")
}

func TestPublisherConcurrent(t *testing.T) {
	p := NewPublisher()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := NewSMSListener("", nil)
			_ = p.Subscribe(EventSMS, l)
			_ = p.Notify(EventSMS, "c")
		}()
	}
	wg.Wait()
	assert.Len(t, p.Subscribers(EventSMS), 20)
}

func TestListeners(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewEmailListener("e", &buf).Update("hello"))
	require.NoError(t, NewSMSListener("s", &buf).Update("hi"))
	assert.Equal(t, "E-mail notification: hello.\nSMS notification: hi.\n", buf.String())

	generated := NewEmailListener("", nil)
	_, err := uuid.Parse(generated.ID())
	assert.NoError(t, err, "empty id is replaced by a uuid")
	assert.NotEqual(t, generated.ID(), NewSMSListener("", nil).ID())
}

func TestMessager(t *testing.T) {
	var buf bytes.Buffer
	m := NewMessager(&buf)

	require.NoError(t, m.SendEmail("unheard"))
	require.NoError(t, m.Events.Subscribe(EventEmail, NewEmailListener("e", &buf)))
	require.NoError(t, m.SendEmail("heard"))
	require.NoError(t, m.SendSMS("nobody"))

	assert.Equal(t,
		"Sending e-mail: unheard\n"+
			"Sending e-mail: heard\n"+
			"E-mail notification: heard.\n"+
			"Sending SMS: nobody\n",
		buf.String())
}

func TestDemo(t *testing.T) {
	var buf bytes.Buffer
	d := NewDemo(nil)
	assert.Equal(t, "Observer", d.Name())

	require.NoError(t, d.Run(context.Background(), &buf))
	assert.Equal(t,
		"Sending e-mail: EmailTest\n"+
			"E-mail notification: EmailTest.\n"+
			"Sending SMS: SMSTest\n"+
			"SMS notification: SMSTest.\n",
		buf.String())
}

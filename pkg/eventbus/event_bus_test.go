package eventbus

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

type roleCreated struct {
	name string
}

type userCreated struct {
	email string
}

func newTestPublisher() (EventBus, *bytes.Buffer) {
	logBuffer := &bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(logBuffer)
	log.SetLevel(logrus.WarnLevel)
	return NewEventPublisher(log), logBuffer
}

func TestPublisher_Publish(t *testing.T) {
	publisher, _ := newTestPublisher()
	var got string
	publisher.Subscribe(func(e roleCreated) {
		got = e.name
	})
	publisher.Publish(roleCreated{name: "administrator"})
	if got != "administrator" {
		t.Errorf("expected: %v, got: %v", "administrator", got)
	}
}

func TestPublisher_NoMatchingSubscribers(t *testing.T) {
	publisher, logBuffer := newTestPublisher()
	publisher.Subscribe(func(e roleCreated) {
		t.Error("should not be called")
	})
	publisher.Publish(userCreated{email: "a@b.com"})

	if output := logBuffer.String(); output == "" {
		t.Error("should have logged")
	} else if !strings.Contains(output, "no matching subscribers") {
		t.Errorf("should have contained no matching subscribers but got: %q", output)
	}
}

func TestPublisher_PanickingSubscriberIsolated(t *testing.T) {
	publisher, logBuffer := newTestPublisher()
	called := false
	publisher.Subscribe(func(e roleCreated) {
		panic("boom")
	})
	publisher.Subscribe(func(e roleCreated) {
		called = true
	})
	publisher.Publish(roleCreated{name: "viewer"})

	if !called {
		t.Error("surviving subscriber should still be called")
	}
	if !strings.Contains(logBuffer.String(), "panicked") {
		t.Errorf("panic should be logged, got: %q", logBuffer.String())
	}
}

func TestPublisher_Unsubscribe(t *testing.T) {
	publisher, logBuffer := newTestPublisher()
	handler := func(e roleCreated) {
		t.Error("should not be called after unsubscribe")
	}
	publisher.Subscribe(handler)
	if publisher.SubscribersCount() != 1 {
		t.Errorf("expected 1 subscriber, got %d", publisher.SubscribersCount())
	}
	publisher.Unsubscribe(handler)
	if publisher.SubscribersCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", publisher.SubscribersCount())
	}
	publisher.Publish(roleCreated{name: "developer"})
	if !strings.Contains(logBuffer.String(), "no matching subscribers") {
		t.Error("publish after unsubscribe should report no subscribers")
	}
}

func TestPublisher_Clear(t *testing.T) {
	publisher, _ := newTestPublisher()
	publisher.Subscribe(func(e roleCreated) {})
	publisher.Subscribe(func(e userCreated) {})
	publisher.Clear()
	if publisher.SubscribersCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", publisher.SubscribersCount())
	}
}

func TestPublisher_PublishE(t *testing.T) {
	publisher, _ := newTestPublisher()
	bus, ok := publisher.(EventBusWithError)
	if !ok {
		t.Fatal("publisher should support PublishE")
	}

	if err := bus.PublishE(roleCreated{name: "viewer"}); !errors.Is(err, ErrNoSubscribers) {
		t.Errorf("expected ErrNoSubscribers, got: %v", err)
	}

	publisher.Subscribe(func(e roleCreated) error {
		if e.name == "bad" {
			return errHandler
		}
		return nil
	})

	if err := bus.PublishE(roleCreated{name: "good"}); err != nil {
		t.Errorf("expected nil, got: %v", err)
	}
	if err := bus.PublishE(roleCreated{name: "bad"}); err == nil || !strings.Contains(err.Error(), "handler failed") {
		t.Errorf("expected handler error, got: %v", err)
	}

	publisher.Subscribe(func(e userCreated) string { return "" })
	if err := bus.PublishE(userCreated{email: "a@b.com"}); err == nil || !strings.Contains(err.Error(), "EVENTBUS_INVALID_HANDLER_RETURN") {
		t.Errorf("expected invalid return error, got: %v", err)
	}
}

var errHandler = errors.New("handler failed")

func TestMatchesSignature(t *testing.T) {
	if !matchesSignature(func(e roleCreated) {}, []interface{}{roleCreated{}}) {
		t.Error("expected true")
	}
	if matchesSignature(func(e roleCreated) {}, []interface{}{userCreated{}}) {
		t.Error("expected false")
	}
	if matchesSignature(func(e roleCreated) {}, []interface{}{}) {
		t.Error("expected false")
	}
	if matchesSignature(func(e roleCreated) {}, []interface{}{roleCreated{}, roleCreated{}}) {
		t.Error("expected false")
	}
	if !matchesSignature(func(ctx context.Context) {}, []interface{}{context.Background()}) {
		t.Error("expected true for interface satisfaction")
	}
	if !matchesSignature(func(e *roleCreated) {}, []interface{}{nil}) {
		t.Error("expected true for nil pointer arg")
	}
	if matchesSignature(func(e roleCreated) {}, []interface{}{nil}) {
		t.Error("expected false for nil against value type")
	}
	if matchesSignature("not a func", []interface{}{roleCreated{}}) {
		t.Error("expected false for non-func handler")
	}
}

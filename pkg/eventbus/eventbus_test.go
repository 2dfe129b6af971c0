package eventbus

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/logging"
)

type recordCreated struct {
	plateNo string
}

type recordDeleted struct {
	id string
}

type auditable interface {
	AuditLine() string
}

func (e *recordCreated) AuditLine() string { return "created " + e.plateNo }

func warnLogger() (*logrus.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(buf)
	log.SetLevel(logrus.WarnLevel)
	return log, buf
}

func TestPublisher_DispatchesToMatchingHandler(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))

	var got string
	publisher.Subscribe(func(e *recordCreated) {
		got = e.plateNo
	})
	publisher.Publish(&recordCreated{plateNo: "ABC-123"})

	if got != "ABC-123" {
		t.Errorf("expected: %v, got: %v", "ABC-123", got)
	}
}

func TestPublisher_SkipsNonMatchingHandler(t *testing.T) {
	log, buf := warnLogger()
	publisher := NewEventPublisher(log)

	publisher.Subscribe(func(e *recordCreated) {
		t.Error("should not be called")
	})
	publisher.Publish(&recordDeleted{id: "veh-1"})

	if output := buf.String(); output == "" {
		t.Error("should have logged")
	} else if !strings.Contains(output, "no subscribers for") {
		t.Errorf("should have warned about missing subscribers, got: %q", output)
	}
}

func TestPublisher_InterfaceHandlerReceivesImplementingEvent(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))

	var line string
	publisher.Subscribe(func(e auditable) {
		line = e.AuditLine()
	})
	publisher.Publish(&recordCreated{plateNo: "XYZ-987"})

	if line != "created XYZ-987" {
		t.Errorf("expected: %v, got: %v", "created XYZ-987", line)
	}
}

func TestPublisher_RecoversHandlerPanic(t *testing.T) {
	log, buf := warnLogger()
	publisher := NewEventPublisher(log)

	secondCalled := false
	publisher.Subscribe(func(e *recordCreated) {
		panic("boom")
	})
	publisher.Subscribe(func(e *recordCreated) {
		secondCalled = true
	})
	publisher.Publish(&recordCreated{plateNo: "ABC-123"})

	if !secondCalled {
		t.Error("second handler should still run after the first panics")
	}
	if !strings.Contains(buf.String(), "panicked") {
		t.Errorf("panic should be logged, got: %q", buf.String())
	}
}

func TestPublisher_DropsNilEvent(t *testing.T) {
	log, buf := warnLogger()
	publisher := NewEventPublisher(log)

	publisher.Subscribe(func(e *recordCreated) {
		t.Error("should not be called")
	})
	publisher.Publish(nil)

	if !strings.Contains(buf.String(), "nil event") {
		t.Errorf("nil publish should warn, got: %q", buf.String())
	}
}

func TestPublisher_Unsubscribe(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))

	calls := 0
	handler := func(e *recordCreated) {
		calls++
	}
	publisher.Subscribe(handler)
	publisher.Publish(&recordCreated{plateNo: "ABC-123"})
	publisher.Unsubscribe(handler)
	publisher.Publish(&recordCreated{plateNo: "ABC-123"})

	if calls != 1 {
		t.Errorf("expected 1 call, got: %d", calls)
	}
	if publisher.SubscribersCount() != 0 {
		t.Errorf("expected 0 subscribers, got: %d", publisher.SubscribersCount())
	}
}

func TestPublisher_ClearAndCount(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))

	publisher.Subscribe(func(e *recordCreated) {})
	publisher.Subscribe(func(e *recordDeleted) {})
	if publisher.SubscribersCount() != 2 {
		t.Errorf("expected 2 subscribers, got: %d", publisher.SubscribersCount())
	}

	publisher.Clear()
	if publisher.SubscribersCount() != 0 {
		t.Errorf("expected 0 subscribers after clear, got: %d", publisher.SubscribersCount())
	}
}

func TestPublisher_SubscribeRejectsNonHandlers(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))

	for name, handler := range map[string]any{
		"not_a_func":  42,
		"nil_handler": nil,
		"two_params":  func(a *recordCreated, b *recordDeleted) {},
		"no_params":   func() {},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: Subscribe should panic", name)
				}
			}()
			publisher.Subscribe(handler)
		}()
	}
}

func TestMatches(t *testing.T) {
	if !matches(func(e *recordCreated) {}, &recordCreated{}) {
		t.Error("expected pointer event to match its handler")
	}
	if matches(func(e *recordCreated) {}, &recordDeleted{}) {
		t.Error("different event types should not match")
	}
	if !matches(func(e auditable) {}, &recordCreated{}) {
		t.Error("implementing event should match interface handler")
	}
	if matches(func(e auditable) {}, &recordDeleted{}) {
		t.Error("non-implementing event should not match interface handler")
	}
	if matches(42, &recordCreated{}) {
		t.Error("non-func should never match")
	}
}

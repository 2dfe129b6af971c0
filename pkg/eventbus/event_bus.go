package eventbus

import (
	"reflect"

	"github.com/sirupsen/logrus"
)

// EventBus carries mutation events from the service layer to in-process
// handlers. Dispatch is synchronous on the publishing goroutine, so handlers
// finish before the mutation call returns.
type EventBus interface {
	Publish(event any)
	Subscribe(handler any)
	Unsubscribe(handler any)
	Clear()
	SubscribersCount() int
}

type publisherImpl struct {
	log         *logrus.Logger
	subscribers []any
}

func NewEventPublisher(log *logrus.Logger) EventBus {
	return &publisherImpl{log: log}
}

// matches reports whether handler accepts event as its single argument.
func matches(handler, event any) bool {
	t := reflect.TypeOf(handler)
	if t == nil || t.Kind() != reflect.Func || t.NumIn() != 1 {
		return false
	}
	param := t.In(0)
	eventType := reflect.TypeOf(event)
	if param.Kind() == reflect.Interface {
		return eventType.Implements(param)
	}
	return eventType.AssignableTo(param)
}

func (p *publisherImpl) Publish(event any) {
	if event == nil {
		if p.log != nil {
			p.log.Warn("eventbus: dropped nil event")
		}
		return
	}

	in := []reflect.Value{reflect.ValueOf(event)}

	handled := false
	for _, handler := range p.subscribers {
		if !matches(handler, event) {
			continue
		}
		v := reflect.ValueOf(handler)
		func() {
			defer func() {
				if r := recover(); r != nil && p.log != nil {
					p.log.Errorf("eventbus: handler %s panicked on %T: %v", v.Type().String(), event, r)
				}
			}()
			v.Call(in)
			handled = true
		}()
	}

	if !handled && p.log != nil {
		p.log.Warnf("eventbus: no subscribers for %T", event)
	}
}

func (p *publisherImpl) Subscribe(handler any) {
	t := reflect.TypeOf(handler)
	if t == nil || t.Kind() != reflect.Func || t.NumIn() != 1 {
		panic("eventbus: handler must be a func taking one event argument")
	}
	p.subscribers = append(p.subscribers, handler)
}

// Unsubscribe removes the first subscriber with the same code pointer. Func
// values are not comparable, the code pointer is the closest stable identity.
func (p *publisherImpl) Unsubscribe(handler any) {
	v := reflect.ValueOf(handler)
	if v.Kind() != reflect.Func {
		return
	}
	target := v.Pointer()
	for i, existing := range p.subscribers {
		if reflect.ValueOf(existing).Pointer() == target {
			p.subscribers = append(p.subscribers[:i], p.subscribers[i+1:]...)
			return
		}
	}
}

func (p *publisherImpl) Clear() {
	p.subscribers = nil
}

func (p *publisherImpl) SubscribersCount() int {
	return len(p.subscribers)
}

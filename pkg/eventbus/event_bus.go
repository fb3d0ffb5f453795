// Package eventbus is the in-process domain event bus. Subscribers are plain
// functions; an event is dispatched to every subscriber whose signature
// matches the published arguments. Delivery is synchronous and best-effort:
// a panicking subscriber is isolated and logged, never propagated to the
// publisher.
package eventbus

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var (
	ErrNoSubscribers        = serrors.NewDomain("EVENTBUS_NO_SUBSCRIBERS", "no matching subscribers")
	ErrInvalidHandlerReturn = serrors.NewDomain("EVENTBUS_INVALID_HANDLER_RETURN", "invalid handler return signature")
)

type EventBus interface {
	Publish(args ...interface{})
	Subscribe(handler interface{})
	Unsubscribe(handler interface{})
	Clear()
	SubscribersCount() int
}

// EventBusWithError extends the bus with a publish that collects handler
// errors instead of dropping them. Handlers may return nothing or a single
// error.
type EventBusWithError interface {
	EventBus
	PublishE(args ...interface{}) error
}

type publisherImpl struct {
	log         *logrus.Logger
	mu          sync.RWMutex
	subscribers []interface{}
}

func NewEventPublisher(log *logrus.Logger) EventBus {
	return &publisherImpl{log: log}
}

// matchesSignature reports whether handler is a func accepting exactly the
// published argument list, honoring interface satisfaction and nil args.
func matchesSignature(handler interface{}, args []interface{}) bool {
	t := reflect.TypeOf(handler)
	if t.Kind() != reflect.Func || t.NumIn() != len(args) {
		return false
	}
	for i, arg := range args {
		in := t.In(i)
		if arg == nil {
			if in.Kind() != reflect.Interface && in.Kind() != reflect.Ptr {
				return false
			}
			continue
		}
		at := reflect.TypeOf(arg)
		if in.Kind() == reflect.Interface {
			if !at.Implements(in) {
				return false
			}
			continue
		}
		if !at.AssignableTo(in) {
			return false
		}
	}
	return true
}

func (p *publisherImpl) Publish(args ...interface{}) {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		in[i] = reflect.ValueOf(arg)
	}

	p.mu.RLock()
	subscribers := make([]interface{}, len(p.subscribers))
	copy(subscribers, p.subscribers)
	p.mu.RUnlock()

	delivered := false
	for _, handler := range subscribers {
		if !matchesSignature(handler, args) {
			continue
		}
		p.call(handler, in)
		delivered = true
	}

	if !delivered && p.log != nil {
		p.log.Warnf("eventbus: no matching subscribers for %s", describeArgs(args))
	}
}

// PublishE delivers like Publish but returns ErrNoSubscribers when nothing
// matched and joins every error the handlers returned or panicked with.
func (p *publisherImpl) PublishE(args ...interface{}) error {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		in[i] = reflect.ValueOf(arg)
	}

	p.mu.RLock()
	subscribers := make([]interface{}, len(p.subscribers))
	copy(subscribers, p.subscribers)
	p.mu.RUnlock()

	delivered := false
	var errs []error
	for _, handler := range subscribers {
		if !matchesSignature(handler, args) {
			continue
		}
		delivered = true
		errs = append(errs, p.callE(handler, in))
	}

	if !delivered {
		return ErrNoSubscribers
	}
	return errors.Join(errs...)
}

func (p *publisherImpl) callE(handler interface{}, in []reflect.Value) (err error) {
	v := reflect.ValueOf(handler)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("eventbus: handler %s panicked: %v", v.Type(), r)
		}
	}()
	out := v.Call(in)
	switch {
	case len(out) == 0:
		return nil
	case len(out) > 1:
		return ErrInvalidHandlerReturn.WithMessagef("handler %s returns %d values", v.Type(), len(out))
	}
	ret := out[0]
	if ret.Type() != reflect.TypeOf((*error)(nil)).Elem() {
		return ErrInvalidHandlerReturn.WithMessagef("handler %s returns %s", v.Type(), ret.Type())
	}
	if ret.IsNil() {
		return nil
	}
	return ret.Interface().(error)
}

func (p *publisherImpl) call(handler interface{}, in []reflect.Value) {
	defer func() {
		if r := recover(); r != nil {
			if p.log != nil {
				p.log.Errorf("eventbus: handler %s panicked: %v", reflect.TypeOf(handler), r)
			}
		}
	}()
	reflect.ValueOf(handler).Call(in)
}

func (p *publisherImpl) Subscribe(handler interface{}) {
	if reflect.TypeOf(handler).Kind() != reflect.Func {
		panic("eventbus: handler must be a function")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, handler)
}

func (p *publisherImpl) Unsubscribe(handler interface{}) {
	target := reflect.ValueOf(handler).Pointer()
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, s := range p.subscribers {
		// Func values are not comparable; compare code pointers instead.
		if reflect.ValueOf(s).Pointer() == target {
			p.subscribers = append(p.subscribers[:i], p.subscribers[i+1:]...)
			return
		}
	}
}

func (p *publisherImpl) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = nil
}

func (p *publisherImpl) SubscribersCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subscribers)
}

func describeArgs(args []interface{}) string {
	types := make([]string, len(args))
	for i, arg := range args {
		types[i] = fmt.Sprintf("%T", arg)
	}
	return fmt.Sprintf("%v", types)
}

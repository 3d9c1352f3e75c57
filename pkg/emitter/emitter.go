package emitter

import (
	"sync"

	"go.uber.org/zap"
)

type Listener func(args ...interface{})

// Subscription is the handle returned by On. Handles are compared by identity,
// so registering the same function twice yields two independent entries.
type Subscription[E comparable] struct {
	event    E
	listener Listener
	emitter  *Emitter[E]
}

func (s *Subscription[E]) Event() E {
	return s.event
}

func (s *Subscription[E]) Unsubscribe() {
	s.emitter.Off(s.event, s)
}

// Emitter is a named-event publish/subscribe table.
// The zero value is ready to use.
type Emitter[E comparable] struct {
	mu        sync.Mutex
	listeners map[E][]*Subscription[E]
	logger    *zap.Logger
}

func New[E comparable](logger *zap.Logger) *Emitter[E] {
	return &Emitter[E]{logger: logger}
}

func (e *Emitter[E]) On(event E, listener Listener) *Subscription[E] {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.listeners == nil {
		e.listeners = make(map[E][]*Subscription[E])
	}

	sub := &Subscription[E]{event: event, listener: listener, emitter: e}
	e.listeners[event] = append(e.listeners[event], sub)
	return sub
}

func (e *Emitter[E]) Off(event E, sub *Subscription[E]) {
	e.mu.Lock()
	defer e.mu.Unlock()

	subs, ok := e.listeners[event]
	if !ok || sub == nil {
		return
	}

	for i, s := range subs {
		if s != sub {
			continue
		}

		rest := make([]*Subscription[E], 0, len(subs)-1)
		rest = append(rest, subs[:i]...)
		rest = append(rest, subs[i+1:]...)

		if len(rest) == 0 {
			delete(e.listeners, event)
		} else {
			e.listeners[event] = rest
		}
		return
	}
}

// Emit synchronously invokes every listener of event in subscription order.
// A panicking listener is logged and skipped. Returns false when nobody listens.
func (e *Emitter[E]) Emit(event E, args ...interface{}) bool {
	e.mu.Lock()
	subs := e.listeners[event]
	e.mu.Unlock()

	if len(subs) == 0 {
		return false
	}

	for _, sub := range subs {
		e.invoke(sub, args)
	}

	return true
}

func (e *Emitter[E]) invoke(sub *Subscription[E], args []interface{}) {
	defer func() {
		if r := recover(); r != nil {
			e.log().Error("listener failed",
				zap.Any("event", sub.event),
				zap.Any("panic", r))
		}
	}()

	sub.listener(args...)
}

func (e *Emitter[E]) ListenerCount(event E) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.listeners[event])
}

func (e *Emitter[E]) RemoveAllListeners() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.listeners = nil
}

func (e *Emitter[E]) log() *zap.Logger {
	if e.logger == nil {
		return zap.L().Named("emitter")
	}
	return e.logger
}

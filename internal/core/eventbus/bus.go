package eventbus

import (
	"context"
	"sync"
)

type envelope struct {
	event   Event
	payload any
}

// EventBus fans published events out to subscribers on a single goroutine
// started with Start. Publishing never blocks: when the buffer is full the
// event is dropped and OnDrop hooks fire.
type EventBus struct {
	ch    chan envelope
	hooks hooks

	mu   sync.RWMutex
	subs map[Event][]func(any)
}

// New creates a bus with the given buffer size.
func New(size int) *EventBus {
	if size < 1 {
		size = 1
	}
	return &EventBus{
		ch:   make(chan envelope, size),
		subs: make(map[Event][]func(any)),
	}
}

// Start delivers events until ctx is cancelled.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-bus.ch:
			bus.deliver(env)
		}
	}
}

func (bus *EventBus) deliver(env envelope) {
	bus.mu.RLock()
	subs := make([]func(any), len(bus.subs[env.event]))
	copy(subs, bus.subs[env.event])
	bus.mu.RUnlock()

	for _, fn := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					bus.runOnPanic(env.event, env.payload, r)
				}
			}()
			fn(env.payload)
		}()
	}
}

func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subs[event] = append(bus.subs[event], fn)
	bus.mu.Unlock()

	bus.runOnSubscribe(event)
}

func (bus *EventBus) PublishActionDispatched(p ActionDispatchedPayload) {
	bus.send(EventActionDispatched, p)
}

func (bus *EventBus) SubscribeActionDispatched(fn func(ActionDispatchedPayload)) {
	bus.subscribe(EventActionDispatched, func(p any) { fn(p.(ActionDispatchedPayload)) })
}

func (bus *EventBus) PublishStateChanged(p StateChangedPayload) {
	bus.send(EventStateChanged, p)
}

func (bus *EventBus) SubscribeStateChanged(fn func(StateChangedPayload)) {
	bus.subscribe(EventStateChanged, func(p any) { fn(p.(StateChangedPayload)) })
}

func (bus *EventBus) PublishJournalReloaded(p JournalReloadedPayload) {
	bus.send(EventJournalReloaded, p)
}

func (bus *EventBus) SubscribeJournalReloaded(fn func(JournalReloadedPayload)) {
	bus.subscribe(EventJournalReloaded, func(p any) { fn(p.(JournalReloadedPayload)) })
}

func (bus *EventBus) PublishTuiStarted(p TUIStartedPayload) {
	bus.send(EventTuiStarted, p)
}

func (bus *EventBus) SubscribeTuiStarted(fn func(TUIStartedPayload)) {
	bus.subscribe(EventTuiStarted, func(p any) { fn(p.(TUIStartedPayload)) })
}

func (bus *EventBus) PublishTuiStopped(p TUIStoppedPayload) {
	bus.send(EventTuiStopped, p)
}

func (bus *EventBus) SubscribeTuiStopped(fn func(TUIStoppedPayload)) {
	bus.subscribe(EventTuiStopped, func(p any) { fn(p.(TUIStoppedPayload)) })
}

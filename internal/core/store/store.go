// Package store holds the live todo state and is the dispatcher actions are sent to.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/colonyops/todos/internal/core/action"
	"github.com/colonyops/todos/internal/core/eventbus"
	"github.com/colonyops/todos/internal/core/journal"
	"github.com/colonyops/todos/internal/core/logging"
	"github.com/colonyops/todos/internal/core/todo"
	"github.com/rs/zerolog"
)

// ErrNilAction is returned when Dispatch is called without an action.
var ErrNilAction = errors.New("nil action")

// Listener is notified with a snapshot of the state after every change.
type Listener func(todo.State)

// Options configures a Store. Journal and Bus are optional.
type Options struct {
	Journal journal.Journal
	Bus     *eventbus.EventBus
	Logger  zerolog.Logger
	Filter  action.VisibilityFilter
}

// Store applies dispatched actions to the todo state. Every action is
// journaled before it is reduced, so replaying the journal reproduces State.
type Store struct {
	journal journal.Journal
	bus     *eventbus.EventBus
	log     zerolog.Logger
	initial todo.State

	// pmu is held across a whole change, from journal write to the last
	// listener, so observers see changes in the order they were applied.
	// It is always taken before mu.
	pmu sync.Mutex

	mu      sync.Mutex
	state   todo.State
	lastSeq int64

	lmu       sync.Mutex
	listeners map[int]Listener
	nextID    int
}

var _ action.Dispatcher = (*Store)(nil)

// New creates a store holding the initial state for opts.Filter.
func New(opts Options) *Store {
	initial := todo.Initial(opts.Filter)
	return &Store{
		journal:   opts.Journal,
		bus:       opts.Bus,
		log:       opts.Logger.With().Str("component", "store").Logger(),
		initial:   initial,
		state:     initial.Clone(),
		listeners: make(map[int]Listener),
	}
}

// Load replaces the current state with a replay of the journal on top of
// the initial state. It is a no-op without a journal.
func (s *Store) Load(ctx context.Context) error {
	if s.journal == nil {
		return nil
	}

	entries, err := s.journal.List(ctx)
	if err != nil {
		return fmt.Errorf("load journal: %w", err)
	}

	next := todo.Replay(s.initial, journal.Actions(entries))

	s.pmu.Lock()
	defer s.pmu.Unlock()

	s.mu.Lock()
	s.state = next
	if len(entries) > 0 {
		s.lastSeq = entries[len(entries)-1].Seq
	}
	s.mu.Unlock()

	s.log.Debug().Int("entries", len(entries)).Msg("journal replayed")

	if s.bus != nil {
		s.bus.PublishJournalReloaded(eventbus.JournalReloadedPayload{Entries: len(entries)})
		s.bus.PublishStateChanged(eventbus.StateChangedPayload{State: next.Clone()})
	}
	s.notify(next)

	return nil
}

// Dispatch journals a, reduces it into the state, then publishes the change.
// A journal failure leaves the state untouched.
func (s *Store) Dispatch(ctx context.Context, a action.Action) error {
	if a == nil {
		return ErrNilAction
	}

	ctx = logging.WithActionType(ctx, string(a.Type()))

	s.pmu.Lock()
	defer s.pmu.Unlock()

	s.mu.Lock()
	var seq int64
	if s.journal != nil {
		entry, err := s.journal.Append(ctx, a)
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("journal %s: %w", a.Type(), err)
		}
		seq = entry.Seq
	} else {
		seq = s.lastSeq + 1
	}
	s.lastSeq = seq

	next := todo.Reduce(s.state, a)
	s.state = next
	s.mu.Unlock()

	s.log.Debug().Ctx(ctx).Int64("seq", seq).Interface("action", a).Msg("dispatched")

	if s.bus != nil {
		s.bus.PublishActionDispatched(eventbus.ActionDispatchedPayload{Action: a, Seq: seq})
		s.bus.PublishStateChanged(eventbus.StateChangedPayload{State: next.Clone()})
	}
	s.notify(next)

	return nil
}

// Reset clears the journal and returns the state to its initial value.
func (s *Store) Reset(ctx context.Context) error {
	s.pmu.Lock()
	defer s.pmu.Unlock()

	s.mu.Lock()
	if s.journal != nil {
		if err := s.journal.Clear(ctx); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("clear journal: %w", err)
		}
	}
	next := s.initial.Clone()
	s.state = next
	s.mu.Unlock()

	s.log.Info().Msg("journal cleared")

	if s.bus != nil {
		s.bus.PublishStateChanged(eventbus.StateChangedPayload{State: next.Clone()})
	}
	s.notify(next)

	return nil
}

// State returns a copy of the current state.
func (s *Store) State() todo.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// LastSeq returns the sequence number of the most recently applied action.
func (s *Store) LastSeq() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeq
}

// Subscribe registers fn for state changes and returns a function that removes it.
// Listeners run synchronously on the dispatching goroutine, one change at a
// time and in the order the changes were applied. A listener may read State
// but must not call Dispatch, Load, or Reset.
func (s *Store) Subscribe(fn Listener) func() {
	s.lmu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.lmu.Lock()
			delete(s.listeners, id)
			s.lmu.Unlock()
		})
	}
}

func (s *Store) notify(state todo.State) {
	s.lmu.Lock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.lmu.Unlock()

	for _, fn := range fns {
		fn(state.Clone())
	}
}

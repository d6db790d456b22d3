package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// Guard vetoes a transition when it returns false.
type Guard[S, E comparable] func(ctx context.Context, from S, event E) bool

// Action runs before the state changes. Returning an error aborts the transition.
type Action[S, E comparable] func(ctx context.Context, from, to S, event E) error

type transition[S, E comparable] struct {
	to      S
	guards  []Guard[S, E]
	actions []Action[S, E]
}

// Machine is a thread-safe finite-state machine.
type Machine[S, E comparable] struct {
	mu          sync.Mutex
	initial     S
	current     S
	transitions map[S]map[E][]transition[S, E]
	onChange    []func(from, to S, event E)
}

// Option configures a Machine.
type Option[S, E comparable] func(*Machine[S, E])

// TransitionOption decorates a single transition.
type TransitionOption[S, E comparable] func(*transition[S, E])

// WithGuards adds guards to a transition; all must pass.
func WithGuards[S, E comparable](guards ...Guard[S, E]) TransitionOption[S, E] {
	return func(t *transition[S, E]) { t.guards = append(t.guards, guards...) }
}

// WithActions adds actions to a transition; they run in order.
func WithActions[S, E comparable](actions ...Action[S, E]) TransitionOption[S, E] {
	return func(t *transition[S, E]) { t.actions = append(t.actions, actions...) }
}

// WithTransition declares from --event--> to.
// Several transitions may share from and event; the first whose guards pass wins.
func WithTransition[S, E comparable](from, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) {
		t := transition[S, E]{to: to}
		for _, opt := range opts {
			opt(&t)
		}
		if m.transitions[from] == nil {
			m.transitions[from] = make(map[E][]transition[S, E])
		}
		m.transitions[from][event] = append(m.transitions[from][event], t)
	}
}

// WithOnChange registers a callback invoked after every successful transition.
func WithOnChange[S, E comparable](fn func(from, to S, event E)) Option[S, E] {
	return func(m *Machine[S, E]) {
		if fn != nil {
			m.onChange = append(m.onChange, fn)
		}
	}
}

// New builds a machine starting in initial.
func New[S, E comparable](initial S, opts ...Option[S, E]) (*Machine[S, E], error) {
	m := &Machine[S, E]{
		initial:     initial,
		current:     initial,
		transitions: make(map[S]map[E][]transition[S, E]),
	}
	for _, opt := range opts {
		opt(m)
	}
	if len(m.transitions) > 0 && !m.mentions(initial) {
		return nil, fmt.Errorf("%w: %v", ErrNoInitialState, initial)
	}
	return m, nil
}

// MustNew is like New but panics on error.
func MustNew[S, E comparable](initial S, opts ...Option[S, E]) *Machine[S, E] {
	m, err := New(initial, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Current returns the current state.
func (m *Machine[S, E]) Current() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Fire applies event to the current state.
func (m *Machine[S, E]) Fire(ctx context.Context, event E) error {
	m.mu.Lock()

	from := m.current
	t, err := m.pick(ctx, from, event)
	if err != nil {
		m.mu.Unlock()
		return err
	}

	for _, action := range t.actions {
		if err := action(ctx, from, t.to, event); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("statemachine: action failed: %w", err)
		}
	}
	m.current = t.to
	callbacks := m.onChange
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn(from, t.to, event)
	}
	return nil
}

// CanFire reports whether Fire(event) would find an allowed transition.
func (m *Machine[S, E]) CanFire(ctx context.Context, event E) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.pick(ctx, m.current, event)
	return err == nil
}

// Reset returns the machine to its initial state without running actions.
func (m *Machine[S, E]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}

func (m *Machine[S, E]) pick(ctx context.Context, from S, event E) (transition[S, E], error) {
	candidates := m.transitions[from][event]
	if len(candidates) == 0 {
		return transition[S, E]{}, &NoTransitionError{State: fmt.Sprint(from), Event: fmt.Sprint(event)}
	}

	for _, t := range candidates {
		if allPass(ctx, t.guards, from, event) {
			return t, nil
		}
	}
	return transition[S, E]{}, &RejectedError{State: fmt.Sprint(from), Event: fmt.Sprint(event)}
}

func allPass[S, E comparable](ctx context.Context, guards []Guard[S, E], from S, event E) bool {
	for _, g := range guards {
		if g != nil && !g(ctx, from, event) {
			return false
		}
	}
	return true
}

func (m *Machine[S, E]) mentions(s S) bool {
	if _, ok := m.transitions[s]; ok {
		return true
	}
	for _, byEvent := range m.transitions {
		for _, ts := range byEvent {
			for _, t := range ts {
				if t.to == s {
					return true
				}
			}
		}
	}
	return false
}

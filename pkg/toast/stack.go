package toast

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/dmitrymomot/testimony/pkg/logger"
	"github.com/dmitrymomot/testimony/pkg/notifications"
	"github.com/dmitrymomot/testimony/pkg/statemachine"
)

// Phase is the animation phase of a toast.
type Phase string

const (
	PhaseEntering Phase = "entering"
	PhaseVisible  Phase = "visible"
	PhaseLeaving  Phase = "leaving"
	PhaseRemoved  Phase = "removed"
)

type event string

const (
	eventShown   event = "shown"
	eventDismiss event = "dismiss"
	eventFinish  event = "finish"
)

// Entry is a toast as rendered.
type Entry struct {
	notifications.Notification
	Phase Phase
}

type toast struct {
	id      string
	machine *statemachine.Machine[Phase, event]
	enter   Timer
	auto    Timer
	exit    Timer
}

func (t *toast) stopTimers() {
	for _, tm := range []Timer{t.enter, t.auto, t.exit} {
		if tm != nil {
			tm.Stop()
		}
	}
}

// Stack is the toast presentation of one store.
type Stack struct {
	store *notifications.Store

	maxVisible       int
	enterDelay       time.Duration
	exitDelay        time.Duration
	autoDismiss      time.Duration
	errorAutoDismiss bool
	clock            Clock
	logger           *slog.Logger

	mu       sync.Mutex
	toasts   map[string]*toast
	closed   bool
	changes  chan struct{}
	removing sync.WaitGroup

	cancel context.CancelFunc
	done   chan struct{}
}

// New returns a Stack over store. Call Sync or Start to pick up notifications.
func New(store *notifications.Store, opts ...Option) *Stack {
	s := &Stack{
		store:       store,
		maxVisible:  DefaultMaxVisible,
		enterDelay:  DefaultEnterDelay,
		exitDelay:   DefaultExitDelay,
		autoDismiss: DefaultAutoDismiss,
		clock:       realClock{},
		logger:      slog.Default(),
		toasts:      make(map[string]*toast),
		changes:     make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Changes receives a value whenever the rendered stack may have changed.
// Signals coalesce; readers should render the current state.
func (s *Stack) Changes() <-chan struct{} {
	return s.changes
}

// Done is closed once the loop started by Start ends: ctx was cancelled, Close
// was called or the store was closed. A stack over a closed store shows nothing
// new, so stream owners should end and let the client reconnect.
func (s *Stack) Done() <-chan struct{} {
	return s.done
}

// Start follows store events until ctx is done, Close is called or the store
// is closed.
func (s *Stack) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	done := s.done

	s.mu.Lock()
	if s.closed || s.cancel != nil {
		s.mu.Unlock()
		cancel()
		return
	}
	s.cancel = cancel
	s.mu.Unlock()

	sub := s.store.Subscribe(ctx)
	s.Sync()

	go func() {
		defer close(done)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-sub.C():
				if !ok {
					return
				}
				s.Sync()
			}
		}
	}()
}

// Sync reconciles the toasts with the store: new notifications in the window
// start entering, toasts whose notification is gone are dropped.
func (s *Stack) Sync() {
	items := s.store.List()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	present := make(map[string]struct{}, len(items))
	for _, n := range items {
		present[n.ID] = struct{}{}
	}
	changed := false
	for id, t := range s.toasts {
		if _, ok := present[id]; !ok {
			t.stopTimers()
			delete(s.toasts, id)
			changed = true
		}
	}
	for _, n := range items[:min(len(items), s.maxVisible)] {
		if _, ok := s.toasts[n.ID]; !ok {
			s.toasts[n.ID] = s.track(n)
			changed = true
		}
	}
	s.mu.Unlock()

	if changed {
		s.signal()
	}
}

// Visible returns the toasts in store order with their phases.
func (s *Stack) Visible() []Entry {
	items := s.store.List()

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, min(len(items), s.maxVisible))
	for _, n := range items[:min(len(items), s.maxVisible)] {
		phase := PhaseEntering
		if t, ok := s.toasts[n.ID]; ok {
			phase = t.machine.Current()
		}
		out = append(out, Entry{Notification: n, Phase: phase})
	}
	return out
}

// List is the dropdown view: every notification, uncapped.
func (s *Stack) List() []notifications.Notification {
	return s.store.List()
}

// Phase returns the phase of toast id. Notifications outside the window report
// false.
func (s *Stack) Phase(id string) (Phase, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.toasts[id]
	if !ok {
		return "", false
	}
	return t.machine.Current(), true
}

// Dismiss starts the exit of id. A notification outside the toast window (only
// in the dropdown) is removed at once; one inside the window leaves through the
// exit phase even if this stack has not picked it up yet. It reports false for
// notifications the user may not dismiss; repeated calls while leaving are
// no-ops.
func (s *Stack) Dismiss(id string) bool {
	items := s.store.List()
	i := slices.IndexFunc(items, func(n notifications.Notification) bool { return n.ID == id })
	if i < 0 {
		return true
	}
	n := items[i]
	if !n.Dismissible {
		return false
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	if i >= s.maxVisible {
		s.mu.Unlock()
		s.store.Remove(id)
		return true
	}
	t, tracked := s.toasts[id]
	if !tracked {
		t = s.track(n)
		s.toasts[id] = t
	}
	s.fire(t, eventDismiss)
	s.mu.Unlock()

	s.signal()
	return true
}

// Close stops every timer and the event loop started by Start. It waits for
// exits already removing their notification, so the store is not touched once
// Close returns.
func (s *Stack) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for id, t := range s.toasts {
		t.stopTimers()
		delete(s.toasts, id)
	}
	cancel := s.cancel
	s.mu.Unlock()

	s.removing.Wait()
	if cancel == nil {
		close(s.done)
		return
	}
	cancel()
	<-s.done
}

// track builds the machine and timers of a new toast. Must hold s.mu.
func (s *Stack) track(n notifications.Notification) *toast {
	t := &toast{id: n.ID}
	t.machine = statemachine.MustNew(PhaseEntering,
		statemachine.WithTransition(PhaseEntering, PhaseVisible, eventShown),
		statemachine.WithTransition(PhaseEntering, PhaseLeaving, eventDismiss,
			statemachine.WithActions(s.leave(t))),
		statemachine.WithTransition(PhaseVisible, PhaseLeaving, eventDismiss,
			statemachine.WithActions(s.leave(t))),
		statemachine.WithTransition(PhaseLeaving, PhaseRemoved, eventFinish),
	)

	t.enter = s.clock.AfterFunc(s.enterDelay, func() { s.onTimer(t, eventShown) })
	if s.autoDismisses(n) {
		t.auto = s.clock.AfterFunc(s.autoDismiss, func() { s.onTimer(t, eventDismiss) })
	}
	return t
}

func (s *Stack) autoDismisses(n notifications.Notification) bool {
	if s.autoDismiss <= 0 || !n.Dismissible {
		return false
	}
	return n.Kind != notifications.KindError || s.errorAutoDismiss
}

// leave cancels the pending timers and schedules removal from the store.
// Runs while s.mu is held.
func (s *Stack) leave(t *toast) statemachine.Action[Phase, event] {
	return func(context.Context, Phase, Phase, event) error {
		t.stopTimers()
		t.exit = s.clock.AfterFunc(s.exitDelay, func() { s.finish(t) })
		return nil
	}
}

func (s *Stack) onTimer(t *toast, e event) {
	s.mu.Lock()
	if s.closed || s.toasts[t.id] != t {
		s.mu.Unlock()
		return
	}
	s.fire(t, e)
	s.mu.Unlock()
	s.signal()
}

func (s *Stack) finish(t *toast) {
	s.mu.Lock()
	if s.closed || s.toasts[t.id] != t {
		s.mu.Unlock()
		return
	}
	s.fire(t, eventFinish)
	delete(s.toasts, t.id)
	s.removing.Add(1)
	s.mu.Unlock()

	s.store.Remove(t.id)
	s.removing.Done()
	s.Sync()
	s.signal()
}

// fire applies e to t, ignoring events the current phase does not accept.
// Must hold s.mu.
func (s *Stack) fire(t *toast, e event) {
	err := t.machine.Fire(context.Background(), e)
	if err != nil && !statemachine.IsNoTransition(err) {
		s.logger.Error("toast transition failed", logger.NotificationID(t.id), logger.Error(err))
	}
}

func (s *Stack) signal() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

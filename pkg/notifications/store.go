package notifications

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/testimony/pkg/broadcast"
	"github.com/dmitrymomot/testimony/pkg/logger"
)

// EventType names a store mutation.
type EventType string

const (
	EventAdded   EventType = "added"
	EventRemoved EventType = "removed"
	EventCleared EventType = "cleared"
)

// Event is published after every mutation. ID is empty for EventCleared.
type Event struct {
	Type EventType
	ID   string
}

// Recorder receives store mutations for metrics.
type Recorder interface {
	RecordNotification(event string)
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the logger.
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder reports mutations to r.
func WithRecorder(r Recorder) StoreOption {
	return func(s *Store) { s.recorder = r }
}

// WithClock replaces time.Now for CreatedAt stamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithEventBuffer sets how many events a slow subscriber may lag behind.
func WithEventBuffer(n int) StoreOption {
	return func(s *Store) { s.bufferSize = n }
}

// Store is the ordered notification collection of one session.
// It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	items  []Notification
	closed bool

	events     *broadcast.Memory[Event]
	bufferSize int
	policy     *bluemonday.Policy
	now        func() time.Time
	logger     *slog.Logger
	recorder   Recorder
}

// NewStore returns an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		bufferSize: 16,
		policy:     bluemonday.StrictPolicy(),
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.events = broadcast.NewMemory[Event](s.bufferSize)
	return s
}

// Add appends a notification built from d and returns its id. Markup is
// stripped from text fields and an unknown kind is stored as info. A closed
// store keeps nothing and returns an empty id.
func (s *Store) Add(d Draft) string {
	id, _ := s.Append(d)
	return id
}

// Append is Add that reports ErrStoreClosed instead of dropping the draft.
func (s *Store) Append(d Draft) (string, error) {
	id := newID()
	n := Notification{
		ID:          id,
		Kind:        d.Kind,
		Title:       s.clean(d.Title),
		Description: s.clean(d.Description),
		Dismissible: d.Dismissible == nil || *d.Dismissible,
		CreatedAt:   s.now(),
	}
	if !n.Kind.Valid() {
		n.Kind = KindInfo
	}
	if d.Action != nil {
		a := *d.Action
		a.Label = s.clean(a.Label)
		n.Action = &a
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return "", ErrStoreClosed
	}
	s.items = append(s.items, n)
	s.mu.Unlock()

	s.publish(Event{Type: EventAdded, ID: id})
	return id, nil
}

// Closed reports whether Close was called.
func (s *Store) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Remove deletes the notification with id. Unknown ids are ignored.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	i := slices.IndexFunc(s.items, func(n Notification) bool { return n.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.mu.Unlock()

	s.publish(Event{Type: EventRemoved, ID: id})
}

// Clear removes every notification.
func (s *Store) Clear() {
	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		return
	}
	s.items = nil
	s.mu.Unlock()

	s.publish(Event{Type: EventCleared})
}

// List returns the notifications in insertion order.
func (s *Store) List() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Len returns the number of stored notifications.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns the notification with id.
func (s *Store) Get(id string) (Notification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.items {
		if n.ID == id {
			return n, true
		}
	}
	return Notification{}, false
}

// Invoke runs the action of notification id and removes it. It returns the
// URL the caller should navigate to, if any. An unknown id or a notification
// without an action is a no-op. When OnInvoke fails the notification stays.
func (s *Store) Invoke(ctx context.Context, id string) (string, error) {
	n, ok := s.Get(id)
	if !ok || n.Action == nil {
		return "", nil
	}
	if n.Action.OnInvoke != nil {
		if err := n.Action.OnInvoke(ctx); err != nil {
			s.logger.WarnContext(ctx, "notification action failed",
				logger.NotificationID(id),
				logger.Error(err),
			)
			return "", fmt.Errorf("%w: %w", ErrActionFailed, err)
		}
	}
	s.Remove(id)
	return n.Action.URL, nil
}

// Subscribe streams mutation events until ctx is done or the store closes.
func (s *Store) Subscribe(ctx context.Context) broadcast.Subscriber[Event] {
	return s.events.Subscribe(ctx)
}

// Close drops all notifications and ends every subscription. Subscribers see
// their channel closed and must fetch a fresh store from the Hub.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.items = nil
	s.mu.Unlock()

	return s.events.Close()
}

func (s *Store) publish(e Event) {
	if s.recorder != nil {
		s.recorder.RecordNotification(string(e.Type))
	}
	s.logger.Debug("notification store changed", logger.Event(string(e.Type)), logger.NotificationID(e.ID))
	_ = s.events.Publish(e)
}

// clean strips markup. Entities are decoded again because templates escape
// on output.
func (s *Store) clean(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}

func newID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

package notifications

import (
	"errors"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/testimony/pkg/cache"
	"github.com/dmitrymomot/testimony/pkg/logger"
)

const (
	DefaultHubCapacity = 10_000
	DefaultRate        = rate.Limit(5)
	DefaultBurst       = 10
)

// RateRecorder counts rejected notifications.
type RateRecorder interface {
	RecordRateLimited()
}

type sessionEntry struct {
	store   *Store
	limiter *rate.Limiter
}

// Hub maps session ids to their stores.
type Hub struct {
	sessions  *cache.LRU[string, *sessionEntry]
	capacity  int
	limit     rate.Limit
	burst     int
	storeOpts []StoreOption
	logger    *slog.Logger
	rates     RateRecorder
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithCapacity bounds the number of live session stores.
func WithCapacity(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.capacity = n
		}
	}
}

// WithRateLimit sets the per-session token bucket for Hub.Add. A limit of
// rate.Inf disables limiting.
func WithRateLimit(limit rate.Limit, burst int) HubOption {
	return func(h *Hub) {
		h.limit = limit
		h.burst = max(burst, 1)
	}
}

// WithStoreOptions is applied to every store the hub creates.
func WithStoreOptions(opts ...StoreOption) HubOption {
	return func(h *Hub) { h.storeOpts = append(h.storeOpts, opts...) }
}

// WithHubLogger sets the logger.
func WithHubLogger(l *slog.Logger) HubOption {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithRateRecorder reports rejected adds to r.
func WithRateRecorder(r RateRecorder) HubOption {
	return func(h *Hub) { h.rates = r }
}

// NewHub returns an empty hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		capacity: DefaultHubCapacity,
		limit:    DefaultRate,
		burst:    DefaultBurst,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.sessions = cache.NewLRU(h.capacity, cache.WithOnEvict(func(sid string, e *sessionEntry) {
		h.logger.Debug("closing notification store", logger.SessionID(sid))
		_ = e.store.Close()
	}))
	return h
}

// Store returns the store of session sid, creating it on first use.
func (h *Hub) Store(sid string) (*Store, error) {
	if sid == "" {
		return nil, ErrEmptySession
	}
	return h.entry(sid).store, nil
}

// Add enqueues d for session sid, subject to the session's rate limit. A store
// closed by eviction while the call was in flight is replaced once.
func (h *Hub) Add(sid string, d Draft) (string, error) {
	if sid == "" {
		return "", ErrEmptySession
	}
	e := h.entry(sid)
	if !e.limiter.Allow() {
		if h.rates != nil {
			h.rates.RecordRateLimited()
		}
		h.logger.Warn("notification rate limited", logger.SessionID(sid))
		return "", ErrRateLimited
	}
	id, err := e.store.Append(d)
	if errors.Is(err, ErrStoreClosed) {
		h.logger.Debug("notification store closed during add", logger.SessionID(sid))
		return h.entry(sid).store.Append(d)
	}
	return id, err
}

// Drop closes and forgets the store of sid.
func (h *Hub) Drop(sid string) {
	h.sessions.Remove(sid)
}

// Len returns the number of live session stores.
func (h *Hub) Len() int {
	return h.sessions.Len()
}

// Close closes every store.
func (h *Hub) Close() error {
	h.sessions.Purge()
	return nil
}

// entry returns the live entry of sid. Evicted entries leave the cache before
// their store is closed, so a closed store found here was closed by its owner
// and is replaced.
func (h *Hub) entry(sid string) *sessionEntry {
	create := func() *sessionEntry {
		return &sessionEntry{
			store:   NewStore(h.storeOpts...),
			limiter: rate.NewLimiter(h.limit, h.burst),
		}
	}
	e, _ := h.sessions.GetOrCreate(sid, create)
	if e.store.Closed() {
		h.sessions.Remove(sid)
		e, _ = h.sessions.GetOrCreate(sid, create)
	}
	return e
}

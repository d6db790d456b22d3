package broadcast

import (
	"context"
	"sync"
)

// Subscriber receives messages until it is closed.
type Subscriber[T any] interface {
	// C is closed when the subscription ends.
	C() <-chan T
	Close() error
}

// Broadcaster publishes messages to all current subscribers.
type Broadcaster[T any] interface {
	Subscribe(ctx context.Context) Subscriber[T]
	Publish(msg T) error
	Close() error
}

// Memory is the in-process Broadcaster.
type Memory[T any] struct {
	mu         sync.Mutex
	subs       map[*subscriber[T]]struct{}
	bufferSize int
	closed     bool
}

var _ Broadcaster[int] = (*Memory[int])(nil)

// NewMemory returns a broadcaster whose subscribers buffer up to bufferSize
// messages (minimum 1).
func NewMemory[T any](bufferSize int) *Memory[T] {
	return &Memory[T]{
		subs:       make(map[*subscriber[T]]struct{}),
		bufferSize: max(bufferSize, 1),
	}
}

// Subscribe registers a subscriber that lives until ctx is done or it is
// closed. Subscribing to a closed broadcaster returns a closed subscriber.
func (b *Memory[T]) Subscribe(ctx context.Context) Subscriber[T] {
	sub := &subscriber[T]{ch: make(chan T, b.bufferSize)}
	sub.detach = func() { b.remove(sub) }

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		sub.shutdown()
		return sub
	}
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	sub.stop = context.AfterFunc(ctx, func() { _ = sub.Close() })
	return sub
}

// Publish delivers msg to every subscriber without blocking.
func (b *Memory[T]) Publish(msg T) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	for sub := range b.subs {
		sub.send(msg)
	}
	return nil
}

// Len returns the number of active subscribers.
func (b *Memory[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close ends every subscription. Further Publish calls return ErrClosed.
func (b *Memory[T]) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()

	for sub := range subs {
		sub.shutdown()
	}
	return nil
}

func (b *Memory[T]) remove(sub *subscriber[T]) {
	b.mu.Lock()
	delete(b.subs, sub)
	b.mu.Unlock()
}

type subscriber[T any] struct {
	mu     sync.Mutex
	ch     chan T
	closed bool
	stop   func() bool
	detach func()
}

func (s *subscriber[T]) C() <-chan T { return s.ch }

func (s *subscriber[T]) Close() error {
	s.detach()
	s.shutdown()
	return nil
}

func (s *subscriber[T]) shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.stop != nil {
		s.stop()
	}
	close(s.ch)
}

// send drops the oldest buffered message when the buffer is full.
func (s *subscriber[T]) send(msg T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for {
		select {
		case s.ch <- msg:
			return
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}

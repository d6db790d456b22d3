package inbox

import (
	"sync"

	"github.com/dmitrymomot/testimony/pkg/toast"
)

// stacks tracks the toast stacks of open streams, so a dismiss request can
// play the exit transition on every tab of the session.
type stacks struct {
	mu        sync.Mutex
	bySession map[string]map[*toast.Stack]struct{}
}

func newStacks() *stacks {
	return &stacks{bySession: make(map[string]map[*toast.Stack]struct{})}
}

// add registers st under sid and returns its removal.
func (s *stacks) add(sid string, st *toast.Stack) (remove func()) {
	s.mu.Lock()
	set, ok := s.bySession[sid]
	if !ok {
		set = make(map[*toast.Stack]struct{})
		s.bySession[sid] = set
	}
	set[st] = struct{}{}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		set := s.bySession[sid]
		delete(set, st)
		if len(set) == 0 {
			delete(s.bySession, sid)
		}
	}
}

// dismiss starts the exit of id on every stack of sid. It reports whether any
// open stream took over the removal.
func (s *stacks) dismiss(sid, id string) bool {
	s.mu.Lock()
	list := make([]*toast.Stack, 0, len(s.bySession[sid]))
	for st := range s.bySession[sid] {
		list = append(list, st)
	}
	s.mu.Unlock()

	handled := false
	for _, st := range list {
		if st.Dismiss(id) {
			handled = true
		}
	}
	return handled
}

func (s *stacks) count(sid string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bySession[sid])
}

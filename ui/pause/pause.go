// Package pause implements reference-counted pause tokens. Several
// subsystems may hold a pause at the same time; the set is paused while any
// token is outstanding and fires its hooks only on the 0→1 and 1→0
// transitions.
package pause

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Token is a handle returned by Acquire. The zero Token is never valid.
type Token struct {
	ID    string
	Owner string
}

// Valid reports whether t was issued by a Set.
func (t Token) Valid() bool { return t.ID != "" }

// Set is a reference-counted pause. The zero value is not usable; construct
// with New.
type Set struct {
	mu       sync.Mutex
	held     map[string]string // token ID -> owner
	onPause  []func()
	onResume []func()
	logger   *slog.Logger
}

// New returns an empty set.
func New(logger *slog.Logger) *Set {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Set{held: make(map[string]string), logger: logger}
}

// OnPause registers fn to run when the first token is acquired.
func (s *Set) OnPause(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPause = append(s.onPause, fn)
}

// OnResume registers fn to run when the last token is released.
func (s *Set) OnResume(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onResume = append(s.onResume, fn)
}

// Acquire adds a pause on behalf of owner.
func (s *Set) Acquire(owner string) Token {
	t := Token{ID: uuid.NewString(), Owner: owner}

	s.mu.Lock()
	s.held[t.ID] = owner
	first := len(s.held) == 1
	hooks := s.onPause
	s.mu.Unlock()

	s.logger.Debug("pause: acquired", "owner", owner, "first", first)
	if first {
		for _, fn := range hooks {
			fn()
		}
	}
	return t
}

// Release drops t. Releasing an unknown or already released token is a
// no-op and reports false.
func (s *Set) Release(t Token) bool {
	s.mu.Lock()
	if _, ok := s.held[t.ID]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.held, t.ID)
	last := len(s.held) == 0
	hooks := s.onResume
	s.mu.Unlock()

	s.logger.Debug("pause: released", "owner", t.Owner, "last", last)
	if last {
		for _, fn := range hooks {
			fn()
		}
	}
	return true
}

// Paused reports whether any token is outstanding.
func (s *Set) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.held) > 0
}

// Count returns the number of outstanding tokens.
func (s *Set) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.held)
}

// Owners returns the owners of outstanding tokens, in no particular order.
func (s *Set) Owners() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.held))
	for _, o := range s.held {
		out = append(out, o)
	}
	return out
}

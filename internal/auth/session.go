// Package auth holds the bearer credential supplied by the external
// authentication collaborator. The client never validates the token —
// it only forwards it with API requests and reacts to signed-in /
// signed-out transitions.
package auth

import (
	"sync"

	"github.com/ram55git/recipediary/internal/logger"
)

// Session is the client's view of the auth collaborator's state. Safe
// for concurrent use.
type Session struct {
	mu        sync.RWMutex
	token     string
	listeners []func(signedIn bool)
	log       *logger.Logger
}

// NewSession creates an empty (signed-out) session.
func NewSession(log *logger.Logger) *Session {
	return &Session{log: log}
}

// SignIn stores the bearer token and notifies listeners. An empty
// token is treated as a sign-out.
func (s *Session) SignIn(token string) {
	if token == "" {
		s.SignOut()
		return
	}

	s.mu.Lock()
	s.token = token
	listeners := append([]func(bool){}, s.listeners...)
	s.mu.Unlock()

	s.log.Info("auth: signed in")
	for _, fn := range listeners {
		fn(true)
	}
}

// SignOut clears the stored token and notifies listeners.
func (s *Session) SignOut() {
	s.mu.Lock()
	wasSignedIn := s.token != ""
	s.token = ""
	listeners := append([]func(bool){}, s.listeners...)
	s.mu.Unlock()

	if !wasSignedIn {
		return
	}
	s.log.Info("auth: signed out")
	for _, fn := range listeners {
		fn(false)
	}
}

// SignedIn reports whether a bearer token is held.
func (s *Session) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the current bearer token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// OnChange registers a callback fired on every sign-in / sign-out
// transition. Callbacks run on the caller's goroutine.
func (s *Session) OnChange(fn func(signedIn bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

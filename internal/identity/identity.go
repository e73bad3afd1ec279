// Package identity abstracts the authentication collaborator. The core
// only ever consumes a current-user snapshot and a change notification.
package identity

import "sync"

// Provider supplies the authenticated user. CurrentUserID returns ""
// when nobody is signed in.
type Provider interface {
	CurrentUserID() string
	OnIdentityChange(fn func(userID string))
}

// Static is a Provider backed by an explicit value, set by whoever owns
// the session (dev wiring, tests). It replaces the ambient global user
// cache of earlier revisions with an injectable object.
type Static struct {
	mu        sync.RWMutex
	userID    string
	listeners []func(string)
}

func NewStatic(userID string) *Static {
	return &Static{userID: userID}
}

func (s *Static) CurrentUserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Static) OnIdentityChange(fn func(userID string)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// SetUser updates the current user and notifies listeners. Listeners
// receive every update, including no-op ones; debouncing is up to them.
func (s *Static) SetUser(userID string) {
	s.mu.Lock()
	s.userID = userID
	listeners := make([]func(string), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(userID)
	}
}

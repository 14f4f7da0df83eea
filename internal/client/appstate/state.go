// Package appstate holds the application's session state (user, token,
// authenticated/guest flags) in one explicit container with a defined
// lifecycle: Init at app start, Teardown on logout. Screens read from here
// instead of ambient singletons.
package appstate

import (
	"context"
	"sync"

	"github.com/sangamlabs/sangam/internal/client/session"
	"github.com/sangamlabs/sangam/internal/client/store"
	"github.com/sangamlabs/sangam/internal/logging"
)

type State struct {
	mu sync.RWMutex

	sessions *session.Manager
	store    store.Store
	log      logging.Logger

	user          *session.UserSnapshot
	token         string
	authenticated bool
	guest         bool
}

func New(sessions *session.Manager, st store.Store, log logging.Logger) *State {
	return &State{sessions: sessions, store: st, log: log}
}

// Init restores a previously persisted session. It must run once at app
// start, before any authenticated screen renders. An expired or missing
// session leaves the state unauthenticated; the caller routes to login
// without showing an error.
func (s *State) Init(ctx context.Context) {
	if sess, ok := s.sessions.Restore(ctx); ok {
		s.mu.Lock()
		s.user = sess.User
		s.token = sess.Token
		s.authenticated = true
		s.mu.Unlock()
		return
	}

	guest, err := s.store.Get(ctx, store.KeyGuestMode)
	if err != nil {
		s.log.Warn(ctx, "guest flag read failed", "error", err)
		return
	}
	if string(guest) == "1" {
		s.mu.Lock()
		s.guest = true
		s.mu.Unlock()
	}
}

// SetSession persists the credential triple and marks the state
// authenticated. The store write is sequenced before the state flips, so
// navigation to an authenticated screen never outruns persistence.
func (s *State) SetSession(ctx context.Context, token string, user *session.UserSnapshot) error {
	if err := s.sessions.Save(ctx, token, user); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.authenticated = true
	s.guest = false
	s.mu.Unlock()
	return nil
}

// SetUser replaces the in-memory and persisted user snapshot after an
// explicit refresh.
func (s *State) SetUser(ctx context.Context, user *session.UserSnapshot) error {
	if err := s.sessions.UpdateUser(ctx, user); err != nil {
		return err
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// EnterGuestMode flags the session as a guest browse session.
func (s *State) EnterGuestMode(ctx context.Context) error {
	if err := s.store.Set(ctx, store.KeyGuestMode, []byte("1")); err != nil {
		return err
	}
	s.mu.Lock()
	s.guest = true
	s.mu.Unlock()
	return nil
}

// Teardown clears the persisted session and resets the container (logout).
func (s *State) Teardown(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, store.KeyGuestMode); err != nil {
		s.log.Warn(ctx, "guest flag delete failed", "error", err)
	}

	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.authenticated = false
	s.guest = false
	s.mu.Unlock()
	return nil
}

func (s *State) User() *session.UserSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *State) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *State) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

func (s *State) IsGuest() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.guest
}

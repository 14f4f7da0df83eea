// Package session decides whether a previously persisted session can be
// trusted without contacting the server, and maintains the credential triple
// (token, user snapshot, session timestamp) in the local store.
//
// The policy is sliding expiration: the timestamp is refreshed on restore and
// on successful authenticated use, so continued activity extends the session
// while inactivity beyond the timeout invalidates it.
package session

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/sangamlabs/sangam/internal/client/store"
	"github.com/sangamlabs/sangam/internal/logging"
)

// Timeout is the maximum allowed inactivity before a stored session is
// considered expired.
const Timeout = 24 * time.Hour

// UserSnapshot is a denormalized copy of the authenticated user's server-side
// record cached locally for instant rendering. It becomes stale and is not
// reconciled except when explicitly refreshed via the user-details endpoint.
type UserSnapshot struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ProfileComplete bool   `json:"profile_complete"`
	Package         string `json:"package"`
}

// Session is a restored credential pair.
type Session struct {
	Token string
	User  *UserSnapshot
}

// Manager implements the session validity policy over a credential store.
type Manager struct {
	store store.Store
	log   logging.Logger
	now   func() time.Time
}

func NewManager(st store.Store, log logging.Logger) *Manager {
	return &Manager{store: st, log: log, now: time.Now}
}

// Save persists the credential triple in one atomic write so the store
// never holds a token without its user snapshot and timestamp.
func (m *Manager) Save(ctx context.Context, token string, user *UserSnapshot) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	millis := strconv.FormatInt(m.now().UnixMilli(), 10)
	return m.store.SetMany(ctx, map[string][]byte{
		store.KeyToken:            []byte(token),
		store.KeyUser:             data,
		store.KeySessionTimestamp: []byte(millis),
	})
}

// Touch refreshes the session timestamp to now.
func (m *Manager) Touch(ctx context.Context) error {
	millis := strconv.FormatInt(m.now().UnixMilli(), 10)
	return m.store.Set(ctx, store.KeySessionTimestamp, []byte(millis))
}

// IsValid reports whether the stored session should be trusted. It never
// returns an error: any I/O failure is logged and treated as "invalid"
// (fail closed). An expired session is proactively cleared so a stale
// credential cannot be picked up by a later component.
func (m *Manager) IsValid(ctx context.Context) bool {
	token, err := m.store.Get(ctx, store.KeyToken)
	if err != nil {
		m.log.Error(ctx, "session check: token read failed", "error", err)
		return false
	}
	user, err := m.store.Get(ctx, store.KeyUser)
	if err != nil {
		m.log.Error(ctx, "session check: user read failed", "error", err)
		return false
	}
	if len(token) == 0 || len(user) == 0 {
		return false
	}

	raw, err := m.store.Get(ctx, store.KeySessionTimestamp)
	if err != nil {
		m.log.Error(ctx, "session check: timestamp read failed", "error", err)
		return false
	}
	if len(raw) == 0 {
		// No timestamp at all: fail closed, not open.
		return false
	}

	millis, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		m.log.Warn(ctx, "session check: unparsable timestamp", "value", string(raw))
		return false
	}

	age := m.now().Sub(time.UnixMilli(millis))
	if age > Timeout {
		m.clearCredentials(ctx)
		return false
	}

	return true
}

// Restore returns the cached session when it is valid, refreshing the
// timestamp (sliding expiration). The boolean is false when no usable
// session exists; callers route to the login screen in that case.
func (m *Manager) Restore(ctx context.Context) (*Session, bool) {
	if !m.IsValid(ctx) {
		return nil, false
	}

	token, err := m.store.Get(ctx, store.KeyToken)
	if err != nil {
		m.log.Error(ctx, "session restore: token read failed", "error", err)
		return nil, false
	}
	raw, err := m.store.Get(ctx, store.KeyUser)
	if err != nil {
		m.log.Error(ctx, "session restore: user read failed", "error", err)
		return nil, false
	}

	var user UserSnapshot
	if err := json.Unmarshal(raw, &user); err != nil {
		m.log.Warn(ctx, "session restore: corrupt user snapshot", "error", err)
		return nil, false
	}

	if err := m.Touch(ctx); err != nil {
		m.log.Warn(ctx, "session restore: timestamp refresh failed", "error", err)
	}

	return &Session{Token: string(token), User: &user}, true
}

// UpdateUser replaces the cached user snapshot, e.g. after an explicit
// refresh from the user-details endpoint.
func (m *Manager) UpdateUser(ctx context.Context, user *UserSnapshot) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, store.KeyUser, data)
}

// Clear removes the credential triple (logout or detected expiry).
func (m *Manager) Clear(ctx context.Context) error {
	for _, key := range []string{store.KeyToken, store.KeyUser, store.KeySessionTimestamp} {
		if err := m.store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) clearCredentials(ctx context.Context) {
	if err := m.Clear(ctx); err != nil {
		m.log.Error(ctx, "session cleanup failed", "error", err)
	}
}

// Token implements the api.TokenSource capability: it reads the bearer token
// from the store without validating the session.
func (m *Manager) Token(ctx context.Context) (string, error) {
	v, err := m.store.Get(ctx, store.KeyToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

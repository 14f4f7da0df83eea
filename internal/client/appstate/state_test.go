package appstate

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangamlabs/sangam/internal/client/session"
	"github.com/sangamlabs/sangam/internal/client/store"
	"github.com/sangamlabs/sangam/internal/logging"
)

type memStore struct {
	m map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{m: make(map[string][]byte)}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.m[key], nil
}

func (s *memStore) Set(ctx context.Context, key string, value []byte) error {
	s.m[key] = value
	return nil
}

func (s *memStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	for key, value := range entries {
		s.m[key] = value
	}
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	delete(s.m, key)
	return nil
}

func (s *memStore) Clear(ctx context.Context) error {
	s.m = make(map[string][]byte)
	return nil
}

func newTestState() (*State, *memStore) {
	st := newMemStore()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return New(session.NewManager(st, log), st, log), st
}

func TestInit_NoStoredSession(t *testing.T) {
	s, _ := newTestState()
	s.Init(context.Background())

	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
}

func TestSetSession_ThenInitRestores(t *testing.T) {
	s, st := newTestState()
	ctx := context.Background()

	user := &session.UserSnapshot{ID: 3, Email: "p@q.r"}
	require.NoError(t, s.SetSession(ctx, "tok", user))
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "tok", s.Token())

	// a fresh state over the same store restores the session
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	fresh := New(session.NewManager(st, log), st, log)
	fresh.Init(ctx)
	assert.True(t, fresh.IsAuthenticated())
	require.NotNil(t, fresh.User())
	assert.EqualValues(t, 3, fresh.User().ID)
}

func TestInit_ExpiredSessionStaysLoggedOut(t *testing.T) {
	s, st := newTestState()
	ctx := context.Background()

	old := time.Now().Add(-25 * time.Hour).UnixMilli()
	st.m[store.KeyToken] = []byte("tok")
	st.m[store.KeyUser] = []byte(`{"id":1}`)
	st.m[store.KeySessionTimestamp] = []byte(strconv.FormatInt(old, 10))

	s.Init(ctx)
	assert.False(t, s.IsAuthenticated())
}

func TestTeardown_ClearsEverything(t *testing.T) {
	s, st := newTestState()
	ctx := context.Background()

	require.NoError(t, s.SetSession(ctx, "tok", &session.UserSnapshot{ID: 1}))
	require.NoError(t, s.Teardown(ctx))

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	assert.Nil(t, st.m[store.KeyToken])
	assert.Nil(t, st.m[store.KeyUser])
}

func TestGuestMode_PersistsAcrossInit(t *testing.T) {
	s, st := newTestState()
	ctx := context.Background()

	require.NoError(t, s.EnterGuestMode(ctx))
	assert.True(t, s.IsGuest())

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	fresh := New(session.NewManager(st, log), st, log)
	fresh.Init(ctx)
	assert.True(t, fresh.IsGuest())
	assert.False(t, fresh.IsAuthenticated())
}

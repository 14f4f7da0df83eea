package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangamlabs/sangam/internal/logging"
)

type staticTokens struct {
	token string
	err   error
}

func (s *staticTokens) Token(ctx context.Context) (string, error) {
	return s.token, s.err
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestClient(t *testing.T, tokens TokenSource, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL, Tokens: tokens, Logger: testLogger()})
}

func TestInterceptor_SetsBearerHeaderWhenTokenPresent(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, &staticTokens{token: "abc123"}, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"success"}`))
	})

	require.NoError(t, c.ExpressInterest(context.Background(), 5))
	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestInterceptor_NoHeaderWhenTokenAbsent(t *testing.T) {
	var gotAuth string
	var hadHeader bool
	c := newTestClient(t, &staticTokens{token: ""}, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hadHeader = r.Header["Authorization"]
		w.Write([]byte(`{"status":"success"}`))
	})

	require.NoError(t, c.ExpressInterest(context.Background(), 5))
	assert.Empty(t, gotAuth)
	assert.False(t, hadHeader)
}

func TestInterceptor_TokenLookupFailure_RequestStillSent(t *testing.T) {
	called := false
	c := newTestClient(t, &staticTokens{err: errors.New("keystore down")}, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"status":"success"}`))
	})

	require.NoError(t, c.ExpressInterest(context.Background(), 5))
	assert.True(t, called, "request must be forwarded despite the storage glitch")
}

func TestDo_DefaultHeaders(t *testing.T) {
	c := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"status":"success"}`))
	})

	require.NoError(t, c.ExpressInterest(context.Background(), 1))
}

func TestDo_401MapsToErrUnauthorized(t *testing.T) {
	c := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	err := c.ExpressInterest(context.Background(), 1)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestDo_404MapsToErrNotFound(t *testing.T) {
	c := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Messages(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDo_LogicalErrorBodyOn200(t *testing.T) {
	c := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","message":{"error":["profile incomplete"]}}`))
	})

	err := c.ExpressInterest(context.Background(), 1)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{"profile incomplete"}, apiErr.Messages)
}

func TestDo_TransportErrorMapsToUnavailable(t *testing.T) {
	c := New(Options{BaseURL: "http://127.0.0.1:1", Tokens: nil, Logger: testLogger()})

	err := c.ExpressInterest(context.Background(), 1)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestLogin_ParsesAuthResult(t *testing.T) {
	c := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)
		w.Write([]byte(`{
			"status":"success",
			"message":{"success":["login ok"]},
			"data":{"token":"tok-1","user":{"id":9,"email":"a@b.c","profile_complete":true,"package":"gold"}}
		}`))
	})

	res, err := c.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", res.Token)
	require.NotNil(t, res.User)
	assert.EqualValues(t, 9, res.User.ID)
	assert.True(t, res.User.ProfileComplete)
	assert.Equal(t, "gold", res.User.Package)
}

func TestConversations_ParsesList(t *testing.T) {
	c := newTestClient(t, &staticTokens{token: "t"}, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status":"success",
			"data":{"conversations":[{"id":7,"other_user_id":42}]}
		}`))
	})

	convs, err := c.Conversations(context.Background())
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, "7", convs[0].ID)
	assert.True(t, convs[0].MatchesPeer(42))
	assert.False(t, convs[0].MatchesPeer(99))
}

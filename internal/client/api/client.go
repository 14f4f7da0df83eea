package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sangamlabs/sangam/internal/logging"
)

const defaultTimeout = 15 * time.Second

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. "http://127.0.0.1:8080/api".
	BaseURL string
	// Tokens supplies the bearer token; typically the session manager.
	Tokens TokenSource
	// Timeout bounds each request. Zero means the 15s default.
	Timeout time.Duration
	Logger  logging.Logger
}

// Client talks to the Sangam REST API. The base URL and default headers are
// fixed at construction; the auth interceptor attaches the bearer token to
// every request.
type Client struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := http.RoundTripper(http.DefaultTransport)
	if opts.Tokens != nil {
		transport = &authTransport{base: transport, tokens: opts.Tokens, log: opts.Logger}
	}

	return &Client{
		baseURL: opts.BaseURL,
		http:    &http.Client{Transport: transport, Timeout: timeout},
		log:     opts.Logger,
	}
}

// Login authenticates with email/password.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var res AuthResult
	if err := c.do(ctx, http.MethodPost, "/login", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var res AuthResult
	if err := c.do(ctx, http.MethodPost, "/register", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UserDetails fetches the authoritative user record for an explicit refresh
// of the locally cached snapshot.
func (c *Client) UserDetails(ctx context.Context) (*User, error) {
	var res struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/user/details", nil, &res); err != nil {
		return nil, err
	}
	return res.User, nil
}

// Conversations lists the current user's conversations. The server list is
// the source of truth; the local conversation-id cache is only an
// optimization over it.
func (c *Client) Conversations(ctx context.Context) ([]Conversation, error) {
	var res struct {
		Conversations []Conversation `json:"conversations"`
	}
	if err := c.do(ctx, http.MethodGet, "/conversations", nil, &res); err != nil {
		return nil, err
	}
	return res.Conversations, nil
}

// Messages fetches the messages of one conversation.
func (c *Client) Messages(ctx context.Context, conversationID string) ([]Message, error) {
	var res struct {
		Messages []Message `json:"messages"`
	}
	path := "/conversations/" + url.PathEscape(conversationID) + "/messages"
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res.Messages, nil
}

// SendMessage posts a message to an existing conversation.
func (c *Client) SendMessage(ctx context.Context, conversationID, body string) (*Message, error) {
	var res struct {
		Message *Message `json:"message"`
	}
	path := "/conversations/" + url.PathEscape(conversationID) + "/messages"
	if err := c.do(ctx, http.MethodPost, path, map[string]string{"body": body}, &res); err != nil {
		return nil, err
	}
	return res.Message, nil
}

// CreateConversation creates (or returns the existing) conversation with the
// given peer.
func (c *Client) CreateConversation(ctx context.Context, peerID int64) (*Conversation, error) {
	var res struct {
		Conversation *Conversation `json:"conversation"`
	}
	body := map[string]int64{"peer_id": peerID}
	if err := c.do(ctx, http.MethodPost, "/conversations", body, &res); err != nil {
		return nil, err
	}
	return res.Conversation, nil
}

// ExpressInterest sends an interest to another profile.
func (c *Client) ExpressInterest(ctx context.Context, userID int64) error {
	return c.do(ctx, http.MethodPost, "/express-interest/"+strconv.FormatInt(userID, 10), nil, nil)
}

// RegisterDevice reports the device and FCM token for push notifications.
// Callers treat this as best-effort (see the tasks package).
func (c *Client) RegisterDevice(ctx context.Context, deviceID, fcmToken string) error {
	body := map[string]string{"device_id": deviceID, "fcm_token": fcmToken}
	return c.do(ctx, http.MethodPost, "/device/token", body, nil)
}

// PhotoUploadURL requests a presigned URL for uploading a profile photo.
func (c *Client) PhotoUploadURL(ctx context.Context) (*UploadTarget, error) {
	var res UploadTarget
	if err := c.do(ctx, http.MethodGet, "/profile/photo-upload-url", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// do performs one request/response cycle: JSON encoding, default headers,
// transport dispatch, envelope decoding, and error mapping.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.mapTransportError(err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		// Surfaced as-is; forcing logout is the caller's policy.
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.mapTransportError(err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("malformed response (status %d): %w", resp.StatusCode, err)
	}

	// The envelope may carry a graceful error body even on HTTP 200, so both
	// the transport status and the status field are inspected.
	if resp.StatusCode >= 400 || env.Status == statusError {
		return &Error{StatusCode: resp.StatusCode, Messages: env.errorMessages()}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("malformed response data: %w", err)
		}
	}

	return nil
}

func (c *Client) mapTransportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, urlErr.Err)
	}
	return err
}

package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// Error is a logical error reported inside a well-formed envelope
// (HTTP 200 with status "error", or a 4xx body carrying messages).
type Error struct {
	StatusCode int
	Messages   []string
}

func (e *Error) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("api error (status %d)", e.StatusCode)
	}
	return strings.Join(e.Messages, "; ")
}

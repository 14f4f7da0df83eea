package api

import "encoding/json"

const (
	statusSuccess = "success"
	statusError   = "error"
)

// envelope is the wire format every endpoint responds with:
//
//	{status: "success"|"error", message?: {success|error: []}, data?: {...}}
type envelope struct {
	Status  string          `json:"status"`
	Message *messageBag     `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type messageBag struct {
	Success []string `json:"success,omitempty"`
	Error   []string `json:"error,omitempty"`
}

func (e *envelope) errorMessages() []string {
	if e.Message == nil {
		return nil
	}
	return e.Message.Error
}

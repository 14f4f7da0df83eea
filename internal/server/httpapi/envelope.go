// Package httpapi exposes the REST surface of the service. Every
// response is wrapped in a common envelope so clients can inspect the
// logical status independently of the transport status.
package httpapi

import "github.com/gofiber/fiber/v2"

const (
	statusSuccess = "success"
	statusError   = "error"
)

type messageBag struct {
	Success []string `json:"success,omitempty"`
	Error   []string `json:"error,omitempty"`
}

type envelope struct {
	Status  string      `json:"status"`
	Message *messageBag `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a success envelope with the given payload.
func Success(c *fiber.Ctx, httpStatus int, message string, data interface{}) error {
	env := envelope{Status: statusSuccess, Data: data}
	if message != "" {
		env.Message = &messageBag{Success: []string{message}}
	}
	return c.Status(httpStatus).JSON(env)
}

// Error writes an error envelope.
func Error(c *fiber.Ctx, httpStatus int, messages ...string) error {
	return c.Status(httpStatus).JSON(envelope{
		Status:  statusError,
		Message: &messageBag{Error: messages},
	})
}

// Package logging provides the structured logger shared by the client
// CLI and the server services, with slog and zap backed adapters.
package logging

import "context"

// Logger accepts a message plus alternating key/value pairs:
//
//	log.Warn(ctx, "quota check skipped", "user_id", id)
type Logger interface {
	// Debug logs fine-grained diagnostic detail.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs normal operation events.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying the given key/value pairs.
	With(args ...any) Logger
}

// Package store implements the client's local credential store: durable,
// app-local persistence of small sensitive values (token, serialized user
// snapshot, session timestamp, device id) surviving restarts.
//
// The store is a capability interface over opaque key-value pairs. It
// enforces no referential integrity between entries; higher layers (the
// session manager) decide which combinations of entries make a usable
// session.
package store

import "context"

// Well-known entry keys.
const (
	KeyToken            = "token"
	KeyUser             = "user"
	KeySessionTimestamp = "sessionTimestamp"
	KeyGuestMode        = "guestMode"
	KeyFCMToken         = "fcm_token"
	KeyDeviceID         = "device_id"
	KeyThemeMode        = "themeMode"
	KeyLimitation       = "limitation"
)

// Store is the credential store contract.
//
// Contract:
//   - Get returns (nil, nil) when the key is absent; an error only on I/O
//     failure.
//   - Set overwrites or creates an entry.
//   - SetMany writes all entries or none of them.
//   - Delete is idempotent; absence is not an error.
//   - Clear removes every entry.
//
// All operations take a context and may block on the underlying storage.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, entries map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

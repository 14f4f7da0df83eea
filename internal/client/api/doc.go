// Package api contains the HTTP client the Sangam app uses to talk to the
// backend.
//
// # Overview
//
// The package provides:
//  1. A Client with typed operations for the REST API: Login/Register,
//     UserDetails, Conversations/Messages/SendMessage/CreateConversation,
//     ExpressInterest, RegisterDevice, and PhotoUploadURL.
//  2. An http.RoundTripper that injects the bearer token read from the
//     credential store before each request. A failed token lookup is logged
//     and the request is forwarded unmodified; a missing token sends the
//     request unauthenticated and lets the server answer 401.
//  3. Response envelope handling: every payload follows
//     {status, message{success|error}, data}; consumers must inspect both the
//     transport status and the status field, and this package does it in one
//     place.
//  4. Normalization of heterogeneous conversation payloads (legacy field-name
//     variants) into one canonical record, so the rest of the client never
//     probes optional fields.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound. A logical
// error body (HTTP 200, status "error") surfaces as *Error carrying the
// server's messages. No retries and no token refresh happen here; reacting
// to 401 (forcing logout) is the caller's responsibility.
package api

package api

import "time"

// User is the server-side user record as returned by the auth and
// user-details endpoints.
type User struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ProfileComplete bool   `json:"profile_complete"`
	Package         string `json:"package"`
}

// Limitation describes the daily quotas of the user's membership package.
type Limitation struct {
	InterestsPerDay int `json:"interests_per_day"`
	MessagesPerDay  int `json:"messages_per_day"`
}

// AuthResult is the payload of successful login/registration.
type AuthResult struct {
	Token      string      `json:"token"`
	User       *User       `json:"user"`
	Limitation *Limitation `json:"limitation,omitempty"`
}

// Message is one chat message inside a conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// UploadTarget is a presigned URL for uploading a profile photo.
type UploadTarget struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

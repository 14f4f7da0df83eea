package models

import "time"

// Conversation is a two-party message thread. UserAID is always the
// smaller of the two ids so a pair maps to exactly one row.
type Conversation struct {
	ID            int64
	UserAID       int64
	UserBID       int64
	CreatedAt     time.Time
	LastMessageAt *time.Time
}

// Counterpart returns the other participant relative to userID.
func (c *Conversation) Counterpart(userID int64) int64 {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}

type Message struct {
	ID             int64
	ConversationID int64
	SenderID       int64
	Body           string
	CreatedAt      time.Time
}

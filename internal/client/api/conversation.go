package api

import (
	"encoding/json"
	"strconv"
	"time"
)

// Conversation is the canonical client-side view of a server conversation
// record. Historical API versions exposed the counterpart user under several
// different field names; all of that shape-probing is confined to
// UnmarshalJSON so the rest of the client works with one typed record.
type Conversation struct {
	ID string

	// counterpart is the peer user id derived from the first present legacy
	// field, in the documented precedence order. Zero when no scalar field
	// was present.
	counterpart int64

	// Participants is the raw participant id list, when the payload carried
	// one. Membership here is the last matching fallback.
	Participants []int64

	LastMessageAt time.Time
}

// legacy scalar counterpart fields in precedence order:
// other_user.id, other_user_id, user_id, receiver_id, sender_id.
type conversationWire struct {
	ID        flexibleID `json:"id"`
	OtherUser *struct {
		ID int64 `json:"id"`
	} `json:"other_user"`
	OtherUserID   int64             `json:"other_user_id"`
	UserID        int64             `json:"user_id"`
	ReceiverID    int64             `json:"receiver_id"`
	SenderID      int64             `json:"sender_id"`
	Participants  []json.RawMessage `json:"participants"`
	LastMessageAt time.Time         `json:"last_message_at"`
}

func (c *Conversation) UnmarshalJSON(data []byte) error {
	var w conversationWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	c.ID = string(w.ID)
	c.LastMessageAt = w.LastMessageAt

	// First present field wins; later fields are ignored even if set. This
	// precedence replicates the matching behavior existing clients rely on.
	switch {
	case w.OtherUser != nil && w.OtherUser.ID != 0:
		c.counterpart = w.OtherUser.ID
	case w.OtherUserID != 0:
		c.counterpart = w.OtherUserID
	case w.UserID != 0:
		c.counterpart = w.UserID
	case w.ReceiverID != 0:
		c.counterpart = w.ReceiverID
	case w.SenderID != 0:
		c.counterpart = w.SenderID
	}

	c.Participants = c.Participants[:0]
	for _, raw := range w.Participants {
		if id, ok := participantID(raw); ok {
			c.Participants = append(c.Participants, id)
		}
	}

	return nil
}

// Counterpart returns the peer user id derived during normalization.
func (c *Conversation) Counterpart() (int64, bool) {
	return c.counterpart, c.counterpart != 0
}

// MatchesPeer reports whether this conversation pairs the current user with
// the given peer: the canonical counterpart matches, or the peer appears in
// the participants list.
func (c *Conversation) MatchesPeer(peerID int64) bool {
	if c.counterpart != 0 {
		if c.counterpart == peerID {
			return true
		}
	}
	for _, p := range c.Participants {
		if p == peerID {
			return true
		}
	}
	return false
}

// participantID extracts a user id from one participants element, which may
// be a bare number, a numeric string, or an object carrying id/user_id.
func participantID(raw json.RawMessage) (int64, bool) {
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, n != 0
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		n, err := strconv.ParseInt(s, 10, 64)
		return n, err == nil && n != 0
	}

	var obj struct {
		ID     int64 `json:"id"`
		UserID int64 `json:"user_id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.ID != 0 {
			return obj.ID, true
		}
		if obj.UserID != 0 {
			return obj.UserID, true
		}
	}

	return 0, false
}

// flexibleID accepts a JSON number or string and stores the textual form.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}

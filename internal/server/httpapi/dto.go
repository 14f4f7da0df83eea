package httpapi

import (
	"strconv"
	"time"

	"github.com/sangamlabs/sangam/internal/server/models"
	"github.com/sangamlabs/sangam/internal/server/services"
)

type userPayload struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ProfileComplete bool   `json:"profile_complete"`
	Package         string `json:"package"`
}

func toUserPayload(u *models.User) *userPayload {
	return &userPayload{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		ProfileComplete: u.ProfileComplete,
		Package:         u.Package,
	}
}

type otherUserPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type conversationPayload struct {
	ID            int64             `json:"id"`
	OtherUser     *otherUserPayload `json:"other_user"`
	OtherUserID   int64             `json:"other_user_id"`
	Participants  []int64           `json:"participants"`
	LastMessageAt *time.Time        `json:"last_message_at,omitempty"`
}

// toConversationPayload shapes a thread for the API. The counterpart
// appears both as the nested other_user object and the flat
// other_user_id field older clients read.
func toConversationPayload(v *services.ConversationView) *conversationPayload {
	return &conversationPayload{
		ID:            v.Conversation.ID,
		OtherUser:     &otherUserPayload{ID: v.OtherUser.ID, Name: v.OtherUser.Name},
		OtherUserID:   v.OtherUser.ID,
		Participants:  []int64{v.Conversation.UserAID, v.Conversation.UserBID},
		LastMessageAt: v.Conversation.LastMessageAt,
	}
}

type messagePayload struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

func toMessagePayload(m *models.Message) *messagePayload {
	return &messagePayload{
		ID:             strconv.FormatInt(m.ID, 10),
		ConversationID: strconv.FormatInt(m.ConversationID, 10),
		SenderID:       m.SenderID,
		Body:           m.Body,
		CreatedAt:      m.CreatedAt,
	}
}

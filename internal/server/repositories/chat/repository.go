package chat

import (
	"context"

	"github.com/sangamlabs/sangam/internal/server/models"
)

// Repository defines persistence access for conversations and messages.
type Repository interface {
	ListConversations(ctx context.Context, userID int64) ([]*models.Conversation, error)
	GetConversation(ctx context.Context, id int64) (*models.Conversation, error)
	FindOrCreateConversation(ctx context.Context, userID, peerID int64) (*models.Conversation, error)
	ListMessages(ctx context.Context, conversationID int64) ([]*models.Message, error)
	CreateMessage(ctx context.Context, msg *models.Message) error
}

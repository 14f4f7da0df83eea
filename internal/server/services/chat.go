package services

import (
	"context"
	"fmt"

	"github.com/sangamlabs/sangam/internal/common"
	"github.com/sangamlabs/sangam/internal/server/models"
	"github.com/sangamlabs/sangam/internal/server/repositories/chat"
	"github.com/sangamlabs/sangam/internal/server/repositories/users"
)

// ConversationView is a conversation joined with the counterpart's
// public profile, shaped for the authenticated caller.
type ConversationView struct {
	Conversation *models.Conversation
	OtherUser    *models.User
}

// ChatService implements conversation listing and messaging.
type ChatService struct {
	chats chat.Repository
	users users.Repository
}

func NewChatService(chats chat.Repository, users users.Repository) *ChatService {
	return &ChatService{chats: chats, users: users}
}

// ListConversations returns the caller's threads, most recent first.
func (s *ChatService) ListConversations(ctx context.Context, userID int64) ([]*ConversationView, error) {
	conversations, err := s.chats.ListConversations(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*ConversationView, 0, len(conversations))
	for _, c := range conversations {
		other, err := s.users.GetByID(ctx, c.Counterpart(userID))
		if err != nil {
			return nil, fmt.Errorf("failed to load counterpart: %w", err)
		}
		views = append(views, &ConversationView{Conversation: c, OtherUser: other})
	}
	return views, nil
}

// StartConversation finds or creates the thread between the caller and
// a peer.
func (s *ChatService) StartConversation(ctx context.Context, userID, peerID int64) (*ConversationView, error) {
	if userID == peerID {
		return nil, fmt.Errorf("%w: cannot start a conversation with yourself", common.ErrorValidation)
	}

	other, err := s.users.GetByID(ctx, peerID)
	if err != nil {
		return nil, err
	}

	conversation, err := s.chats.FindOrCreateConversation(ctx, userID, peerID)
	if err != nil {
		return nil, err
	}

	return &ConversationView{Conversation: conversation, OtherUser: other}, nil
}

// Messages returns the full thread. Callers may only read
// conversations they participate in.
func (s *ChatService) Messages(ctx context.Context, userID, conversationID int64) ([]*models.Message, error) {
	if _, err := s.authorized(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	return s.chats.ListMessages(ctx, conversationID)
}

// SendMessage appends a message to an existing thread.
func (s *ChatService) SendMessage(ctx context.Context, userID, conversationID int64, body string) (*models.Message, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: message body is required", common.ErrorValidation)
	}

	if _, err := s.authorized(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		ConversationID: conversationID,
		SenderID:       userID,
		Body:           body,
	}
	if err := s.chats.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *ChatService) authorized(ctx context.Context, userID, conversationID int64) (*models.Conversation, error) {
	conversation, err := s.chats.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation.UserAID != userID && conversation.UserBID != userID {
		return nil, common.ErrorNotFound
	}
	return conversation, nil
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangamlabs/sangam/internal/common"
	"github.com/sangamlabs/sangam/internal/server/models"
)

type fakeChatRepo struct {
	conversations map[int64]*models.Conversation
	messages      map[int64][]*models.Message
	nextConv      int64
	nextMsg       int64
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		conversations: map[int64]*models.Conversation{},
		messages:      map[int64][]*models.Message{},
		nextConv:      1,
		nextMsg:       1,
	}
}

func (r *fakeChatRepo) ListConversations(ctx context.Context, userID int64) ([]*models.Conversation, error) {
	var result []*models.Conversation
	for _, c := range r.conversations {
		if c.UserAID == userID || c.UserBID == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *fakeChatRepo) GetConversation(ctx context.Context, id int64) (*models.Conversation, error) {
	c, ok := r.conversations[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return c, nil
}

func (r *fakeChatRepo) FindOrCreateConversation(ctx context.Context, userID, peerID int64) (*models.Conversation, error) {
	a, b := userID, peerID
	if a > b {
		a, b = b, a
	}
	for _, c := range r.conversations {
		if c.UserAID == a && c.UserBID == b {
			return c, nil
		}
	}
	c := &models.Conversation{ID: r.nextConv, UserAID: a, UserBID: b, CreatedAt: time.Now()}
	r.nextConv++
	r.conversations[c.ID] = c
	return c, nil
}

func (r *fakeChatRepo) ListMessages(ctx context.Context, conversationID int64) ([]*models.Message, error) {
	return r.messages[conversationID], nil
}

func (r *fakeChatRepo) CreateMessage(ctx context.Context, msg *models.Message) error {
	msg.ID = r.nextMsg
	r.nextMsg++
	msg.CreatedAt = time.Now()
	r.messages[msg.ConversationID] = append(r.messages[msg.ConversationID], msg)
	now := msg.CreatedAt
	r.conversations[msg.ConversationID].LastMessageAt = &now
	return nil
}

func seedUsers(repo *fakeUserRepo, names ...string) {
	ctx := context.Background()
	for _, name := range names {
		_ = repo.Create(ctx, &models.User{Name: name, Email: name + "@example.com", Package: models.PackageFree})
	}
}

func TestStartConversationCreatesOnce(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	seedUsers(userRepo, "asha", "ravi")
	svc := NewChatService(newFakeChatRepo(), userRepo)

	first, err := svc.StartConversation(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.OtherUser.ID)

	second, err := svc.StartConversation(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, first.Conversation.ID, second.Conversation.ID)
}

func TestStartConversationWithSelf(t *testing.T) {
	userRepo := newFakeUserRepo()
	seedUsers(userRepo, "asha")
	svc := NewChatService(newFakeChatRepo(), userRepo)

	_, err := svc.StartConversation(context.Background(), 1, 1)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestStartConversationUnknownPeer(t *testing.T) {
	userRepo := newFakeUserRepo()
	seedUsers(userRepo, "asha")
	svc := NewChatService(newFakeChatRepo(), userRepo)

	_, err := svc.StartConversation(context.Background(), 1, 99)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSendAndReadMessages(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	seedUsers(userRepo, "asha", "ravi")
	svc := NewChatService(newFakeChatRepo(), userRepo)

	view, err := svc.StartConversation(ctx, 1, 2)
	require.NoError(t, err)

	msg, err := svc.SendMessage(ctx, 1, view.Conversation.ID, "namaste")
	require.NoError(t, err)
	assert.Equal(t, int64(1), msg.SenderID)

	messages, err := svc.Messages(ctx, 2, view.Conversation.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "namaste", messages[0].Body)
}

func TestMessagesOutsiderDenied(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	seedUsers(userRepo, "asha", "ravi", "kiran")
	svc := NewChatService(newFakeChatRepo(), userRepo)

	view, err := svc.StartConversation(ctx, 1, 2)
	require.NoError(t, err)

	_, err = svc.Messages(ctx, 3, view.Conversation.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSendMessageEmptyBody(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	seedUsers(userRepo, "asha", "ravi")
	svc := NewChatService(newFakeChatRepo(), userRepo)

	view, err := svc.StartConversation(ctx, 1, 2)
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, 1, view.Conversation.ID, "")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

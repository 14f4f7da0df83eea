package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sangamlabs/sangam/internal/common"
	"github.com/sangamlabs/sangam/internal/server/auth"
	"github.com/sangamlabs/sangam/internal/server/models"
	"github.com/sangamlabs/sangam/internal/server/services"
)

// ChatService is the messaging surface the handlers depend on.
type ChatService interface {
	ListConversations(ctx context.Context, userID int64) ([]*services.ConversationView, error)
	StartConversation(ctx context.Context, userID, peerID int64) (*services.ConversationView, error)
	Messages(ctx context.Context, userID, conversationID int64) ([]*models.Message, error)
	SendMessage(ctx context.Context, userID, conversationID int64, body string) (*models.Message, error)
}

// ChatHandler exposes conversation and message endpoints.
type ChatHandler struct {
	chat ChatService
}

func NewChatHandler(chat ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// List handles GET /api/conversations.
func (h *ChatHandler) List(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return common.ErrorUnauthorized
	}

	views, err := h.chat.ListConversations(c.UserContext(), userID)
	if err != nil {
		return err
	}

	conversations := make([]*conversationPayload, 0, len(views))
	for _, v := range views {
		conversations = append(conversations, toConversationPayload(v))
	}
	return Success(c, http.StatusOK, "", fiber.Map{"conversations": conversations})
}

type createConversationRequest struct {
	PeerID int64 `json:"peer_id"`
}

// Create handles POST /api/conversations.
func (h *ChatHandler) Create(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return common.ErrorUnauthorized
	}

	var req createConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", common.ErrorValidation)
	}
	if req.PeerID == 0 {
		return fmt.Errorf("%w: peer_id is required", common.ErrorValidation)
	}

	view, err := h.chat.StartConversation(c.UserContext(), userID, req.PeerID)
	if err != nil {
		return err
	}

	return Success(c, http.StatusCreated, "", fiber.Map{"conversation": toConversationPayload(view)})
}

// Messages handles GET /api/conversations/:id/messages.
func (h *ChatHandler) Messages(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return common.ErrorUnauthorized
	}

	conversationID, err := conversationIDParam(c)
	if err != nil {
		return err
	}

	messages, err := h.chat.Messages(c.UserContext(), userID, conversationID)
	if err != nil {
		return err
	}

	payload := make([]*messagePayload, 0, len(messages))
	for _, m := range messages {
		payload = append(payload, toMessagePayload(m))
	}
	return Success(c, http.StatusOK, "", fiber.Map{"messages": payload})
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

// Send handles POST /api/conversations/:id/messages.
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return common.ErrorUnauthorized
	}

	conversationID, err := conversationIDParam(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", common.ErrorValidation)
	}

	msg, err := h.chat.SendMessage(c.UserContext(), userID, conversationID, req.Body)
	if err != nil {
		return err
	}

	return Success(c, http.StatusCreated, "", fiber.Map{"message": toMessagePayload(msg)})
}

func conversationIDParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid conversation id", common.ErrorValidation)
	}
	return id, nil
}

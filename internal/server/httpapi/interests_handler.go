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
)

// InterestService is the interest surface the handlers depend on.
type InterestService interface {
	Express(ctx context.Context, fromUserID, toUserID int64) (*models.Interest, error)
	Received(ctx context.Context, userID int64) ([]*models.Interest, error)
}

// InterestsHandler exposes the express-interest endpoints.
type InterestsHandler struct {
	interests InterestService
}

func NewInterestsHandler(interests InterestService) *InterestsHandler {
	return &InterestsHandler{interests: interests}
}

// Express handles POST /api/express-interest/:id.
func (h *InterestsHandler) Express(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return common.ErrorUnauthorized
	}

	toUserID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid user id", common.ErrorValidation)
	}

	interest, err := h.interests.Express(c.UserContext(), userID, toUserID)
	if err != nil {
		return err
	}

	return Success(c, http.StatusCreated, "interest sent", fiber.Map{
		"interest": fiber.Map{
			"id":           interest.ID,
			"from_user_id": interest.FromUserID,
			"to_user_id":   interest.ToUserID,
			"created_at":   interest.CreatedAt,
		},
	})
}

// Received handles GET /api/interests/received.
func (h *InterestsHandler) Received(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return common.ErrorUnauthorized
	}

	interests, err := h.interests.Received(c.UserContext(), userID)
	if err != nil {
		return err
	}

	payload := make([]fiber.Map, 0, len(interests))
	for _, i := range interests {
		payload = append(payload, fiber.Map{
			"id":           i.ID,
			"from_user_id": i.FromUserID,
			"to_user_id":   i.ToUserID,
			"created_at":   i.CreatedAt,
		})
	}
	return Success(c, http.StatusOK, "", fiber.Map{"interests": payload})
}

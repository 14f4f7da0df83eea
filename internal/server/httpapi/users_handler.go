package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/sangamlabs/sangam/internal/common"
	"github.com/sangamlabs/sangam/internal/server/auth"
	"github.com/sangamlabs/sangam/internal/server/models"
	"github.com/sangamlabs/sangam/internal/server/services"
)

// UserService is the account surface the handlers depend on.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Details(ctx context.Context, userID int64) (*models.User, error)
	LimitationFor(pkg string) services.Limitation
}

// UsersHandler exposes registration, login and profile endpoints.
type UsersHandler struct {
	users UserService
}

func NewUsersHandler(users UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", common.ErrorValidation)
	}

	user, token, err := h.users.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	limitation := h.users.LimitationFor(user.Package)
	return Success(c, http.StatusCreated, "registration successful", fiber.Map{
		"token":      token,
		"user":       toUserPayload(user),
		"limitation": limitation,
	})
}

// Login handles POST /api/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", common.ErrorValidation)
	}

	user, token, err := h.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	limitation := h.users.LimitationFor(user.Package)
	return Success(c, http.StatusOK, "login successful", fiber.Map{
		"token":      token,
		"user":       toUserPayload(user),
		"limitation": limitation,
	})
}

// Details handles GET /api/user/details.
func (h *UsersHandler) Details(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return common.ErrorUnauthorized
	}

	user, err := h.users.Details(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return Success(c, http.StatusOK, "", fiber.Map{"user": toUserPayload(user)})
}

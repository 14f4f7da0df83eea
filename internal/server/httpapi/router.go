package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sangamlabs/sangam/internal/server/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *HealthHandler
	Users          *UsersHandler
	Chat           *ChatHandler
	Interests      *InterestsHandler
	Media          *MediaHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires the HTTP routes under the /api prefix.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api")

	api.Get("/health", cfg.Health.Live)
	api.Get("/health/live", cfg.Health.Live)
	api.Get("/health/ready", cfg.Health.Ready)

	api.Post("/register", cfg.Users.Register)
	api.Post("/login", cfg.Users.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/user/details", cfg.Users.Details)

	protected.Get("/conversations", cfg.Chat.List)
	protected.Post("/conversations", cfg.Chat.Create)
	protected.Get("/conversations/:id/messages", cfg.Chat.Messages)
	protected.Post("/conversations/:id/messages", cfg.Chat.Send)

	protected.Post("/express-interest/:id", cfg.Interests.Express)
	protected.Get("/interests/received", cfg.Interests.Received)

	protected.Post("/device/token", cfg.Media.RegisterDevice)
	protected.Get("/profile/photo-upload-url", cfg.Media.PhotoUploadURL)
}

package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/sangamlabs/sangam/internal/common"
	"github.com/sangamlabs/sangam/internal/server/auth"
)

// MediaService is the photo storage surface the handlers depend on.
type MediaService interface {
	PhotoUploadURL(ctx context.Context, userID int64) (string, string, error)
	PhotoDownloadURL(ctx context.Context, key string) (string, error)
}

// DeviceService is the push token surface the handlers depend on.
type DeviceService interface {
	RegisterToken(ctx context.Context, userID int64, deviceID, fcmToken string) error
}

// MediaHandler exposes photo upload and device token endpoints.
type MediaHandler struct {
	media   MediaService
	devices DeviceService
}

func NewMediaHandler(media MediaService, devices DeviceService) *MediaHandler {
	return &MediaHandler{media: media, devices: devices}
}

// PhotoUploadURL handles GET /api/profile/photo-upload-url.
func (h *MediaHandler) PhotoUploadURL(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return common.ErrorUnauthorized
	}

	key, url, err := h.media.PhotoUploadURL(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return Success(c, http.StatusOK, "", fiber.Map{"key": key, "url": url})
}

type registerDeviceRequest struct {
	DeviceID string `json:"device_id"`
	FCMToken string `json:"fcm_token"`
}

// RegisterDevice handles POST /api/device/token.
func (h *MediaHandler) RegisterDevice(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return common.ErrorUnauthorized
	}

	var req registerDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", common.ErrorValidation)
	}

	if err := h.devices.RegisterToken(c.UserContext(), userID, req.DeviceID, req.FCMToken); err != nil {
		return err
	}

	return Success(c, http.StatusOK, "device registered", nil)
}

package services

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sangamlabs/sangam/internal/common"
)

// DeviceService keeps push notification tokens per device in Redis.
type DeviceService struct {
	redis *redis.Client
}

func NewDeviceService(rdb *redis.Client) *DeviceService {
	return &DeviceService{redis: rdb}
}

func deviceKey(userID int64) string {
	return fmt.Sprintf("devices:%d", userID)
}

// RegisterToken stores the FCM token for one of the user's devices.
func (s *DeviceService) RegisterToken(ctx context.Context, userID int64, deviceID, fcmToken string) error {
	if deviceID == "" || fcmToken == "" {
		return fmt.Errorf("%w: device_id and fcm_token are required", common.ErrorValidation)
	}
	if err := s.redis.HSet(ctx, deviceKey(userID), deviceID, fcmToken).Err(); err != nil {
		return fmt.Errorf("failed to store device token: %w", err)
	}
	return nil
}

// Tokens returns all push tokens registered for the user.
func (s *DeviceService) Tokens(ctx context.Context, userID int64) ([]string, error) {
	entries, err := s.redis.HGetAll(ctx, deviceKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load device tokens: %w", err)
	}
	tokens := make([]string, 0, len(entries))
	for _, token := range entries {
		tokens = append(tokens, token)
	}
	return tokens, nil
}

package interests

import (
	"context"

	"github.com/sangamlabs/sangam/internal/server/models"
)

// Repository defines persistence access for expressed interests.
type Repository interface {
	Create(ctx context.Context, interest *models.Interest) error
	ListReceived(ctx context.Context, toUserID int64) ([]*models.Interest, error)
}

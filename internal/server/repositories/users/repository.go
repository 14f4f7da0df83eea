package users

import (
	"context"

	"github.com/sangamlabs/sangam/internal/server/models"
)

// Repository defines persistence access for member accounts.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePhotoKey(ctx context.Context, id int64, key string) error
}

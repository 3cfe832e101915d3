package repositories

import (
	"context"

	"catalog/internal/models"
)

// UserRepository defines the interface for operator account data access.
// Lookups return an error matching models.ErrNotFound when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

package repositories

import (
	"context"

	"catalog/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// Save inserts p when p.ID is zero, assigning the new id, and overwrites
	// the stored row otherwise. Overwriting a deleted row fails with models.ErrNotFound.
	Save(ctx context.Context, product *models.Product) error
	// FindByID returns an error matching models.ErrNotFound when id is absent.
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	// FindAll returns every product in ascending id order.
	FindAll(ctx context.Context) ([]models.Product, error)
	// DeleteByID removes the product with id. A missing id is not an error.
	DeleteByID(ctx context.Context, id uint) error
}

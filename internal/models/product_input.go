package models

import "github.com/shopspring/decimal"

// ProductInput is the request body for creating or replacing a product.
// Pointer fields distinguish a missing value from a zero value.
type ProductInput struct {
	Name          *string          `json:"name" validate:"required,notblank"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price" validate:"required"`
	StockQuantity *int             `json:"stockQuantity" validate:"required"`
	Category      *string          `json:"category" validate:"required,notblank"`
}

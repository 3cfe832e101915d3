package models

import "time"

// Product lifecycle event types.
const (
	ProductCreated      = "product.created"
	ProductUpdated      = "product.updated"
	ProductStockUpdated = "product.stock_updated"
	ProductDeleted      = "product.deleted"
)

// ProductEvent is published after every successful catalog write.
type ProductEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	ProductID  uint      `json:"product_id"`
	Product    *Product  `json:"product,omitempty"` // nil for deletions
	OccurredAt time.Time `json:"occurred_at"`
}

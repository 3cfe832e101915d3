package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
//
// A Product is a value: NewProduct, WithDetails and WithStockQuantity each
// return a new, validated version instead of mutating the receiver.
type Product struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null"`
	Description   *string   `json:"description" gorm:"type:text"`
	Price         Price     `json:"price" gorm:"not null"`
	StockQuantity int       `json:"stockQuantity" gorm:"not null"`
	Category      string    `json:"category" gorm:"type:varchar(100);not null;index"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time `json:"updatedAt" gorm:"autoUpdateTime:false"`
}

// NewProduct constructs an unsaved product stamped with now.
func NewProduct(name string, description *string, price decimal.Decimal, stockQuantity int, category string, now time.Time) (Product, error) {
	p := Product{
		Name:          name,
		Description:   description,
		Price:         Price{Decimal: price},
		StockQuantity: stockQuantity,
		Category:      category,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := p.validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// WithDetails returns a copy of p with every editable field replaced.
// ID and CreatedAt are carried over unchanged.
func (p Product) WithDetails(name string, description *string, price decimal.Decimal, stockQuantity int, category string, now time.Time) (Product, error) {
	next := p
	next.Name = name
	next.Description = description
	next.Price = Price{Decimal: price}
	next.StockQuantity = stockQuantity
	next.Category = category
	next.UpdatedAt = nextUpdatedAt(p.UpdatedAt, now)
	if err := next.validate(); err != nil {
		return p, err
	}
	return next, nil
}

// WithStockQuantity returns a copy of p holding quantity units of stock.
func (p Product) WithStockQuantity(quantity int, now time.Time) (Product, error) {
	if quantity < 0 {
		return p, NewValidationError("stockQuantity", "stock quantity should be non-negative value")
	}
	next := p
	next.StockQuantity = quantity
	next.UpdatedAt = nextUpdatedAt(p.UpdatedAt, now)
	return next, nil
}

func (p Product) validate() error {
	if _, err := NewPrice(p.Price.Decimal); err != nil {
		return err
	}
	if p.StockQuantity < 0 {
		return NewValidationError("stockQuantity", "stock quantity should be non-negative value")
	}
	return nil
}

// nextUpdatedAt keeps UpdatedAt strictly increasing even when the clock
// has not moved since the previous write.
func nextUpdatedAt(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Microsecond)
}

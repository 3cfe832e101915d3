package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Price limits: a price must fit numeric(19,4) exactly.
const (
	PriceScale         = 4
	PriceIntegerDigits = 15
)

var priceLimit = decimal.New(1, PriceIntegerDigits)

// Price is an exact, positive catalog price.
type Price struct {
	decimal.Decimal
}

// NewPrice returns d as a Price, or an InvalidInput error citing "price".
func NewPrice(d decimal.Decimal) (Price, error) {
	if !d.IsPositive() {
		return Price{}, NewValidationError("price", "price should be positive value")
	}
	if !d.Equal(d.Truncate(PriceScale)) {
		return Price{}, NewValidationError("price", fmt.Sprintf("price must have at most %d decimal places", PriceScale))
	}
	if d.GreaterThanOrEqual(priceLimit) {
		return Price{}, NewValidationError("price", fmt.Sprintf("price must have at most %d integer digits", PriceIntegerDigits))
	}
	return Price{Decimal: d}, nil
}

// MarshalJSON writes the price as a bare JSON number.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

// GormDBDataType keeps prices exact in every store. SQLite gets a text
// column because its NUMERIC affinity converts values to float64.
func (Price) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "sqlite" {
		return "text"
	}
	return fmt.Sprintf("numeric(%d,%d)", PriceIntegerDigits+PriceScale, PriceScale)
}

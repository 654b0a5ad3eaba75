package inventory

import (
	"time"

	"github.com/Dixith12/Billing-App-sub001/internal/pricing"
)

// Item is a catalog entry. Its measurement kind and rates prefill new
// document lines; stock is tracked as a plain quantity.
type Item struct {
	ID            int64                   `json:"id"`
	Name          string                  `json:"name"`
	Kind          pricing.MeasurementKind `json:"measurement_kind"`
	RatePrimary   float64                 `json:"rate_primary"`
	RateSecondary float64                 `json:"rate_secondary"`
	StockQty      float64                 `json:"stock_qty"`
	LowStockAt    float64                 `json:"low_stock_at"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// LowStock reports whether the item has fallen to its reorder level.
func (i Item) LowStock() bool {
	return i.LowStockAt > 0 && i.StockQty <= i.LowStockAt
}

type CreateItemRequest struct {
	Name          string  `json:"name" validate:"required,max=200"`
	Kind          string  `json:"measurement_kind" validate:"required,oneof=height_width weight unit_count"`
	RatePrimary   float64 `json:"rate_primary" validate:"gte=0"`
	RateSecondary float64 `json:"rate_secondary" validate:"gte=0"`
	StockQty      float64 `json:"stock_qty" validate:"gte=0"`
	LowStockAt    float64 `json:"low_stock_at" validate:"gte=0"`
}

type UpdateItemRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	RatePrimary   *float64 `json:"rate_primary,omitempty" validate:"omitempty,gte=0"`
	RateSecondary *float64 `json:"rate_secondary,omitempty" validate:"omitempty,gte=0"`
	LowStockAt    *float64 `json:"low_stock_at,omitempty" validate:"omitempty,gte=0"`
}

type AdjustStockRequest struct {
	Delta  float64 `json:"delta" validate:"required"`
	Reason string  `json:"reason" validate:"max=200"`
}

type ListItemsRequest struct {
	Search  string
	LowOnly bool
	Limit   int
	Offset  int
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a stock record owned by exactly one user.
type InventoryItem struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Category      string          `json:"category"`
	Supplier      string          `json:"supplier"`
	MinStockLevel int             `json:"min_stock_level"`
	Location      string          `json:"location"`
	Sku           string          `json:"sku"`
	UserID        int64           `json:"user_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

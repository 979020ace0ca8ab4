package catalog

import (
	"errors"
	"strings"
	"time"

	"promenu/internal/domain/tenant"

	"github.com/google/uuid"
)

var (
	ErrEmptyName     = errors.New("item name is required")
	ErrNegativePrice = errors.New("item price cannot be negative")
)

// QuantityType says how an item is counted: discrete units or a continuous
// measure (weight, volume).
type QuantityType string

const (
	QuantityUnit   QuantityType = "unit"
	QuantityWeight QuantityType = "weight"
)

// Normalize maps unknown tags to the unit type.
func (q QuantityType) Normalize() QuantityType {
	if q == QuantityWeight {
		return QuantityWeight
	}
	return QuantityUnit
}

// DiscountType is a closed set. Tags the pricing engine does not know
// degrade to DiscountNone rather than silently mis-computing.
type DiscountType string

const (
	DiscountNone       DiscountType = "none"
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
	DiscountBulkTier   DiscountType = "bulk"
)

func (d DiscountType) Normalize() DiscountType {
	switch d {
	case DiscountPercentage, DiscountFixed, DiscountBulkTier:
		return d
	default:
		return DiscountNone
	}
}

// Item is one catalog entry. Identity is (TenantID, ID). The meaning of
// DiscountValue depends on DiscountType: percent off, cents off per unit, or
// the bulk group size n for "buy n pay n-1".
type Item struct {
	ID            uuid.UUID    `json:"id"`
	TenantID      tenant.ID    `json:"tenant_id"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	PriceCents    int64        `json:"price_cents"`
	ImageURL      string       `json:"image_url,omitempty"`
	AssetPath     string       `json:"asset_path,omitempty"`
	QuantityType  QuantityType `json:"quantity_type"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue float64      `json:"discount_value,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if i.PriceCents < 0 {
		return ErrNegativePrice
	}
	return nil
}

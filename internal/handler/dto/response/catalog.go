package response

import (
	"promenu/internal/domain/catalog"
)

type ItemResponse struct {
	ID            string  `json:"id"`
	TenantID      string  `json:"tenant_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	PriceCents    int64   `json:"price_cents"`
	ImageURL      string  `json:"image_url,omitempty"`
	QuantityType  string  `json:"quantity_type"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value,omitempty"`
}

func FromItem(item *catalog.Item) *ItemResponse {
	return &ItemResponse{
		ID:            item.ID.String(),
		TenantID:      item.TenantID.String(),
		Name:          item.Name,
		Description:   item.Description,
		PriceCents:    item.PriceCents,
		ImageURL:      item.ImageURL,
		QuantityType:  string(item.QuantityType),
		DiscountType:  string(item.DiscountType),
		DiscountValue: item.DiscountValue,
	}
}

func FromItemList(items []catalog.Item) []*ItemResponse {
	res := make([]*ItemResponse, len(items))
	for i := range items {
		res[i] = FromItem(&items[i])
	}
	return res
}

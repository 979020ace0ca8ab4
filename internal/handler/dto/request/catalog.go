package request

import (
	"encoding/base64"

	"promenu/internal/domain/catalog"
	"promenu/internal/usecase/commands"
)

type ItemRequest struct {
	Name          string  `json:"name" binding:"required,max=120"`
	Description   string  `json:"description" binding:"max=2000"`
	PriceCents    int64   `json:"price_cents" binding:"min=0"`
	QuantityType  string  `json:"quantity_type" binding:"omitempty,oneof=unit weight"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`

	// Optional inline image; stored as an asset when present.
	ImageData        string `json:"image_data" binding:"omitempty,base64"`
	ImageContentType string `json:"image_content_type" binding:"omitempty,oneof=image/webp image/png image/jpeg"`
}

func (r *ItemRequest) ToInput() (commands.ItemInput, error) {
	var imageData []byte
	if r.ImageData != "" {
		decoded, err := base64.StdEncoding.DecodeString(r.ImageData)
		if err != nil {
			return commands.ItemInput{}, err
		}
		imageData = decoded
	}

	return commands.ItemInput{
		Name:             r.Name,
		Description:      r.Description,
		PriceCents:       r.PriceCents,
		QuantityType:     catalog.QuantityType(r.QuantityType).Normalize(),
		DiscountType:     catalog.DiscountType(r.DiscountType).Normalize(),
		DiscountValue:    r.DiscountValue,
		ImageData:        imageData,
		ImageContentType: r.ImageContentType,
	}, nil
}

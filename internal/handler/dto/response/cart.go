package response

import (
	"promenu/internal/domain/cart"
)

type CartLineResponse struct {
	Item          *ItemResponse `json:"item"`
	Quantity      float64       `json:"quantity"`
	SubtotalCents int64         `json:"subtotal_cents"`
}

type CartResponse struct {
	Lines          []*CartLineResponse `json:"lines"`
	TotalCents     int64               `json:"total_cents"`
	TotalUnitCount int64               `json:"total_unit_count"`
}

func FromCart(c *cart.Cart) *CartResponse {
	lines := c.Lines()
	res := &CartResponse{
		Lines:          make([]*CartLineResponse, len(lines)),
		TotalCents:     c.TotalCents(),
		TotalUnitCount: c.TotalUnitCount(),
	}
	for i := range lines {
		res.Lines[i] = &CartLineResponse{
			Item:          FromItem(&lines[i].Item),
			Quantity:      lines[i].Quantity,
			SubtotalCents: cart.LineSubtotalCents(lines[i]),
		}
	}
	return res
}

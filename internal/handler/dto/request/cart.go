package request

type CartAddRequest struct {
	TenantID string `json:"tenant_id" binding:"required"`
	ItemID   string `json:"item_id" binding:"required,uuid"`
}

type CartQuantityRequest struct {
	TenantID string  `json:"tenant_id" binding:"required"`
	ItemID   string  `json:"item_id" binding:"required,uuid"`
	Quantity float64 `json:"quantity"`
}

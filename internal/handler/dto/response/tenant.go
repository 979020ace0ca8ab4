package response

import (
	"promenu/internal/domain/tenant"
	"promenu/internal/usecase"
)

type TenantResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	OwnerEmails []string `json:"owner_emails,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	CreatedAt   int64    `json:"created_at"`
	UpdatedAt   int64    `json:"updated_at"`
}

func FromTenant(t *tenant.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		OwnerEmails: []string(t.OwnerEmails),
		ImageURL:    t.ImageURL,
		CreatedAt:   t.CreatedAt.Unix(),
		UpdatedAt:   t.UpdatedAt.Unix(),
	}
}

func FromTenantList(tenants []tenant.Tenant) []*TenantResponse {
	res := make([]*TenantResponse, len(tenants))
	for i := range tenants {
		res[i] = FromTenant(&tenants[i])
	}
	return res
}

// SnapshotResponse is a tenant page payload. Stale marks a value served from
// cache after a failed refresh; Error carries the reason for the UI banner.
type SnapshotResponse struct {
	Tenant  *TenantResponse `json:"tenant"`
	Catalog []*ItemResponse `json:"catalog"`
	IsAdmin bool            `json:"is_admin"`
	Stale   bool            `json:"stale,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func FromSnapshot(s *usecase.Snapshot, isAdmin bool) *SnapshotResponse {
	return &SnapshotResponse{
		Tenant:  FromTenant(&s.Tenant),
		Catalog: FromItemList(s.Catalog),
		IsAdmin: isAdmin,
	}
}

type ResolveResponse struct {
	TenantID     string `json:"tenant_id,omitempty"`
	StoreURL     string `json:"store_url,omitempty"`
	DiscoveryURL string `json:"discovery_url"`
}

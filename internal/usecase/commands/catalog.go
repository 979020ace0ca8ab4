package commands

import (
	"context"
	"log/slog"

	"promenu/internal/domain/catalog"
	"promenu/internal/domain/tenant"
	"promenu/internal/pkg/errs"
	"promenu/internal/usecase"

	"github.com/google/uuid"
)

// ItemInput carries the fields an admin can set on a catalog item. Image
// bytes are optional; when present they are stored as an asset and the
// resulting URL is written onto the item.
type ItemInput struct {
	Name             string
	Description      string
	PriceCents       int64
	QuantityType     catalog.QuantityType
	DiscountType     catalog.DiscountType
	DiscountValue    float64
	ImageData        []byte
	ImageContentType string
}

type CatalogCommands interface {
	AddItem(ctx context.Context, actor *tenant.Identity, tenantID tenant.ID, input ItemInput) (*catalog.Item, error)
	UpdateItem(ctx context.Context, actor *tenant.Identity, tenantID tenant.ID, itemID uuid.UUID, input ItemInput) (*catalog.Item, error)
	DeleteItem(ctx context.Context, actor *tenant.Identity, tenantID tenant.ID, itemID uuid.UUID) error
}

type catalogCommands struct {
	backend usecase.CatalogBackend
	assets  usecase.AssetBackend
	gateway usecase.TenantGateway
	policy  *tenant.AdminPolicy
	logger  *slog.Logger
}

func NewCatalogCommands(
	backend usecase.CatalogBackend,
	assets usecase.AssetBackend,
	gw usecase.TenantGateway,
	policy *tenant.AdminPolicy,
	logger *slog.Logger,
) CatalogCommands {
	return &catalogCommands{
		backend: backend,
		assets:  assets,
		gateway: gw,
		policy:  policy,
		logger:  logger,
	}
}

func (c *catalogCommands) AddItem(ctx context.Context, actor *tenant.Identity, tenantID tenant.ID, input ItemInput) (*catalog.Item, error) {
	if _, err := c.authorize(ctx, actor, tenantID); err != nil {
		return nil, err
	}

	item := &catalog.Item{
		ID:            uuid.New(),
		TenantID:      tenantID,
		Name:          input.Name,
		Description:   input.Description,
		PriceCents:    input.PriceCents,
		QuantityType:  input.QuantityType.Normalize(),
		DiscountType:  input.DiscountType.Normalize(),
		DiscountValue: input.DiscountValue,
	}
	if err := item.Validate(); err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if len(input.ImageData) > 0 {
		path := assetPath(tenantID, item.ID, input.ImageContentType)
		url, err := c.assets.Store(ctx, path, input.ImageContentType, input.ImageData)
		if err != nil {
			return nil, usecase.MapBackendErr(err, errs.ErrItemNotFound)
		}
		item.AssetPath = path
		item.ImageURL = url
	}

	if err := c.backend.AddItem(ctx, item); err != nil {
		return nil, usecase.MapBackendErr(err, errs.ErrItemNotFound)
	}

	c.gateway.PatchSnapshot(ctx, tenantID, func(s *usecase.Snapshot) {
		s.Catalog = append(s.Catalog, *item)
	})

	return item, nil
}

func (c *catalogCommands) UpdateItem(ctx context.Context, actor *tenant.Identity, tenantID tenant.ID, itemID uuid.UUID, input ItemInput) (*catalog.Item, error) {
	if _, err := c.authorize(ctx, actor, tenantID); err != nil {
		return nil, err
	}

	existing, err := c.backend.GetItem(ctx, tenantID, itemID)
	if err != nil {
		return nil, usecase.MapBackendErr(err, errs.ErrItemNotFound)
	}

	updated := *existing
	updated.Name = input.Name
	updated.Description = input.Description
	updated.PriceCents = input.PriceCents
	updated.QuantityType = input.QuantityType.Normalize()
	updated.DiscountType = input.DiscountType.Normalize()
	updated.DiscountValue = input.DiscountValue
	if err := updated.Validate(); err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if len(input.ImageData) > 0 {
		path := assetPath(tenantID, itemID, input.ImageContentType)
		url, err := c.assets.Store(ctx, path, input.ImageContentType, input.ImageData)
		if err != nil {
			return nil, usecase.MapBackendErr(err, errs.ErrItemNotFound)
		}
		if existing.AssetPath != "" && existing.AssetPath != path {
			if derr := c.assets.Delete(ctx, existing.AssetPath); derr != nil {
				c.logger.Warn("failed to delete replaced asset", "path", existing.AssetPath, "error", derr)
			}
		}
		updated.AssetPath = path
		updated.ImageURL = url
	}

	if err := c.backend.UpdateItem(ctx, &updated); err != nil {
		return nil, usecase.MapBackendErr(err, errs.ErrItemNotFound)
	}

	c.gateway.PatchSnapshot(ctx, tenantID, func(s *usecase.Snapshot) {
		for i := range s.Catalog {
			if s.Catalog[i].ID == itemID {
				s.Catalog[i] = updated
				return
			}
		}
	})

	return &updated, nil
}

// DeleteItem removes the record, then cleans up its asset. Record deletion
// is authoritative; an asset cleanup failure is logged and swallowed, never
// rolled back into a resurrected item.
func (c *catalogCommands) DeleteItem(ctx context.Context, actor *tenant.Identity, tenantID tenant.ID, itemID uuid.UUID) error {
	if _, err := c.authorize(ctx, actor, tenantID); err != nil {
		return err
	}

	existing, err := c.backend.GetItem(ctx, tenantID, itemID)
	if err != nil {
		return usecase.MapBackendErr(err, errs.ErrItemNotFound)
	}

	if err := c.backend.DeleteItem(ctx, tenantID, itemID); err != nil {
		return usecase.MapBackendErr(err, errs.ErrItemNotFound)
	}

	if existing.AssetPath != "" {
		if err := c.assets.Delete(ctx, existing.AssetPath); err != nil {
			c.logger.Warn("failed to delete orphaned asset", "path", existing.AssetPath, "error", err)
		}
	}

	c.gateway.PatchSnapshot(ctx, tenantID, func(s *usecase.Snapshot) {
		kept := s.Catalog[:0]
		for _, item := range s.Catalog {
			if item.ID != itemID {
				kept = append(kept, item)
			}
		}
		s.Catalog = kept
	})

	return nil
}

func (c *catalogCommands) authorize(ctx context.Context, actor *tenant.Identity, tenantID tenant.ID) (*usecase.Snapshot, error) {
	snap, err := c.gateway.LoadTenantAndCatalog(ctx, tenantID, false)
	if err != nil {
		return nil, err
	}
	if !c.policy.IsAdmin(actor, &snap.Tenant) {
		return nil, errs.ErrUnauthorized
	}
	return snap, nil
}

func assetPath(tenantID tenant.ID, itemID uuid.UUID, contentType string) string {
	ext := ".bin"
	switch contentType {
	case "image/webp":
		ext = ".webp"
	case "image/png":
		ext = ".png"
	case "image/jpeg":
		ext = ".jpg"
	}
	return "tenants/" + string(tenantID) + "/items/" + itemID.String() + ext
}

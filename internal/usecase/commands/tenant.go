package commands

import (
	"context"
	"log/slog"

	"promenu/internal/domain/tenant"
	"promenu/internal/infra"
	"promenu/internal/pkg/errs"
	"promenu/internal/usecase"
)

type CreateTenantRequest struct {
	ID          tenant.ID
	Name        string
	Description string
	ImageURL    string
}

type UpdateTenantRequest struct {
	Name        string
	Description string
	ImageURL    string
	OwnerEmails []string
}

// TenantCommands are the admin-gated tenant mutations. The authorization
// check here is a precondition for the UI's benefit; the backend stays the
// real authority.
type TenantCommands interface {
	CreateTenant(ctx context.Context, actor *tenant.Identity, req CreateTenantRequest) (*tenant.Tenant, error)
	UpdateTenant(ctx context.Context, actor *tenant.Identity, id tenant.ID, req UpdateTenantRequest) (*tenant.Tenant, error)
	DeleteTenant(ctx context.Context, actor *tenant.Identity, id tenant.ID) error
}

type tenantCommands struct {
	backend usecase.TenantBackend
	assets  usecase.AssetBackend
	gateway usecase.TenantGateway
	policy  *tenant.AdminPolicy
	logger  *slog.Logger
}

func NewTenantCommands(
	backend usecase.TenantBackend,
	assets usecase.AssetBackend,
	gw usecase.TenantGateway,
	policy *tenant.AdminPolicy,
	logger *slog.Logger,
) TenantCommands {
	return &tenantCommands{
		backend: backend,
		assets:  assets,
		gateway: gw,
		policy:  policy,
		logger:  logger,
	}
}

// CreateTenant opens a new storefront owned by the acting identity. Any
// signed-in identity may create one.
func (c *tenantCommands) CreateTenant(ctx context.Context, actor *tenant.Identity, req CreateTenantRequest) (*tenant.Tenant, error) {
	if actor == nil || actor.Email == "" {
		return nil, errs.ErrUnauthorized
	}
	if err := tenant.ValidateID(req.ID); err != nil {
		return nil, err
	}

	t := &tenant.Tenant{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		OwnerEmails: tenant.OwnerEmails{actor.Email},
		ImageURL:    req.ImageURL,
	}

	if err := c.backend.CreateTenant(ctx, t); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, errs.ErrTenantAlreadyExists)
		}
		return nil, usecase.MapBackendErr(err, errs.ErrTenantNotFound)
	}

	// The listing can no longer be trusted for its TTL window.
	c.gateway.PatchListing(ctx, func(listing *[]tenant.Tenant) {
		*listing = append(*listing, *t)
	})

	return t, nil
}

func (c *tenantCommands) UpdateTenant(ctx context.Context, actor *tenant.Identity, id tenant.ID, req UpdateTenantRequest) (*tenant.Tenant, error) {
	snap, err := c.gateway.LoadTenantAndCatalog(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if !c.policy.IsAdmin(actor, &snap.Tenant) {
		return nil, errs.ErrUnauthorized
	}

	// Replace the record wholesale; partial in-place mutation is not a thing.
	updated := snap.Tenant
	updated.Name = req.Name
	updated.Description = req.Description
	updated.ImageURL = req.ImageURL
	if len(req.OwnerEmails) > 0 {
		updated.OwnerEmails = tenant.OwnerEmails(req.OwnerEmails)
	}

	if err := c.backend.UpdateTenant(ctx, &updated); err != nil {
		// Local state stays untouched for retry.
		return nil, usecase.MapBackendErr(err, errs.ErrTenantNotFound)
	}

	c.gateway.PatchSnapshot(ctx, id, func(s *usecase.Snapshot) {
		s.Tenant = updated
	})
	c.gateway.PatchListing(ctx, func(listing *[]tenant.Tenant) {
		for i := range *listing {
			if (*listing)[i].ID == id {
				(*listing)[i] = updated
				return
			}
		}
	})

	return &updated, nil
}

func (c *tenantCommands) DeleteTenant(ctx context.Context, actor *tenant.Identity, id tenant.ID) error {
	snap, err := c.gateway.LoadTenantAndCatalog(ctx, id, false)
	if err != nil {
		return err
	}
	if !c.policy.IsAdmin(actor, &snap.Tenant) {
		return errs.ErrUnauthorized
	}

	if err := c.backend.DeleteTenant(ctx, id); err != nil {
		return usecase.MapBackendErr(err, errs.ErrTenantNotFound)
	}

	// Record deletion is authoritative; asset cleanup is best-effort.
	for i := range snap.Catalog {
		if path := snap.Catalog[i].AssetPath; path != "" {
			if err := c.assets.Delete(ctx, path); err != nil {
				c.logger.Warn("failed to delete orphaned asset", "path", path, "error", err)
			}
		}
	}

	c.gateway.InvalidateTenant(ctx, id)
	c.gateway.PatchListing(ctx, func(listing *[]tenant.Tenant) {
		kept := (*listing)[:0]
		for _, t := range *listing {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		*listing = kept
	})

	return nil
}

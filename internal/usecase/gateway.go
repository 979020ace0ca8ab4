package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"promenu/internal/domain/catalog"
	"promenu/internal/domain/tenant"
	"promenu/internal/infra/cache"
	"promenu/internal/pkg/config"
	"promenu/internal/pkg/errs"
)

const listingKey = "tenants:all"

// Snapshot is the unit the gateway publishes: a tenant record and its full
// catalog, always replaced together. There is never a state where the tenant
// is current but the catalog belongs to an older fetch.
type Snapshot struct {
	Tenant  tenant.Tenant  `json:"tenant"`
	Catalog []catalog.Item `json:"catalog"`
}

// TenantGateway orchestrates tenant/catalog loading: memory cache first,
// persisted hydrate for a first paint, then the backend. Mutating flows patch
// the published state through the Patch methods so a still-fresh TTL window
// cannot resurrect pre-mutation data.
type TenantGateway interface {
	LoadTenantAndCatalog(ctx context.Context, id tenant.ID, force bool) (*Snapshot, error)
	ListAllTenants(ctx context.Context, force bool) ([]tenant.Tenant, error)

	// Current reads whatever is published for the tenant, fresh or stale.
	Current(id tenant.ID) (*Snapshot, bool)
	CurrentListing() ([]tenant.Tenant, bool)

	PatchSnapshot(ctx context.Context, id tenant.ID, fn func(*Snapshot)) bool
	PatchListing(ctx context.Context, fn func(*[]tenant.Tenant)) bool
	InvalidateTenant(ctx context.Context, id tenant.ID)
	InvalidateListing(ctx context.Context)
}

type gateway struct {
	tenants TenantBackend
	catalog CatalogBackend

	snaps      *cache.Store[Snapshot]
	listing    *cache.Store[[]tenant.Tenant]
	tenantTTL  time.Duration
	listingTTL time.Duration

	mu       sync.Mutex
	inflight map[string]*inflightLoad

	logger *slog.Logger
}

type inflightLoad struct {
	done chan struct{}
	snap *Snapshot
	err  error
}

func NewTenantGateway(
	tenants TenantBackend,
	catalogBackend CatalogBackend,
	snaps *cache.Store[Snapshot],
	listing *cache.Store[[]tenant.Tenant],
	cfg config.CacheConfig,
	logger *slog.Logger,
) TenantGateway {
	return &gateway{
		tenants:    tenants,
		catalog:    catalogBackend,
		snaps:      snaps,
		listing:    listing,
		tenantTTL:  cfg.TenantTTL,
		listingTTL: cfg.ListingTTL,
		inflight:   make(map[string]*inflightLoad),
		logger:     logger,
	}
}

// LoadTenantAndCatalog returns the published snapshot for a tenant. A fresh
// in-memory entry short-circuits without touching the network, so repeated
// navigation costs at most one round-trip per TTL window. On a cache miss the
// persisted tier is hydrated for an immediate stale paint, then the tenant
// record and catalog are fetched concurrently; the result is published only
// when both land. A failed refresh surfaces the error and leaves the
// previously published value in place.
func (g *gateway) LoadTenantAndCatalog(ctx context.Context, id tenant.ID, force bool) (*Snapshot, error) {
	key := string(id)

	if !force {
		if e, ok := g.snaps.Get(key); ok && g.snaps.IsFresh(e, g.tenantTTL) {
			snap := e.Value
			return &snap, nil
		}
	}

	// Concurrent refreshes for the same tenant share one fetch.
	g.mu.Lock()
	if call, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		select {
		case <-call.done:
			return call.snap, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	call := &inflightLoad{done: make(chan struct{})}
	g.inflight[key] = call
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.inflight, key)
		g.mu.Unlock()
		close(call.done)
	}()

	// First access for this key: publish the persisted copy, stale, so the
	// UI has something to render while the fetch is in flight.
	if _, ok := g.snaps.Get(key); !ok {
		if value, ok := g.snaps.Hydrate(ctx, key); ok {
			g.snaps.Seed(key, value)
			g.logger.Debug("hydrated tenant snapshot from persisted tier", "tenant_id", key)
		}
	}

	snap, err := g.fetchBoth(ctx, id)
	if err != nil {
		call.err = err
		return nil, err
	}

	g.snaps.Put(ctx, key, *snap)
	call.snap = snap
	return snap, nil
}

// fetchBoth issues the tenant and catalog fetches concurrently. Both must
// complete; either failure aborts the whole refresh.
func (g *gateway) fetchBoth(ctx context.Context, id tenant.ID) (*Snapshot, error) {
	var (
		wg       sync.WaitGroup
		rec      *tenant.Tenant
		items    []catalog.Item
		recErr   error
		itemsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		rec, recErr = g.tenants.GetTenant(ctx, id)
	}()
	go func() {
		defer wg.Done()
		items, itemsErr = g.catalog.ListItems(ctx, id)
	}()
	wg.Wait()

	if recErr != nil {
		return nil, MapBackendErr(recErr, errs.ErrTenantNotFound)
	}
	if itemsErr != nil {
		return nil, MapBackendErr(itemsErr, errs.ErrTenantNotFound)
	}

	return &Snapshot{Tenant: *rec, Catalog: items}, nil
}

// ListAllTenants caches the aggregate listing under the short TTL; the cached
// result is shared by every caller inside the window regardless of which page
// triggered it.
func (g *gateway) ListAllTenants(ctx context.Context, force bool) ([]tenant.Tenant, error) {
	if !force {
		if e, ok := g.listing.Get(listingKey); ok && g.listing.IsFresh(e, g.listingTTL) {
			return e.Value, nil
		}
	}

	if _, ok := g.listing.Get(listingKey); !ok {
		if value, ok := g.listing.Hydrate(ctx, listingKey); ok {
			g.listing.Seed(listingKey, value)
		}
	}

	tenants, err := g.tenants.ListTenants(ctx)
	if err != nil {
		return nil, MapBackendErr(err, errs.ErrTenantNotFound)
	}

	g.listing.Put(ctx, listingKey, tenants)
	return tenants, nil
}

func (g *gateway) Current(id tenant.ID) (*Snapshot, bool) {
	e, ok := g.snaps.Get(string(id))
	if !ok {
		return nil, false
	}
	snap := e.Value
	return &snap, true
}

func (g *gateway) CurrentListing() ([]tenant.Tenant, bool) {
	e, ok := g.listing.Get(listingKey)
	if !ok {
		return nil, false
	}
	return e.Value, true
}

func (g *gateway) PatchSnapshot(ctx context.Context, id tenant.ID, fn func(*Snapshot)) bool {
	return g.snaps.Patch(ctx, string(id), fn)
}

func (g *gateway) PatchListing(ctx context.Context, fn func(*[]tenant.Tenant)) bool {
	return g.listing.Patch(ctx, listingKey, fn)
}

func (g *gateway) InvalidateTenant(ctx context.Context, id tenant.ID) {
	g.snaps.Invalidate(ctx, string(id))
}

func (g *gateway) InvalidateListing(ctx context.Context) {
	g.listing.Invalidate(ctx, listingKey)
}

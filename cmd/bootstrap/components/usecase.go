package components

import (
	"log/slog"

	"promenu/internal/domain/tenant"
	"promenu/internal/infra/cache"
	"promenu/internal/pkg/clock"
	"promenu/internal/pkg/config"
	"promenu/internal/usecase"
	"promenu/internal/usecase/commands"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewResolver,
	NewAdminPolicy,
	NewSnapshotCache,
	NewListingCache,
	NewTenantGateway,
	usecase.NewAuthUseCase,
	usecase.NewCartRegistry,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewTenantCommands,
		commands.NewCatalogCommands,
	),
)

func NewResolver(cfg config.Config) *tenant.Resolver {
	return tenant.NewResolver(cfg.Tenancy.BaseDomain, cfg.Tenancy.LocalLabel)
}

func NewAdminPolicy(cfg config.Config) *tenant.AdminPolicy {
	return tenant.NewAdminPolicy(cfg.Tenancy.PlatformAdmins)
}

// The two cache stores share one KV but keep distinct key prefixes, matching
// the split freshness windows of snapshots and the listing.
func NewSnapshotCache(kv cache.KV, clk clock.Clock, logger *slog.Logger) *cache.Store[usecase.Snapshot] {
	return cache.NewStore[usecase.Snapshot](kv, "snapshot:", clk, logger)
}

func NewListingCache(kv cache.KV, clk clock.Clock, logger *slog.Logger) *cache.Store[[]tenant.Tenant] {
	return cache.NewStore[[]tenant.Tenant](kv, "listing:", clk, logger)
}

func NewTenantGateway(
	tenants usecase.TenantBackend,
	catalogBackend usecase.CatalogBackend,
	snaps *cache.Store[usecase.Snapshot],
	listing *cache.Store[[]tenant.Tenant],
	cfg config.Config,
	logger *slog.Logger,
) usecase.TenantGateway {
	return usecase.NewTenantGateway(tenants, catalogBackend, snaps, listing, cfg.Cache, logger)
}

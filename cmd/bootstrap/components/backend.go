package components

import (
	"log/slog"

	"promenu/internal/infra/backend"
	"promenu/internal/pkg/config"
	"promenu/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var BackendModule = fx.Module("backend",
	fx.Provide(
		fx.Annotate(
			backend.NewTenantStore,
			fx.As(new(usecase.TenantBackend)),
		),
		fx.Annotate(
			backend.NewCatalogStore,
			fx.As(new(usecase.CatalogBackend)),
		),
		fx.Annotate(
			NewAssetStore,
			fx.As(new(usecase.AssetBackend)),
		),
		fx.Annotate(
			backend.NewAccountStore,
			fx.As(new(usecase.AccountBackend)),
		),
	),
)

func NewAssetStore(pool *pgxpool.Pool, cfg config.Config, logger *slog.Logger) *backend.AssetStore {
	return backend.NewAssetStore(pool, cfg.Assets, logger)
}

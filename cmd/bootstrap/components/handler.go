package components

import (
	"promenu/internal/domain/tenant"
	"promenu/internal/handler"
	"promenu/internal/handler/api"
	"promenu/internal/handler/middleware"
	"promenu/internal/pkg/config"
	"promenu/internal/usecase"
	"promenu/internal/usecase/commands"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewAuthHandler,
		NewTenantHandler,
		api.NewCatalogHandler,
		api.NewCartHandler,
		api.NewAssetHandler,
		middleware.NewIdentityMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewAuthHandler(authUseCase usecase.AuthUseCase, cfg config.Config) *api.AuthHandler {
	return api.NewAuthHandler(authUseCase, cfg.JWT)
}

func NewTenantHandler(
	gateway usecase.TenantGateway,
	tenantCommands commands.TenantCommands,
	resolver *tenant.Resolver,
	policy *tenant.AdminPolicy,
	cfg config.Config,
) *api.TenantHandler {
	return api.NewTenantHandler(gateway, tenantCommands, resolver, policy, cfg.Server.TrustedProxies)
}

func NewHandlers(
	auth *api.AuthHandler,
	tenantHandler *api.TenantHandler,
	catalogHandler *api.CatalogHandler,
	cartHandler *api.CartHandler,
	assetHandler *api.AssetHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:    auth,
		Tenant:  tenantHandler,
		Catalog: catalogHandler,
		Cart:    cartHandler,
		Asset:   assetHandler,
	}
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"promenu/internal/handler/api"
	"promenu/internal/handler/middleware"
	"promenu/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth    *api.AuthHandler
	Tenant  *api.TenantHandler
	Catalog *api.CatalogHandler
	Cart    *api.CartHandler
	Asset   *api.AssetHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, identity *middleware.IdentityMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, identity)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	if err := engine.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		logger.Warn("invalid trusted proxy list", "error", err)
	}

	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, identity *middleware.IdentityMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	engine.GET("/assets/*path", h.Asset.Serve)

	apiGroup := engine.Group("/api")
	{
		apiGroup.GET("/resolve", h.Tenant.Resolve)

		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
			})

			authRequired := auth.Group("")
			authRequired.Use(identity.RequireIdentity())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		tenants := apiGroup.Group("/tenants")
		{
			// Storefront reads are public; the optional identity only toggles
			// the admin affordances in the snapshot payload.
			addRoutes(tenants, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Tenant.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Tenant.Get, Mw: []gin.HandlerFunc{identity.OptionalIdentity()}},
			})

			adminRequired := tenants.Group("")
			adminRequired.Use(identity.RequireIdentity())
			addRoutes(adminRequired, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Tenant.Create},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Tenant.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Tenant.Delete},
				{Method: http.MethodPost, Path: "/:id/items", Handler: h.Catalog.Add},
				{Method: http.MethodPut, Path: "/:id/items/:itemID", Handler: h.Catalog.Update},
				{Method: http.MethodDelete, Path: "/:id/items/:itemID", Handler: h.Catalog.Delete},
			})
		}

		cart := apiGroup.Group("/cart")
		{
			addRoutes(cart, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Cart.Get},
				{Method: http.MethodDelete, Path: "", Handler: h.Cart.Clear},
				{Method: http.MethodPost, Path: "/items", Handler: h.Cart.Add},
				{Method: http.MethodPut, Path: "/items", Handler: h.Cart.SetQuantity},
				{Method: http.MethodPost, Path: "/items/:itemID/decrement", Handler: h.Cart.Decrement},
				{Method: http.MethodDelete, Path: "/items/:itemID", Handler: h.Cart.Remove},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}

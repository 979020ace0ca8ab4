package api

import (
	"errors"
	"net/http"
	"net/netip"
	"strings"

	"promenu/internal/domain/tenant"
	reqdto "promenu/internal/handler/dto/request"
	resdto "promenu/internal/handler/dto/response"
	"promenu/internal/handler/middleware"
	"promenu/internal/pkg/errs"
	"promenu/internal/usecase"
	"promenu/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type TenantHandler struct {
	gateway  usecase.TenantGateway
	commands commands.TenantCommands
	resolver *tenant.Resolver
	policy   *tenant.AdminPolicy
	proxies  []netip.Prefix
}

func NewTenantHandler(
	gateway usecase.TenantGateway,
	tenantCommands commands.TenantCommands,
	resolver *tenant.Resolver,
	policy *tenant.AdminPolicy,
	trustedProxies []string,
) *TenantHandler {
	return &TenantHandler{
		gateway:  gateway,
		commands: tenantCommands,
		resolver: resolver,
		policy:   policy,
		proxies:  parseProxyList(trustedProxies),
	}
}

// parseProxyList accepts CIDR blocks or single addresses; malformed entries
// are skipped.
func parseProxyList(entries []string) []netip.Prefix {
	var out []netip.Prefix
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			out = append(out, prefix)
			continue
		}
		if addr, err := netip.ParseAddr(entry); err == nil {
			out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
		}
	}
	return out
}

func (h *TenantHandler) fromTrustedProxy(c *gin.Context) bool {
	addr, err := netip.ParseAddr(c.RemoteIP())
	if err != nil {
		return false
	}
	for _, prefix := range h.proxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// @Summary Resolve tenant from request
// @Description Derive the tenant for the current navigation from query, host or path
// @Tags tenants
// @Produce json
// @Success 200 {object} resdto.ResolveResponse
// @Router /resolve [get]
func (h *TenantHandler) Resolve(c *gin.Context) {
	rc := h.requestContext(c)

	res := resdto.ResolveResponse{
		DiscoveryURL: h.resolver.DiscoveryURL(rc),
	}
	if id, ok := h.resolver.Resolve(rc); ok {
		res.TenantID = id.String()
		res.StoreURL = h.resolver.StoreURL(rc, id)
	}
	c.JSON(http.StatusOK, res)
}

// @Summary List tenants
// @Description List all storefronts for the discovery page
// @Tags tenants
// @Produce json
// @Param force query bool false "Bypass the cached listing"
// @Success 200 {array} resdto.TenantResponse
// @Failure 502 {object} map[string]string
// @Router /tenants [get]
func (h *TenantHandler) List(c *gin.Context) {
	force := c.Query("force") == "true"

	tenants, err := h.gateway.ListAllTenants(c.Request.Context(), force)
	if err != nil {
		// A failed refresh never blanks the page when a cached listing exists.
		if cached, ok := h.gateway.CurrentListing(); ok {
			c.JSON(http.StatusOK, resdto.FromTenantList(cached))
			return
		}
		respondDataErr(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromTenantList(tenants))
}

// @Summary Get tenant snapshot
// @Description Get a tenant and its catalog, published together
// @Tags tenants
// @Produce json
// @Param id path string true "Tenant ID"
// @Param force query bool false "Bypass the cached snapshot"
// @Success 200 {object} resdto.SnapshotResponse
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /tenants/{id} [get]
func (h *TenantHandler) Get(c *gin.Context) {
	id := tenant.ID(c.Param("id"))
	force := c.Query("force") == "true"
	identity := middleware.GetIdentity(c)

	snap, err := h.gateway.LoadTenantAndCatalog(c.Request.Context(), id, force)
	if err != nil {
		// Serve the previously published value with the failure attached so
		// the storefront keeps rendering.
		if cached, ok := h.gateway.Current(id); ok {
			res := resdto.FromSnapshot(cached, h.policy.IsAdmin(identity, &cached.Tenant))
			res.Stale = true
			res.Error = "refresh failed"
			c.JSON(http.StatusOK, res)
			return
		}
		respondDataErr(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSnapshot(snap, h.policy.IsAdmin(identity, &snap.Tenant)))
}

// @Summary Create tenant
// @Description Open a new storefront owned by the signed-in identity
// @Tags tenants
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateTenantRequest true "Tenant"
// @Success 201 {object} resdto.TenantResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tenants [post]
func (h *TenantHandler) Create(c *gin.Context) {
	var req reqdto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	created, err := h.commands.CreateTenant(c.Request.Context(), middleware.GetIdentity(c), req.ToCommand())
	if err != nil {
		switch {
		case errors.Is(err, tenant.ErrInvalidTenantID), errors.Is(err, tenant.ErrReservedTenantID):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		case errors.Is(err, errs.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
		case errors.Is(err, errs.ErrTenantAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Tenant id is already taken",
			})
		default:
			respondDataErr(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromTenant(created))
}

// @Summary Update tenant
// @Description Replace the tenant record
// @Tags tenants
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Param request body reqdto.UpdateTenantRequest true "Tenant"
// @Success 200 {object} resdto.TenantResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tenants/{id} [put]
func (h *TenantHandler) Update(c *gin.Context) {
	var req reqdto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id := tenant.ID(c.Param("id"))
	updated, err := h.commands.UpdateTenant(c.Request.Context(), middleware.GetIdentity(c), id, req.ToCommand())
	if err != nil {
		respondDataErr(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromTenant(updated))
}

// @Summary Delete tenant
// @Description Delete the storefront and its assets
// @Tags tenants
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tenants/{id} [delete]
func (h *TenantHandler) Delete(c *gin.Context) {
	id := tenant.ID(c.Param("id"))
	if err := h.commands.DeleteTenant(c.Request.Context(), middleware.GetIdentity(c), id); err != nil {
		respondDataErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// requestContext captures the slice of the HTTP request the resolver reads.
// The forwarded proto wins over the socket's only when the peer is one of the
// configured proxies; anyone else cannot spoof the scheme in generated URLs.
func (h *TenantHandler) requestContext(c *gin.Context) tenant.RequestContext {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" && h.fromTrustedProxy(c) {
		scheme = proto
	}
	return tenant.RequestContext{
		Scheme: scheme,
		Host:   c.Request.Host,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.Query(),
	}
}

// respondDataErr maps the shared data-layer sentinels. Handlers switch on
// their flow-specific errors first and fall through here.
func respondDataErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrDomainValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid data",
		})
	case errors.Is(err, errs.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Not authorized to manage this tenant",
		})
	case errors.Is(err, errs.ErrTenantNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Tenant not found",
		})
	case errors.Is(err, errs.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Item not found",
		})
	case errors.Is(err, errs.ErrBackendFailure):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Backend unavailable",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

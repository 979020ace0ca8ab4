package api

import (
	"net/http"

	"promenu/internal/domain/catalog"
	"promenu/internal/domain/tenant"
	reqdto "promenu/internal/handler/dto/request"
	resdto "promenu/internal/handler/dto/response"
	"promenu/internal/pkg/cookie"
	"promenu/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler binds browser sessions to cart engines. Lines snapshot the item
// at add time, so the published catalog is consulted only on add and
// set-quantity, never on reads.
type CartHandler struct {
	gateway  usecase.TenantGateway
	registry *usecase.CartRegistry
}

func NewCartHandler(gateway usecase.TenantGateway, registry *usecase.CartRegistry) *CartHandler {
	return &CartHandler{gateway: gateway, registry: registry}
}

// @Summary Get cart
// @Description Get the session's cart with computed totals
// @Tags cart
// @Produce json
// @Success 200 {object} resdto.CartResponse
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	session := cookie.CartSessionID(c)
	c.JSON(http.StatusOK, resdto.FromCart(h.registry.Get(session)))
}

// @Summary Add item to cart
// @Description Add one unit of a catalog item, or bump an existing line
// @Tags cart
// @Accept json
// @Produce json
// @Param request body reqdto.CartAddRequest true "Item reference"
// @Success 200 {object} resdto.CartResponse
// @Failure 404 {object} map[string]string
// @Router /cart/items [post]
func (h *CartHandler) Add(c *gin.Context) {
	var req reqdto.CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	item, ok := h.lookupItem(c, tenant.ID(req.TenantID), req.ItemID)
	if !ok {
		return
	}

	session := cookie.CartSessionID(c)
	cart := h.registry.Get(session)
	cart.AddOrIncrement(*item)

	c.JSON(http.StatusOK, resdto.FromCart(cart))
}

// @Summary Set line quantity
// @Description Set a line's quantity; zero or less removes it
// @Tags cart
// @Accept json
// @Produce json
// @Param request body reqdto.CartQuantityRequest true "Quantity"
// @Success 200 {object} resdto.CartResponse
// @Failure 404 {object} map[string]string
// @Router /cart/items [put]
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req reqdto.CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	item, ok := h.lookupItem(c, tenant.ID(req.TenantID), req.ItemID)
	if !ok {
		return
	}

	session := cookie.CartSessionID(c)
	cart := h.registry.Get(session)
	cart.SetQuantity(*item, req.Quantity)

	c.JSON(http.StatusOK, resdto.FromCart(cart))
}

// @Summary Decrement line
// @Description Lower a line by one unit, removing it at zero
// @Tags cart
// @Produce json
// @Param itemID path string true "Item ID"
// @Success 200 {object} resdto.CartResponse
// @Router /cart/items/{itemID}/decrement [post]
func (h *CartHandler) Decrement(c *gin.Context) {
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}

	session := cookie.CartSessionID(c)
	cart := h.registry.Get(session)
	cart.DecrementOrRemove(itemID)

	c.JSON(http.StatusOK, resdto.FromCart(cart))
}

// @Summary Remove line
// @Description Remove a line from the cart entirely
// @Tags cart
// @Produce json
// @Param itemID path string true "Item ID"
// @Success 200 {object} resdto.CartResponse
// @Router /cart/items/{itemID} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}

	session := cookie.CartSessionID(c)
	cart := h.registry.Get(session)
	cart.SetQuantity(catalog.Item{ID: itemID}, 0)

	c.JSON(http.StatusOK, resdto.FromCart(cart))
}

// @Summary Clear cart
// @Description Drop every line in the session's cart
// @Tags cart
// @Success 204 "No Content"
// @Router /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	session := cookie.CartSessionID(c)
	h.registry.Get(session).Clear()
	c.Status(http.StatusNoContent)
}

// lookupItem finds the item in the tenant's published catalog. The request
// fails when the tenant cannot load and has no cached snapshot, or when the
// item is not in the catalog.
func (h *CartHandler) lookupItem(c *gin.Context, tenantID tenant.ID, rawItemID string) (*catalog.Item, bool) {
	itemID, err := uuid.Parse(rawItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item id",
		})
		return nil, false
	}

	snap, err := h.gateway.LoadTenantAndCatalog(c.Request.Context(), tenantID, false)
	if err != nil {
		cached, ok := h.gateway.Current(tenantID)
		if !ok {
			respondDataErr(c, err)
			return nil, false
		}
		snap = cached
	}

	for i := range snap.Catalog {
		if snap.Catalog[i].ID == itemID {
			return &snap.Catalog[i], true
		}
	}

	c.JSON(http.StatusNotFound, gin.H{
		"error": "Item not found",
	})
	return nil, false
}

package api

import (
	"net/http"

	"promenu/internal/domain/tenant"
	reqdto "promenu/internal/handler/dto/request"
	resdto "promenu/internal/handler/dto/response"
	"promenu/internal/handler/middleware"
	"promenu/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	commands commands.CatalogCommands
}

func NewCatalogHandler(catalogCommands commands.CatalogCommands) *CatalogHandler {
	return &CatalogHandler{commands: catalogCommands}
}

// @Summary Add catalog item
// @Description Add an item to the tenant's catalog
// @Tags catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Param request body reqdto.ItemRequest true "Item"
// @Success 201 {object} resdto.ItemResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /tenants/{id}/items [post]
func (h *CatalogHandler) Add(c *gin.Context) {
	input, tenantID, ok := bindItem(c)
	if !ok {
		return
	}

	item, err := h.commands.AddItem(c.Request.Context(), middleware.GetIdentity(c), tenantID, input)
	if err != nil {
		respondDataErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromItem(item))
}

// @Summary Update catalog item
// @Description Replace a catalog item's fields
// @Tags catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Param itemID path string true "Item ID"
// @Param request body reqdto.ItemRequest true "Item"
// @Success 200 {object} resdto.ItemResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tenants/{id}/items/{itemID} [put]
func (h *CatalogHandler) Update(c *gin.Context) {
	input, tenantID, ok := bindItem(c)
	if !ok {
		return
	}
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}

	item, err := h.commands.UpdateItem(c.Request.Context(), middleware.GetIdentity(c), tenantID, itemID, input)
	if err != nil {
		respondDataErr(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromItem(item))
}

// @Summary Delete catalog item
// @Description Remove an item and its asset
// @Tags catalog
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Param itemID path string true "Item ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tenants/{id}/items/{itemID} [delete]
func (h *CatalogHandler) Delete(c *gin.Context) {
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}

	tenantID := tenant.ID(c.Param("id"))
	if err := h.commands.DeleteItem(c.Request.Context(), middleware.GetIdentity(c), tenantID, itemID); err != nil {
		respondDataErr(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func bindItem(c *gin.Context) (commands.ItemInput, tenant.ID, bool) {
	var req reqdto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return commands.ItemInput{}, "", false
	}

	input, err := req.ToInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid image data",
		})
		return commands.ItemInput{}, "", false
	}

	return input, tenant.ID(c.Param("id")), true
}

func itemIDParam(c *gin.Context) (uuid.UUID, bool) {
	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item id",
		})
		return uuid.Nil, false
	}
	return itemID, true
}

package api

import (
	"net/http"
	"strings"

	"promenu/internal/infra"
	"promenu/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AssetHandler struct {
	assets usecase.AssetBackend
}

func NewAssetHandler(assets usecase.AssetBackend) *AssetHandler {
	return &AssetHandler{assets: assets}
}

// @Summary Serve asset
// @Description Serve a stored image by path
// @Tags assets
// @Produce octet-stream
// @Param path path string true "Asset path"
// @Success 200
// @Failure 404 {object} map[string]string
// @Router /assets/{path} [get]
func (h *AssetHandler) Serve(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Asset not found",
		})
		return
	}

	data, contentType, err := h.assets.Retrieve(c.Request.Context(), path)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Asset not found",
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Backend unavailable",
		})
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, contentType, data)
}

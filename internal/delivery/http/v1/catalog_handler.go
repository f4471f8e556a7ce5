package v1

import (
	"net/http"

	"area1337-backend/internal/delivery/http/response"
	"area1337-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogUC domain.CatalogUsecase
}

func NewCatalogHandler(api *gin.RouterGroup, catalogUC domain.CatalogUsecase) {
	handler := &CatalogHandler{catalogUC: catalogUC}

	api.GET("/products", handler.ListProducts)
	api.GET("/site", handler.SiteInfo)
}

// ListProducts godoc
// @Summary      List products
// @Description  Product catalog with editions and pricing.
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=300")
	response.Data(c, http.StatusOK, h.catalogUC.Products())
}

// SiteInfo godoc
// @Summary      Site metadata
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  domain.SiteInfo
// @Router       /api/site [get]
func (h *CatalogHandler) SiteInfo(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=300")
	response.Data(c, http.StatusOK, h.catalogUC.Site())
}

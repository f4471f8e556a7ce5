package v1

import (
	"net/http"

	"area1337-backend/internal/delivery/http/response"
	"area1337-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(api *gin.RouterGroup, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}

	api.GET("/health", handler.Health)
}

// Health godoc
// @Summary      Health check
// @Description  Service status with the rate-limit store and content source state.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response.Data(c, http.StatusOK, h.healthUC.Check(c.Request.Context()))
}

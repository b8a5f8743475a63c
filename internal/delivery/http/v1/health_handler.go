package v1

import (
	"net/http"

	"go-candidate-backend/internal/delivery/http/response"
	"go-candidate-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC domain.HealthUsecase
}

func NewHealthHandler(r *gin.RouterGroup, healthUC domain.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	r.GET("/health", handler.Check)
}

// Check godoc
// @Summary      Health check
// @Description  Reports the reachability of the database and cache
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.HealthStatus}
// @Failure      503  {object}  response.Response{data=domain.HealthStatus}
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	status := h.healthUC.Check(c.Request.Context())
	if !status.Healthy() {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Success:   false,
			Message:   "System unavailable",
			Data:      status,
			RequestID: c.GetString(response.RequestIDKey),
		})
		return
	}
	response.Success(c, http.StatusOK, "System operational", status)
}

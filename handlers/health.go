package handlers

import (
	"net/http"

	"apnakam/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Status func() utils.HealthStatus
}

func (h *HealthHandler) HealthHandler(c *gin.Context) {
	status := h.Status()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "healthy": status.Healthy()})
}

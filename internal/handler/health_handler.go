package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/authd/internal/pkg/response"
)

// StoreProbe reports the store clock, proving connectivity end to end.
type StoreProbe interface {
	Now(ctx context.Context) (time.Time, error)
}

type HealthHandler struct {
	probe StoreProbe
}

func NewHealthHandler(probe StoreProbe) *HealthHandler {
	return &HealthHandler{probe: probe}
}

func (h *HealthHandler) Index(c *gin.Context) {
	response.OK(c, gin.H{
		"service": "authd",
		"status":  "running",
	})
}

func (h *HealthHandler) Health(c *gin.Context) {
	response.OK(c, gin.H{"status": "ok"})
}

func (h *HealthHandler) TestDB(c *gin.Context) {
	now, err := h.probe.Now(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "store unavailable")
		return
	}
	response.OK(c, gin.H{
		"success": true,
		"time":    now,
	})
}

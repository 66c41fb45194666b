package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schedulepro/schedule-pro-api/internal/catalog"
	"github.com/schedulepro/schedule-pro-api/internal/service"
)

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	store   *catalog.Catalog
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(metrics *service.MetricsService, store *catalog.Catalog) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, store: store}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health reports service and catalog status for readiness/liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	payload := gin.H{"status": "ok"}
	if h.store != nil {
		payload["catalogLoaded"] = !h.store.Empty()
		payload["catalogSize"] = h.store.SectionCount()
	}
	c.JSON(http.StatusOK, payload)
}

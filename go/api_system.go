package bridgeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-order-bridge/internal/platform/metrics"
)

// SystemAPI serves liveness and scrape endpoints.
type SystemAPI struct {
	metrics *metrics.Registry
}

func NewSystemAPI(registry *metrics.Registry) SystemAPI {
	return SystemAPI{metrics: registry}
}

// Get /healthz
func (api *SystemAPI) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Get /metrics
func (api *SystemAPI) Metrics(c *gin.Context) {
	if api.metrics == nil {
		c.Status(http.StatusNotFound)
		return
	}
	api.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

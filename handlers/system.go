package handlers

import (
	"net/http"

	"studiobook/utils"

	"github.com/gin-gonic/gin"
)

// GetMaintenanceHandler reports the remotely controlled maintenance flag.
// Public: the client checks this before rendering anything.
func (hb *HandlerBundle) GetMaintenanceHandler(c *gin.Context) {
	c.JSON(http.StatusOK, hb.Maintenance.Status(c.Request.Context()))
}

// HealthHandler reports the latest dependency health snapshot.
func (hb *HandlerBundle) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"deps":   utils.GetHealthStatus(),
	})
}

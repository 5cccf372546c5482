package handlers

import (
	"net/http"
	"time"

	"studiobook/middleware"
	"studiobook/models"
	"studiobook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostAnalyticsEventHandler records a client telemetry event. Fire and
// forget: a failed insert never surfaces to the client.
func (hb *HandlerBundle) PostAnalyticsEventHandler(c *gin.Context) {
	var event models.AnalyticsEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid event", err.Error())
		return
	}

	if sess, ok := middleware.GetSession(c); ok {
		event.UserID = sess.UID
	}
	event.CreatedAt = time.Now().UTC()

	if err := hb.Analytics.Insert(c.Request.Context(), event); err != nil {
		zap.L().Warn("analytics insert failed", zap.String("event", event.Name), zap.Error(err))
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "recorded"})
}

package handlers

import (
	"net/http"

	"studiobook/middleware"
	"studiobook/utils"

	"github.com/gin-gonic/gin"
)

// GetPointsHandler returns the user's current point balance.
func (hb *HandlerBundle) GetPointsHandler(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Please log in again.", "")
		return
	}

	balance := hb.Points.Balance(c.Request.Context(), sess.UID)
	c.JSON(http.StatusOK, gin.H{
		"points": balance,
		"total":  balance.Total(),
	})
}

package handlers

import (
	"net/http"

	"studiobook/utils"

	"github.com/gin-gonic/gin"
)

// GetPlansHandler returns the active plan catalog grouped by category.
func (hb *HandlerBundle) GetPlansHandler(c *gin.Context) {
	groups, err := hb.Plans.Catalog(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load plans", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

package handlers

import (
	"io"
	"net/http"
	"time"

	"studiobook/middleware"
	"studiobook/utils"

	"github.com/gin-gonic/gin"
)

// GetClassesHandler returns the annotated class listing for a date. The date
// defaults to today in studio-local terms.
func (hb *HandlerBundle) GetClassesHandler(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Please log in again.", "")
		return
	}

	date := c.Query("date")
	if date == "" {
		date = hb.Clock.Today()
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date", "expected YYYY-MM-DD")
		return
	}

	view, err := hb.Booking.Classes(c.Request.Context(), sess, date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load classes", err.Error())
		return
	}
	c.JSON(http.StatusOK, view)
}

// StreamClassesHandler pushes live schedule updates for one date over SSE.
// The connection is bound to a single date; picking a new date is a new
// stream, which tears this subscription down first.
func (hb *HandlerBundle) StreamClassesHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = hb.Clock.Today()
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date", "expected YYYY-MM-DD")
		return
	}

	loader := hb.Schedule.NewLoader()
	defer loader.Close()
	if err := loader.Select(c.Request.Context(), date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date", err.Error())
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case view, ok := <-loader.Updates():
			if !ok {
				return false
			}
			c.SSEvent("schedule", view)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

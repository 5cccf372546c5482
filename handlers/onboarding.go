package handlers

import (
	"errors"
	"net/http"

	"studiobook/middleware"
	"studiobook/models"
	"studiobook/services/session"
	"studiobook/utils"

	"github.com/gin-gonic/gin"
)

// CompleteOnboardingHandler creates the user's profile document.
func (hb *HandlerBundle) CompleteOnboardingHandler(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Please log in again.", "")
		return
	}

	var req models.OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid onboarding data", err.Error())
		return
	}

	profile, err := hb.Sessions.CompleteOnboarding(c.Request.Context(), sess, req)
	if err != nil {
		if errors.Is(err, session.ErrAlreadyOnboarded) {
			utils.JSONError(c, http.StatusConflict, "Profile already exists", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to complete onboarding", err.Error())
		return
	}
	c.JSON(http.StatusCreated, profile)
}

package handlers

import (
	"errors"
	"net/http"

	"studiobook/middleware"
	"studiobook/services/session"
	"studiobook/utils"

	"github.com/gin-gonic/gin"
)

type verifySessionRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// VerifySessionHandler resolves an ID token into a session, telling the
// client whether the user still needs onboarding.
func (hb *HandlerBundle) VerifySessionHandler(c *gin.Context) {
	var req verifySessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	sess, err := hb.Sessions.Resolve(c.Request.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, session.ErrUnauthenticated) {
			utils.JSONError(c, http.StatusUnauthorized, "Please log in again.", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to verify session", err.Error())
		return
	}
	c.JSON(http.StatusOK, sess)
}

// SignOutHandler revokes the user's refresh tokens.
func (hb *HandlerBundle) SignOutHandler(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Please log in again.", "")
		return
	}
	if err := hb.Sessions.SignOut(c.Request.Context(), sess.UID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to sign out", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}

type resetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordHandler sends a password reset email. The success response is
// the same whether or not the account exists; only delivery failures surface.
func (hb *HandlerBundle) ResetPasswordHandler(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	if err := hb.Sessions.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Failed to send reset email", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset link sent if the account exists"})
}

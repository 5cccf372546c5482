package handlers

import (
	"errors"
	"net/http"

	"studiobook/middleware"
	"studiobook/services/payment"
	"studiobook/utils"

	"github.com/gin-gonic/gin"
)

type createAttemptRequest struct {
	PlanCode string `json:"planCode" binding:"required"`
}

// CreatePaymentAttemptHandler opens a checkout for one plan purchase.
func (hb *HandlerBundle) CreatePaymentAttemptHandler(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Please log in again.", "")
		return
	}

	var req createAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	attempt, err := hb.Payments.Initiate(c.Request.Context(), sess, req.PlanCode)
	if err != nil {
		if errors.Is(err, payment.ErrPlanNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Plan not found", "")
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "Failed to start payment", err.Error())
		return
	}
	c.JSON(http.StatusCreated, attempt)
}

// GetPaymentAttemptHandler is the poll target for the purchase handshake.
func (hb *HandlerBundle) GetPaymentAttemptHandler(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Please log in again.", "")
		return
	}

	attempt, err := hb.Payments.Attempt(c.Request.Context(), sess.UID, c.Param("id"))
	if err != nil {
		writePaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

// ReportAbandonedHandler records that the user closed the checkout window.
func (hb *HandlerBundle) ReportAbandonedHandler(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Please log in again.", "")
		return
	}

	if err := hb.Payments.ReportAbandoned(c.Request.Context(), sess.UID, c.Param("id")); err != nil {
		writePaymentError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "abandon recorded"})
}

func writePaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, payment.ErrAttemptNotFound):
		utils.JSONError(c, http.StatusNotFound, "Payment attempt not found", "")
	case errors.Is(err, payment.ErrNotAttemptOwner):
		utils.JSONError(c, http.StatusForbidden, "Not your payment attempt", "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Payment lookup failed", err.Error())
	}
}

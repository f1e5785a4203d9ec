package handlers

import (
	"net/http"

	"voyago/services/booking"
	"voyago/services/payment"

	"github.com/gin-gonic/gin"
)

// InitiatePaymentHandler creates a charge with the chosen provider and
// returns the redirect URL for the user's browser.
func (h *BookingHandler) InitiatePaymentHandler(c *gin.Context) {
	var input struct {
		Provider  string `json:"provider" binding:"required"`
		ReturnURL string `json:"returnUrl" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	redirectURL, err := h.Svc.InitiatePayment(c.Request.Context(), c.Param("id"), input.Provider, input.ReturnURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirectUrl": redirectURL})
}

// ResolvePaymentHandler checks the provider once and reports the outcome.
// The UI calls this when the user returns from the provider redirect.
func (h *BookingHandler) ResolvePaymentHandler(c *gin.Context) {
	status, b, err := h.Svc.ResolvePayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result":  status,
		"retry":   status == payment.StatusAwaiting,
		"booking": b,
	})
}

// AwaitPaymentHandler polls the provider with backoff until the payment
// resolves or the budget runs out.
func (h *BookingHandler) AwaitPaymentHandler(c *gin.Context) {
	status, err := h.Svc.AwaitPayment(c.Request.Context(), c.Param("id"), booking.DefaultPollPolicy())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": status})
}

// PaymentHistoryHandler returns the append-only payments log for a booking.
func (h *BookingHandler) PaymentHistoryHandler(c *gin.Context) {
	records, err := h.Svc.PaymentHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": records})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListAllBookingsHandler returns every booking for the admin dashboard.
func (h *BookingHandler) ListAllBookingsHandler(c *gin.Context) {
	bookings, err := h.Svc.ListAllBookings(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListSubjectBookingsHandler returns every booking made against one
// catalog subject.
func (h *BookingHandler) ListSubjectBookingsHandler(c *gin.Context) {
	bookings, err := h.Svc.ListSubjectBookings(c.Request.Context(), c.Param("type"), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetProofHandler returns a time-limited download link for a booking's
// payment proof so the admin can inspect it before approval.
func (h *BookingHandler) GetProofHandler(c *gin.Context) {
	url, err := h.Svc.ProofDownloadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// ApproveProofHandler verifies an uploaded payment proof. This is the only
// administrative path that confirms a booking, and it also completes the
// payment, so a confirmed booking always carries a completed payment.
func (h *BookingHandler) ApproveProofHandler(c *gin.Context) {
	err := h.Svc.ApproveProof(c.Request.Context(), c.Param("id"), c.GetString("adminID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment proof approved"})
}

// AdminCancelBookingHandler cancels a booking on behalf of an administrator.
func (h *BookingHandler) AdminCancelBookingHandler(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&input)

	err := h.Svc.CancelBooking(c.Request.Context(), c.Param("id"), "admin:"+c.GetString("adminID"), input.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"voyago/services/booking"
	"voyago/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking-payment coordinator over HTTP.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

// NewBookingHandler creates a new BookingHandler instance.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// respondServiceError maps the coordinator's error taxonomy onto HTTP codes.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case booking.IsValidation(err):
		utils.JSONError(c, http.StatusUnprocessableEntity, "invalid request", err.Error())
	case booking.IsGateway(err):
		utils.JSONError(c, http.StatusBadGateway, "payment provider error", err.Error())
	case booking.IsStore(err):
		utils.JSONError(c, http.StatusInternalServerError, "storage error", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}

// CreateBookingHandler creates a booking from the user-facing form.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	req.UserID = c.GetString("userID")

	b, err := h.Svc.CreateBooking(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": b})
}

// GetBookingHandler returns one booking.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Svc.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// ListMyBookingsHandler returns the caller's bookings.
func (h *BookingHandler) ListMyBookingsHandler(c *gin.Context) {
	bookings, err := h.Svc.ListUserBookings(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CancelBookingHandler cancels a booking on behalf of its owner.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	// Body is optional; a missing reason gets a default.
	_ = c.ShouldBindJSON(&input)

	err := h.Svc.CancelBooking(c.Request.Context(), c.Param("id"), c.GetString("userID"), input.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

// DeleteBookingHandler hard-deletes a booking.
func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	if err := h.Svc.DeleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking deleted"})
}

// UploadProofHandler accepts a proof-of-payment document for a booking.
func (h *BookingHandler) UploadProofHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "details": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "details": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	proof, err := h.Svc.UploadPaymentProof(c.Request.Context(), c.Param("id"), booking.ProofUpload{
		LocalPath:   tempFilePath,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proof": proof})
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	bookingRepo "voyago/database/repository/booking"
	catalogRepo "voyago/database/repository/catalog"
	"voyago/models"

	"go.uber.org/zap"
)

// CreateBooking validates the form input, freezes the total price from the
// subject's current unit price, and persists the booking as pending/pending.
func (svc *DefaultBookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	subject, err := svc.Catalog.GetSubject(ctx, req.SubjectType, req.SubjectID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			return nil, NewValidationError("subjectId", "subject does not exist")
		}
		return nil, &StoreError{Op: "subject lookup", Err: err}
	}
	if subject.Capacity > 0 && req.Units > subject.Capacity {
		return nil, NewValidationError("units",
			fmt.Sprintf("requested %d exceeds subject capacity %d", req.Units, subject.Capacity))
	}

	b := &models.Booking{
		UserID:        req.UserID,
		SubjectType:   req.SubjectType,
		SubjectID:     req.SubjectID,
		Units:         req.Units,
		Date:          req.Date,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		TotalPrice:    subject.UnitPrice * int64(req.Units),
		Currency:      subject.Currency,
		Contact:       req.Contact,
		Details:       req.Details,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}

	if err := svc.Repo.Create(ctx, b); err != nil {
		return nil, &StoreError{Op: "create booking", Err: err}
	}

	svc.Logger.Info("booking created",
		zap.String("booking", b.ID),
		zap.String("subject", b.SubjectType+"/"+b.SubjectID),
		zap.Int64("totalPrice", b.TotalPrice))
	return b, nil
}

func validateCreateRequest(req CreateBookingRequest) error {
	switch req.SubjectType {
	case models.SubjectDestination, models.SubjectEvent, models.SubjectAccommodation:
	default:
		return NewValidationError("subjectType", "must be destination, event or accommodation")
	}
	if req.SubjectID == "" {
		return NewValidationError("subjectId", "is required")
	}
	if req.Units < 1 {
		return NewValidationError("units", "must be at least 1")
	}
	if _, err := mail.ParseAddress(req.Contact.Email); err != nil {
		return NewValidationError("contact.email", "is not a valid email address")
	}
	if req.Contact.Name == "" {
		return NewValidationError("contact.name", "is required")
	}
	return nil
}

// GetBooking returns a booking by ID.
func (svc *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := svc.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewValidationError("bookingId", "booking not found")
		}
		return nil, &StoreError{Op: "get booking", Err: err}
	}
	return b, nil
}

// ListUserBookings returns all bookings made by a user.
func (svc *DefaultBookingService) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings, err := svc.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, &StoreError{Op: "list bookings", Err: err}
	}
	return bookings, nil
}

// ListAllBookings returns every booking (admin listing).
func (svc *DefaultBookingService) ListAllBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := svc.Repo.GetAll(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list bookings", Err: err}
	}
	return bookings, nil
}

// ListSubjectBookings returns every booking made against one catalog
// subject, for the admin per-subject view.
func (svc *DefaultBookingService) ListSubjectBookings(ctx context.Context, subjectType, subjectID string) ([]models.Booking, error) {
	bookings, err := svc.Repo.GetBySubject(ctx, subjectType, subjectID)
	if err != nil {
		return nil, &StoreError{Op: "list bookings", Err: err}
	}
	return bookings, nil
}

// CancelBooking marks a booking cancelled. Cancelling an already-cancelled
// booking is rejected so the cancellation timestamp is never double-applied.
// Completed payments are not reversed; refunds are out of scope.
func (svc *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, actor, reason string) error {
	if reason == "" {
		reason = "cancelled by " + actor
	}

	applied, err := svc.Repo.Cancel(ctx, bookingID, time.Now(), reason)
	if err != nil {
		return &StoreError{Op: "cancel booking", Err: err}
	}
	if !applied {
		if _, err := svc.Repo.GetByID(ctx, bookingID); errors.Is(err, bookingRepo.ErrNotFound) {
			return NewValidationError("bookingId", "booking not found")
		}
		return NewValidationError("status", "booking is already cancelled")
	}
	svc.dropMirror(ctx, bookingID)

	svc.Logger.Info("booking cancelled",
		zap.String("booking", bookingID),
		zap.String("actor", actor))
	return nil
}

// DeleteBooking hard-deletes a booking regardless of status. The payments
// log is untouched, so completed payment history survives the delete.
func (svc *DefaultBookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	if err := svc.Repo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return NewValidationError("bookingId", "booking not found")
		}
		return &StoreError{Op: "delete booking", Err: err}
	}

	svc.Logger.Info("booking deleted", zap.String("booking", bookingID))
	return nil
}

package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"voyago/models"

	"go.mongodb.org/mongo-driver/bson"
)

// SetPaymentAttempt records the active provider attempt for a booking.
func (r *mongoBookingRepo) SetPaymentAttempt(ctx context.Context, id string, attempt *models.PaymentAttempt) error {
	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{
		"payment":   attempt,
		"updatedAt": time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set payment attempt: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// TransitionPayment applies a guarded payment state change. The filter pins
// the row's current payment status and excludes cancelled bookings, which
// makes repeated terminal resolutions no-ops.
func (r *mongoBookingRepo) TransitionPayment(ctx context.Context, id string, fromPaymentStatuses []string, t PaymentTransition) (bool, error) {
	filter := bson.M{
		"id":            id,
		"paymentStatus": bson.M{"$in": fromPaymentStatuses},
		"status":        bson.M{"$ne": models.BookingStatusCancelled},
	}

	set := bson.M{"updatedAt": time.Now()}
	if t.PaymentStatus != "" {
		set["paymentStatus"] = t.PaymentStatus
	}
	if t.Status != "" {
		set["status"] = t.Status
	}
	if t.ConfirmedAt != nil {
		set["confirmedAt"] = t.ConfirmedAt
	}
	if t.NeedsReview {
		set["needsReview"] = true
	}

	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to transition payment state: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

// Cancel marks the booking cancelled unless it already is.
func (r *mongoBookingRepo) Cancel(ctx context.Context, id string, at time.Time, reason string) (bool, error) {
	filter := bson.M{
		"id":     id,
		"status": bson.M{"$ne": models.BookingStatusCancelled},
	}
	update := bson.M{"$set": bson.M{
		"status":       models.BookingStatusCancelled,
		"cancelledAt":  at,
		"cancelReason": reason,
		"updatedAt":    time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to cancel booking: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

// SetProof attaches a payment proof and moves pending to processing in one
// guarded update.
func (r *mongoBookingRepo) SetProof(ctx context.Context, id string, proof models.PaymentProof) (bool, error) {
	filter := bson.M{
		"id":            id,
		"paymentStatus": models.PaymentStatusPending,
		"status":        bson.M{"$ne": models.BookingStatusCancelled},
	}
	update := bson.M{"$set": bson.M{
		"proof":         proof,
		"paymentStatus": models.PaymentStatusProcessing,
		"updatedAt":     time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to attach payment proof: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

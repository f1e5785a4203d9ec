package bookingRepo

import (
	"context"
	"log"
	"time"

	"voyago/database"
	"voyago/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// PaymentTransition describes a guarded multi-field payment state change.
// Fields left zero are not touched.
type PaymentTransition struct {
	PaymentStatus string
	Status        string
	ConfirmedAt   *time.Time
	NeedsReview   bool
}

// BookingRepository defines the record-store contract for bookings. All
// status transitions are conditioned on the row's current state so that
// concurrent resolvers cannot double-apply a transition.
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Booking, error)
	GetBySubject(ctx context.Context, subjectType, subjectID string) ([]models.Booking, error)
	GetAll(ctx context.Context) ([]models.Booking, error)
	Delete(ctx context.Context, id string) error

	// SetPaymentAttempt records the active provider attempt for a booking.
	SetPaymentAttempt(ctx context.Context, id string, attempt *models.PaymentAttempt) error

	// TransitionPayment applies t only when the booking is not cancelled and
	// its current payment status is one of fromPaymentStatuses. Returns
	// whether the transition was applied.
	TransitionPayment(ctx context.Context, id string, fromPaymentStatuses []string, t PaymentTransition) (bool, error)

	// Cancel marks the booking cancelled unless it already is. Returns
	// whether the cancellation was applied.
	Cancel(ctx context.Context, id string, at time.Time, reason string) (bool, error)

	// SetProof attaches a payment proof and moves payment status from
	// pending to processing in one guarded update.
	SetProof(ctx context.Context, id string, proof models.PaymentProof) (bool, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &mongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
	if err := repo.ensureIndexes(); err != nil {
		// Index creation failing should not prevent startup.
		log.Printf("warning: booking indexes: %v", err)
	}
	return repo
}

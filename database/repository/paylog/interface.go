package paylogRepo

import (
	"context"

	"voyago/database"
	"voyago/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// PaymentLogRepository is the append-only log of payment attempts and
// resolutions. Entries outlive their booking.
type PaymentLogRepository interface {
	Append(ctx context.Context, record models.PaymentRecord) (string, error)
	GetByBookingID(ctx context.Context, bookingID string) ([]models.PaymentRecord, error)
}

type mongoPaymentLogRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentLogRepo returns a PaymentLogRepository backed by MongoDB.
func NewMongoPaymentLogRepo() PaymentLogRepository {
	return &mongoPaymentLogRepo{
		coll: database.DB().Collection("payments"),
	}
}

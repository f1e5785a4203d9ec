package booking

import (
	"context"
	"time"

	bookingRepo "voyago/database/repository/booking"
	catalogRepo "voyago/database/repository/catalog"
	paylogRepo "voyago/database/repository/paylog"
	"voyago/models"
	"voyago/services/payment"
	"voyago/services/storage"

	"go.uber.org/zap"
)

// TokenCache mirrors the active payment attempt (provider and poll token) so
// resolves can skip the booking-row read. The booking row stays the source
// of truth; a miss is reported as an error from Get.
type TokenCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// CreateBookingRequest carries the user-facing booking form input.
type CreateBookingRequest struct {
	UserID      string                `json:"userId"`
	SubjectType string                `json:"subjectType"`
	SubjectID   string                `json:"subjectId"`
	Units       int                   `json:"units"`
	Date        string                `json:"date,omitempty"`
	StartDate   string                `json:"startDate,omitempty"`
	EndDate     string                `json:"endDate,omitempty"`
	Contact     models.ContactDetails `json:"contact"`
	Details     map[string]any        `json:"details,omitempty"`
}

// ProofUpload describes a payment-proof file staged for upload.
type ProofUpload struct {
	LocalPath   string
	ContentType string
	Size        int64
}

// BookingService owns the lifecycle of a booking from creation through
// payment resolution.
type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
	ListAllBookings(ctx context.Context) ([]models.Booking, error)

	ListSubjectBookings(ctx context.Context, subjectType, subjectID string) ([]models.Booking, error)

	InitiatePayment(ctx context.Context, bookingID, provider, returnURL string) (string, error)
	ResolvePayment(ctx context.Context, bookingID string) (payment.Status, *models.Booking, error)
	AwaitPayment(ctx context.Context, bookingID string, policy PollPolicy) (payment.Status, error)
	PaymentHistory(ctx context.Context, bookingID string) ([]models.PaymentRecord, error)

	CancelBooking(ctx context.Context, bookingID, actor, reason string) error
	DeleteBooking(ctx context.Context, bookingID string) error

	UploadPaymentProof(ctx context.Context, bookingID string, upload ProofUpload) (*models.PaymentProof, error)
	ProofDownloadURL(ctx context.Context, bookingID string) (string, error)
	ApproveProof(ctx context.Context, bookingID, adminID string) error
}

// DefaultBookingService implements BookingService. All collaborators are
// injected; there is no ambient client state.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Catalog  catalogRepo.CatalogRepository
	PayLog   paylogRepo.PaymentLogRepository
	Gateways *payment.Registry
	Storage  storage.StorageService
	Cache    TokenCache // optional poll-token mirror; Mongo stays source of truth
	Logger   *zap.Logger
}

// NewBookingService constructs the coordinator.
func NewBookingService(
	repo bookingRepo.BookingRepository,
	catalog catalogRepo.CatalogRepository,
	payLog paylogRepo.PaymentLogRepository,
	gateways *payment.Registry,
	storageSvc storage.StorageService,
	cache TokenCache,
	logger *zap.Logger,
) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:     repo,
		Catalog:  catalog,
		PayLog:   payLog,
		Gateways: gateways,
		Storage:  storageSvc,
		Cache:    cache,
		Logger:   logger,
	}
}

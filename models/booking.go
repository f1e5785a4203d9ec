package models

import "time"

// Booking status values.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Payment status values.
const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusCompleted  = "completed"
	PaymentStatusFailed     = "failed"
)

// Subject types a booking can reference. Exactly one per booking.
const (
	SubjectDestination   = "destination"
	SubjectEvent         = "event"
	SubjectAccommodation = "accommodation"
)

// ContactDetails carries the booker's contact information.
type ContactDetails struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

// PaymentProof references an uploaded proof-of-payment document in object storage.
type PaymentProof struct {
	Path       string    `bson:"path" json:"path"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

// Booking represents a reservation against a destination, event or accommodation.
// TotalPrice is in minor currency units and is frozen at creation time; it is
// never recomputed if the subject's price later changes.
type Booking struct {
	ID          string         `bson:"id" json:"id"`
	UserID      string         `bson:"userId" json:"userId"`
	SubjectType string         `bson:"subjectType" json:"subjectType"` // "destination" | "event" | "accommodation"
	SubjectID   string         `bson:"subjectId" json:"subjectId"`
	Units       int            `bson:"units" json:"units"` // people or guests
	Date        string         `bson:"date,omitempty" json:"date,omitempty"`
	StartDate   string         `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate     string         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	TotalPrice  int64          `bson:"totalPrice" json:"totalPrice"` // minor units
	Currency    string         `bson:"currency" json:"currency"`
	Contact     ContactDetails `bson:"contact" json:"contact"`
	Details     map[string]any `bson:"details,omitempty" json:"details,omitempty"` // opaque booking details

	Status        string `bson:"status" json:"status"`
	PaymentStatus string `bson:"paymentStatus" json:"paymentStatus"`
	NeedsReview   bool   `bson:"needsReview,omitempty" json:"needsReview,omitempty"`

	Payment *PaymentAttempt `bson:"payment,omitempty" json:"payment,omitempty"` // active attempt
	Proof   *PaymentProof   `bson:"proof,omitempty" json:"proof,omitempty"`

	ConfirmedAt  *time.Time `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`
	CancelledAt  *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CancelReason string     `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// PaymentTerminal reports whether the booking's payment state admits no
// further transitions from resolution.
func (b *Booking) PaymentTerminal() bool {
	return b.PaymentStatus == PaymentStatusCompleted || b.Status == BookingStatusCancelled
}

package models

import "time"

// PaymentAttempt is the active provider charge/session for a booking. Exactly
// one attempt is active at a time; a new attempt supersedes a failed one. The
// poll token is persisted here (server side, keyed by booking) so status
// reconciliation survives the client closing its tab.
type PaymentAttempt struct {
	Provider    string    `bson:"provider" json:"provider"`
	Reference   string    `bson:"reference" json:"reference"` // our reference sent to the provider
	RedirectURL string    `bson:"redirectUrl" json:"redirectUrl"`
	PollToken   string    `bson:"pollToken,omitempty" json:"pollToken,omitempty"`   // redirect+poll providers
	SessionID   string    `bson:"sessionId,omitempty" json:"sessionId,omitempty"`   // hosted-session providers
	Amount      int64     `bson:"amount" json:"amount"`                             // minor units, equals booking TotalPrice
	Currency    string    `bson:"currency" json:"currency"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// PaymentRecord is one append-only entry in the payments log. The log keeps
// financial history even when the owning booking is hard-deleted.
type PaymentRecord struct {
	ID        string    `bson:"id" json:"id"`
	BookingID string    `bson:"bookingId" json:"bookingId"`
	Provider  string    `bson:"provider" json:"provider"`
	Reference string    `bson:"reference" json:"reference"`
	Amount    int64     `bson:"amount" json:"amount"`
	Currency  string    `bson:"currency" json:"currency"`
	Event     string    `bson:"event" json:"event"` // "initiated" | "completed" | "failed" | "cancelled"
	Message   string    `bson:"message,omitempty" json:"message,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

package models

import "time"

// Destination is a bookable place (tour, attraction). UnitPrice is per person
// in minor currency units.
type Destination struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Location    string    `bson:"location" json:"location"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	UnitPrice   int64     `bson:"unitPrice" json:"unitPrice"`
	Currency    string    `bson:"currency" json:"currency"`
	ImagePath   string    `bson:"imagePath,omitempty" json:"imagePath,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Event is a dated happening with limited capacity. UnitPrice is per ticket.
type Event struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Location    string    `bson:"location" json:"location"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Date        string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	UnitPrice   int64     `bson:"unitPrice" json:"unitPrice"`
	Currency    string    `bson:"currency" json:"currency"`
	Capacity    int       `bson:"capacity" json:"capacity"`
	ImagePath   string    `bson:"imagePath,omitempty" json:"imagePath,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Accommodation is a stayable property. UnitPrice is per guest per stay.
type Accommodation struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Location    string    `bson:"location" json:"location"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	UnitPrice   int64     `bson:"unitPrice" json:"unitPrice"`
	Currency    string    `bson:"currency" json:"currency"`
	MaxGuests   int       `bson:"maxGuests" json:"maxGuests"`
	ImagePath   string    `bson:"imagePath,omitempty" json:"imagePath,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Subject is the capacity/price view of a bookable thing, resolved from one
// of the catalog collections.
type Subject struct {
	Type      string
	ID        string
	UnitPrice int64
	Currency  string
	Capacity  int // 0 means the subject defines no capacity bound
}

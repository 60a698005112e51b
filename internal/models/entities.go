package models

import (
	"time"
)

// Booking statuses. The core only ever writes "pending"; "completed" and
// "cancelled" are set by the payment confirmation collaborator.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Booking represents a single reservation. There is at most one live booking
// per email address; the storage key is derived from the email.
type Booking struct {
	StorageKey    string    `json:"storage_key" db:"storage_key"`
	Email         string    `json:"email" db:"email"`
	Phone         string    `json:"phone" db:"phone"`
	Tickets       int       `json:"tickets" db:"tickets"`
	Amount        int64     `json:"amount" db:"amount"`
	Status        string    `json:"status" db:"status"`
	BookingID     *string   `json:"booking_id" db:"booking_id"`
	SecurityHash  *string   `json:"-" db:"security_hash"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	ValidityUntil time.Time `json:"validity_until" db:"validity_until"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// IsExpired reports whether the booking's validity window has elapsed at t.
func (b *Booking) IsExpired(t time.Time) bool {
	return !b.ValidityUntil.After(t)
}

// PhoneIndexEntry maps a normalized phone number to the owning email and
// storage key. Written once per create and removed on expiry or when an
// expired booking for the same email is replaced. A phone number that moves
// to a different email while the old booking is still valid keeps pointing
// at the old email (known limitation).
type PhoneIndexEntry struct {
	NormalizedPhone string    `json:"normalized_phone" db:"phone_key"`
	Phone           string    `json:"phone" db:"phone"`
	Email           string    `json:"email" db:"email"`
	StorageKey      string    `json:"storage_key" db:"storage_key"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

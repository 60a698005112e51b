package models

import "time"

// NATS event types
const (
	EventBookingCreated = "booking.created"
	EventBookingExpired = "booking.expired"
)

// BookingCreatedEvent is published after a fresh booking write.
type BookingCreatedEvent struct {
	StorageKey string    `json:"storage_key"`
	Email      string    `json:"email"`
	Tickets    int       `json:"tickets"`
	Amount     int64     `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}

// BookingExpiredEvent is published for every booking removed by the
// expiration sweep or by lazy expiry on the read path.
type BookingExpiredEvent struct {
	StorageKey string    `json:"storage_key"`
	Email      string    `json:"email"`
	Reason     string    `json:"reason"`
	Timestamp  time.Time `json:"timestamp"`
}

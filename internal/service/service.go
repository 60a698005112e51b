package service

import (
	"context"
	"time"

	"athena/internal/clock"
	"athena/internal/config"
	"athena/internal/external"
	"athena/internal/models"
	"athena/internal/repository"
)

// Store is the booking persistence surface the service depends on. The
// multi-table operations are atomic: create+index and delete+index either
// both land or neither does.
type Store interface {
	GetByKey(ctx context.Context, storageKey string) (*models.Booking, error)
	GetByBookingID(ctx context.Context, bookingID string) (*models.Booking, error)
	ScanAll(ctx context.Context) ([]models.Booking, error)
	CreateBookingWithIndex(ctx context.Context, booking *models.Booking, entry *models.PhoneIndexEntry) error
	DeleteBookingWithIndex(ctx context.Context, storageKey, normalizedPhone string) error
}

// PhoneLookup resolves a normalized phone number to its index entry, nil
// when absent.
type PhoneLookup interface {
	Get(ctx context.Context, normalizedPhone string) (*models.PhoneIndexEntry, error)
}

// Notifier is the outbound confirmation collaborator. Called once per fresh
// create; failure surfaces as a flag on the result, never as an error.
type Notifier interface {
	Send(email, phone string, tickets int) error
}

// Publisher emits booking lifecycle events. Publish failures are logged and
// never fail the operation.
type Publisher interface {
	Publish(subject string, data interface{}) error
}

// Locker guards the create path's check-then-write across processes. The
// store's conditional insert remains the authority; a missing or failing
// locker only widens the race window.
type Locker interface {
	AcquireCreateLock(ctx context.Context, storageKey string, ttl time.Duration) (bool, error)
	ReleaseCreateLock(ctx context.Context, storageKey string) error
}

type Services struct {
	Bookings *BookingService
}

func NewServices(repos *repository.Repositories, notifier Notifier, publisher Publisher, locker Locker,
	payments *external.PaymentURLBuilder, clk clock.Clock, cfg config.BookingConfig) *Services {
	return &Services{
		Bookings: NewBookingService(repos, repos.PhoneIndex, notifier, publisher, locker, payments, clk, cfg),
	}
}

package repository

import (
	"context"
	"fmt"

	"athena/internal/apperrors"
	"athena/internal/database"
	"athena/internal/models"
)

// Repositories bundles the two collections. The store serializes individual
// row writes; cross-table consistency is this package's job, so every
// multi-table mutation runs in a single transaction.
type Repositories struct {
	db         *database.DB
	Bookings   *BookingRepository
	PhoneIndex *PhoneIndexRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		db:         db,
		Bookings:   NewBookingRepository(db),
		PhoneIndex: NewPhoneIndexRepository(db),
	}
}

// CreateBookingWithIndex persists the booking and, when entry is non-nil, its
// phone index entry in one transaction. The insert is conditional on the
// storage key being free, so two concurrent creates for the same new email
// cannot both write: the loser gets apperrors.ErrAlreadyExists.
func (r *Repositories) CreateBookingWithIndex(ctx context.Context, booking *models.Booking, entry *models.PhoneIndexEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create transaction: %w", err)
	}
	defer tx.Rollback()

	inserted, err := r.Bookings.insertTx(ctx, tx, booking)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	if !inserted {
		return apperrors.ErrAlreadyExists
	}

	if entry != nil {
		if err := r.PhoneIndex.putTx(ctx, tx, entry); err != nil {
			return fmt.Errorf("put phone index entry: %w", err)
		}
	}

	return tx.Commit()
}

// DeleteBookingWithIndex removes the booking and, when normalizedPhone is
// non-empty, the matching phone index entry in one transaction. Deleting an
// already-absent row is not an error.
func (r *Repositories) DeleteBookingWithIndex(ctx context.Context, storageKey, normalizedPhone string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.Bookings.deleteTx(ctx, tx, storageKey); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	if normalizedPhone != "" {
		if err := r.PhoneIndex.deleteTx(ctx, tx, normalizedPhone); err != nil {
			return fmt.Errorf("delete phone index entry: %w", err)
		}
	}

	return tx.Commit()
}

// GetByKey reads a booking by its derived storage key.
func (r *Repositories) GetByKey(ctx context.Context, storageKey string) (*models.Booking, error) {
	return r.Bookings.GetByKey(ctx, storageKey)
}

// GetByBookingID resolves a booking code to its record.
func (r *Repositories) GetByBookingID(ctx context.Context, bookingID string) (*models.Booking, error) {
	return r.Bookings.GetByBookingID(ctx, bookingID)
}

// ScanAll returns every booking. Used only by the expiration sweep.
func (r *Repositories) ScanAll(ctx context.Context) ([]models.Booking, error) {
	return r.Bookings.ScanAll(ctx)
}

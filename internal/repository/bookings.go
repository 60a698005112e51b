package repository

import (
	"context"
	"database/sql"

	"athena/internal/database"
	"athena/internal/models"
)

type BookingRepository struct {
	db *database.DB
}

func NewBookingRepository(db *database.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `storage_key, email, phone, tickets, amount, status,
       booking_id, security_hash, created_at, validity_until, updated_at`

func (r *BookingRepository) GetByKey(ctx context.Context, storageKey string) (*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE storage_key = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, storageKey))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return booking, err
}

// GetByBookingID finds a booking by its confirmation code. There is no index
// on booking_id; this is a filtered scan, acceptable for the small working
// set of live bookings.
func (r *BookingRepository) GetByBookingID(ctx context.Context, bookingID string) (*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE booking_id = $1
		LIMIT 1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, bookingID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return booking, err
}

// ScanAll returns every booking, oldest first. Only the expiration sweep
// calls this; it is O(n) in the number of live bookings.
func (r *BookingRepository) ScanAll(ctx context.Context) ([]models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}

// insertTx writes the booking inside tx. Returns false without error when
// the storage key is already taken, so the caller can treat the race loss
// as an idempotency hit rather than a failure.
func (r *BookingRepository) insertTx(ctx context.Context, tx *sql.Tx, booking *models.Booking) (bool, error) {
	query := `
		INSERT INTO bookings (storage_key, email, phone, tickets, amount, status,
		                      booking_id, security_hash, created_at, validity_until, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (storage_key) DO NOTHING`

	result, err := tx.ExecContext(ctx, query,
		booking.StorageKey,
		booking.Email,
		booking.Phone,
		booking.Tickets,
		booking.Amount,
		booking.Status,
		booking.BookingID,
		booking.SecurityHash,
		booking.CreatedAt,
		booking.ValidityUntil,
		booking.UpdatedAt,
	)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *BookingRepository) deleteTx(ctx context.Context, tx *sql.Tx, storageKey string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE storage_key = $1`, storageKey)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	booking := &models.Booking{}
	err := row.Scan(
		&booking.StorageKey,
		&booking.Email,
		&booking.Phone,
		&booking.Tickets,
		&booking.Amount,
		&booking.Status,
		&booking.BookingID,
		&booking.SecurityHash,
		&booking.CreatedAt,
		&booking.ValidityUntil,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

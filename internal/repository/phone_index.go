package repository

import (
	"context"
	"database/sql"
	"strings"

	"athena/internal/database"
	"athena/internal/models"
)

type PhoneIndexRepository struct {
	db *database.DB
}

func NewPhoneIndexRepository(db *database.DB) *PhoneIndexRepository {
	return &PhoneIndexRepository{db: db}
}

// phoneKey builds the primary key for the phone_index table.
func phoneKey(normalizedPhone string) string {
	return "phone_" + normalizedPhone
}

func (r *PhoneIndexRepository) Get(ctx context.Context, normalizedPhone string) (*models.PhoneIndexEntry, error) {
	entry := &models.PhoneIndexEntry{}
	var key string

	query := `
		SELECT phone_key, phone, email, storage_key, created_at
		FROM phone_index
		WHERE phone_key = $1`

	err := r.db.QueryRowContext(ctx, query, phoneKey(normalizedPhone)).Scan(
		&key,
		&entry.Phone,
		&entry.Email,
		&entry.StorageKey,
		&entry.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	entry.NormalizedPhone = strings.TrimPrefix(key, "phone_")
	return entry, nil
}

// putTx upserts the entry inside tx. A later create for the same normalized
// phone overwrites the mapping; a phone that moved to another email while
// the old booking is still live is only corrected by that booking's expiry.
func (r *PhoneIndexRepository) putTx(ctx context.Context, tx *sql.Tx, entry *models.PhoneIndexEntry) error {
	query := `
		INSERT INTO phone_index (phone_key, phone, email, storage_key, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (phone_key) DO UPDATE
		SET phone = EXCLUDED.phone,
		    email = EXCLUDED.email,
		    storage_key = EXCLUDED.storage_key,
		    created_at = EXCLUDED.created_at`

	_, err := tx.ExecContext(ctx, query,
		phoneKey(entry.NormalizedPhone),
		entry.Phone,
		entry.Email,
		entry.StorageKey,
		entry.CreatedAt,
	)
	return err
}

func (r *PhoneIndexRepository) deleteTx(ctx context.Context, tx *sql.Tx, normalizedPhone string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM phone_index WHERE phone_key = $1`, phoneKey(normalizedPhone))
	return err
}

package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createBookingsTable,
		createPhoneIndexTable,
		createBookingsValidityIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// One row per email; storage_key is derived from the email address.
// booking_id deliberately has no index: lookup by booking code is a filtered
// scan over a small working set.
const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
    storage_key VARCHAR(330) PRIMARY KEY,
    email VARCHAR(320) NOT NULL,
    phone VARCHAR(32) NOT NULL DEFAULT '',
    tickets INTEGER NOT NULL,
    amount BIGINT NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    booking_id VARCHAR(32),
    security_hash VARCHAR(128),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    validity_until TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (tickets >= 1),
    CHECK (status IN ('pending', 'completed', 'cancelled'))
);`

const createPhoneIndexTable = `
CREATE TABLE IF NOT EXISTS phone_index (
    phone_key VARCHAR(48) PRIMARY KEY,
    phone VARCHAR(32) NOT NULL,
    email VARCHAR(320) NOT NULL,
    storage_key VARCHAR(330) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createBookingsValidityIndex = `
CREATE INDEX IF NOT EXISTS idx_bookings_validity_until ON bookings (validity_until);`

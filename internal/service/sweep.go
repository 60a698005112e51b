package service

import (
	"context"
	"fmt"
	"time"

	"athena/internal/logger"
)

const validityLayout = "02 Jan 2006, 15:04"

// Sweep scans every booking and removes the ones whose validity window has
// elapsed, phone index entries included. Returns the number removed. The
// scan is O(n) in live bookings, which is why it runs on the background
// sweeper's schedule instead of the request path; requests handle their own
// record's expiry lazily.
func (s *BookingService) Sweep(ctx context.Context) (int, error) {
	now := s.clock.Now()

	bookings, err := s.store.ScanAll(ctx)
	if err != nil {
		return 0, storageErr("scan bookings", err)
	}

	removed := 0
	for i := range bookings {
		booking := &bookings[i]
		if !booking.IsExpired(now) {
			continue
		}

		if err := s.removeExpired(ctx, booking); err != nil {
			logger.WithContext(ctx).Error("Failed to remove expired booking",
				"error", err, "storage_key", booking.StorageKey,
				"validity_until", booking.ValidityUntil)
			continue
		}
		removed++
	}

	return removed, nil
}

// formatValidity renders the validity deadline the way the chat surface
// shows it: "02 Jan 2006, 15:04 (Xh Ym remaining)" while live, "(EXPIRED)"
// after.
func formatValidity(until, now time.Time) string {
	text := until.Format(validityLayout)
	if until.After(now) {
		remaining := until.Sub(now)
		hours := int(remaining.Hours())
		minutes := int(remaining.Minutes()) % 60
		return fmt.Sprintf("%s (%dh %dm remaining)", text, hours, minutes)
	}
	return text + " (EXPIRED)"
}

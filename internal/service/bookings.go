package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"athena/internal/apperrors"
	"athena/internal/clock"
	"athena/internal/config"
	"athena/internal/external"
	"athena/internal/identifier"
	"athena/internal/logger"
	"athena/internal/metrics"
	"athena/internal/models"
)

// Placeholder booking IDs surfaced before the payment collaborator assigns a
// real one.
const (
	pendingBookingID    = "Pending"
	pendingPaymentLabel = "Pending Payment"
	expiredSweepReason  = "validity window elapsed"
)

type BookingService struct {
	store     Store
	phones    PhoneLookup
	notifier  Notifier
	publisher Publisher
	locker    Locker
	payments  *external.PaymentURLBuilder
	clock     clock.Clock
	cfg       config.BookingConfig
}

func NewBookingService(store Store, phones PhoneLookup, notifier Notifier, publisher Publisher, locker Locker,
	payments *external.PaymentURLBuilder, clk clock.Clock, cfg config.BookingConfig) *BookingService {
	return &BookingService{
		store:     store,
		phones:    phones,
		notifier:  notifier,
		publisher: publisher,
		locker:    locker,
		payments:  payments,
		clock:     clk,
		cfg:       cfg,
	}
}

// CreateBooking creates a pending booking for the email, or returns the
// existing one when a valid pending booking is already present (idempotent,
// no write, no notification). A valid completed booking is rejected: it must
// be consumed, cancelled, or expired before a new create is accepted. An
// expired record under the same key is removed, index entry included, and
// replaced by the fresh booking.
func (s *BookingService) CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (*models.CreateBookingResponse, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.Phone) == "" {
		return nil, fmt.Errorf("%w: phone is required", apperrors.ErrValidation)
	}
	if req.Tickets < 1 {
		return nil, fmt.Errorf("%w: tickets must be at least 1", apperrors.ErrValidation)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)
	key := identifier.DeriveKey(email)
	now := s.clock.Now()

	if s.locker != nil {
		acquired, err := s.locker.AcquireCreateLock(ctx, key, s.cfg.CreateLockTTL)
		if err != nil {
			logger.WithContext(ctx).Warn("Create lock unavailable, relying on store insert guard",
				"error", err, "storage_key", key)
		} else if acquired {
			defer func() {
				if err := s.locker.ReleaseCreateLock(ctx, key); err != nil {
					logger.WithContext(ctx).Warn("Failed to release create lock",
						"error", err, "storage_key", key)
				}
			}()
		}
	}

	existing, err := s.store.GetByKey(ctx, key)
	if err != nil {
		return nil, storageErr("get booking", err)
	}

	if existing != nil {
		switch {
		case existing.IsExpired(now):
			if err := s.removeExpired(ctx, existing); err != nil {
				return nil, storageErr("remove expired booking", err)
			}

		case existing.Status == models.StatusPending:
			metrics.IdempotentHits.Inc()
			return &models.CreateBookingResponse{
				Success:    true,
				Existing:   true,
				StorageKey: key,
				BookingID:  bookingIDLabel(existing.BookingID, pendingBookingID),
				Amount:     existing.Amount,
				PaymentURL: s.payments.URLFor(email),
			}, nil

		case existing.Status == models.StatusCompleted:
			return nil, fmt.Errorf("%w for %s until %s", apperrors.ErrAlreadyConfirmed,
				email, existing.ValidityUntil.Format(validityLayout))

		default:
			// Cancelled but still inside its window: replace it.
			if err := s.store.DeleteBookingWithIndex(ctx, key, identifier.NormalizePhone(existing.Phone)); err != nil {
				return nil, storageErr("remove cancelled booking", err)
			}
		}
	}

	booking := &models.Booking{
		StorageKey:    key,
		Email:         email,
		Phone:         phone,
		Tickets:       req.Tickets,
		Amount:        int64(req.Tickets) * s.cfg.UnitPrice,
		Status:        models.StatusPending,
		CreatedAt:     now,
		ValidityUntil: now.Add(s.cfg.ValidityWindow),
		UpdatedAt:     now,
	}

	var entry *models.PhoneIndexEntry
	if normalized := identifier.NormalizePhone(phone); normalized != "" {
		entry = &models.PhoneIndexEntry{
			NormalizedPhone: normalized,
			Phone:           phone,
			Email:           email,
			StorageKey:      key,
			CreatedAt:       now,
		}
	}

	err = s.store.CreateBookingWithIndex(ctx, booking, entry)
	if errors.Is(err, apperrors.ErrAlreadyExists) {
		// Lost the insert race to a concurrent create for the same email;
		// answer from the winner's record.
		winner, getErr := s.store.GetByKey(ctx, key)
		if getErr == nil && winner != nil && winner.Status == models.StatusPending {
			metrics.IdempotentHits.Inc()
			return &models.CreateBookingResponse{
				Success:    true,
				Existing:   true,
				StorageKey: key,
				BookingID:  bookingIDLabel(winner.BookingID, pendingBookingID),
				Amount:     winner.Amount,
				PaymentURL: s.payments.URLFor(email),
			}, nil
		}
		return nil, storageErr("create booking", err)
	}
	if err != nil {
		return nil, storageErr("create booking", err)
	}

	metrics.BookingsCreated.Inc()

	if s.publisher != nil {
		event := models.BookingCreatedEvent{
			StorageKey: key,
			Email:      email,
			Tickets:    booking.Tickets,
			Amount:     booking.Amount,
			Timestamp:  now,
		}
		if err := s.publisher.Publish(models.EventBookingCreated, event); err != nil {
			logger.WithContext(ctx).Error("Failed to publish booking created event",
				"error", err, "storage_key", key, "event_type", models.EventBookingCreated)
		}
	}

	// The booking is committed at this point; a failed send is reported as a
	// flag and never rolled back.
	notified := false
	if err := s.notifier.Send(email, phone, req.Tickets); err != nil {
		logger.WithContext(ctx).Warn("Failed to send booking notification",
			"error", err, "storage_key", key)
	} else {
		notified = true
	}

	return &models.CreateBookingResponse{
		Success:          true,
		StorageKey:       key,
		BookingID:        pendingBookingID,
		Amount:           booking.Amount,
		PaymentURL:       s.payments.URLFor(email),
		NotificationSent: notified,
	}, nil
}

// GetBookingInfo resolves a classified identifier to its booking and derives
// the validity fields. An expired record found on the way is removed before
// absence is reported.
func (s *BookingService) GetBookingInfo(ctx context.Context, kind identifier.Kind, value string) (*models.BookingInfoResponse, error) {
	booking, err := s.resolve(ctx, kind, value)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if booking.IsExpired(now) {
		if err := s.removeExpired(ctx, booking); err != nil {
			logger.WithContext(ctx).Error("Failed to remove expired booking on lookup",
				"error", err, "storage_key", booking.StorageKey)
		}
		metrics.Lookups.WithLabelValues(string(kind), "expired").Inc()
		return nil, fmt.Errorf("%w for %s: %s", apperrors.ErrNotFound, kind, value)
	}

	metrics.Lookups.WithLabelValues(string(kind), "hit").Inc()
	return &models.BookingInfoResponse{
		BookingID: bookingIDLabel(booking.BookingID, pendingPaymentLabel),
		Email:     booking.Email,
		Phone:     booking.Phone,
		Tickets:   booking.Tickets,
		Amount:    booking.Amount,
		Status:    booking.Status,
		CreatedAt: booking.CreatedAt.Format(validityLayout),
		Validity:  formatValidity(booking.ValidityUntil, now),
		IsValid:   true,
	}, nil
}

// QRPayload returns the entry-code text for a completed, still-valid booking
// with an assigned security hash.
func (s *BookingService) QRPayload(ctx context.Context, kind identifier.Kind, value string) (*models.QRPayloadResponse, error) {
	booking, err := s.resolve(ctx, kind, value)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if booking.IsExpired(now) {
		if err := s.removeExpired(ctx, booking); err != nil {
			logger.WithContext(ctx).Error("Failed to remove expired booking on QR request",
				"error", err, "storage_key", booking.StorageKey)
		}
		return nil, fmt.Errorf("%w for %s: %s", apperrors.ErrNotFound, kind, value)
	}

	if booking.Status != models.StatusCompleted || booking.BookingID == nil ||
		booking.SecurityHash == nil || *booking.SecurityHash == "" {
		return nil, fmt.Errorf("%w: no entry code for %s", apperrors.ErrNotFound, value)
	}

	return &models.QRPayloadResponse{
		Payload: external.QRPayload(*booking.BookingID, *booking.SecurityHash),
	}, nil
}

// resolve maps a classified identifier to its booking record. Email goes
// straight to the derived key; a booking code is a filtered scan; a phone
// number walks the ordered lookup variants through the phone index.
func (s *BookingService) resolve(ctx context.Context, kind identifier.Kind, value string) (*models.Booking, error) {
	switch kind {
	case identifier.KindEmail:
		booking, err := s.store.GetByKey(ctx, identifier.DeriveKey(strings.ToLower(value)))
		if err != nil {
			return nil, storageErr("get booking by email", err)
		}
		if booking == nil {
			metrics.Lookups.WithLabelValues(string(kind), "miss").Inc()
			return nil, fmt.Errorf("%w for email: %s", apperrors.ErrNotFound, value)
		}
		return booking, nil

	case identifier.KindBookingCode:
		booking, err := s.store.GetByBookingID(ctx, strings.ToUpper(value))
		if err != nil {
			return nil, storageErr("get booking by code", err)
		}
		if booking == nil {
			metrics.Lookups.WithLabelValues(string(kind), "miss").Inc()
			return nil, fmt.Errorf("%w with ID: %s", apperrors.ErrNotFound, value)
		}
		return booking, nil

	case identifier.KindPhone:
		for _, variant := range identifier.LookupVariants(value) {
			entry, err := s.phones.Get(ctx, variant)
			if err != nil {
				return nil, storageErr("get phone index entry", err)
			}
			if entry == nil {
				continue
			}

			booking, err := s.store.GetByKey(ctx, entry.StorageKey)
			if err != nil {
				return nil, storageErr("get booking by phone", err)
			}
			if booking == nil {
				// The index points at a record that no longer exists:
				// index/store drift, not "never booked".
				metrics.Lookups.WithLabelValues(string(kind), "inconsistent").Inc()
				return nil, fmt.Errorf("%w for phone: %s", apperrors.ErrDataInconsistency, value)
			}
			return booking, nil
		}
		metrics.Lookups.WithLabelValues(string(kind), "miss").Inc()
		return nil, fmt.Errorf("%w for phone: %s", apperrors.ErrNotFound, value)

	default:
		metrics.Lookups.WithLabelValues(string(kind), "miss").Inc()
		return nil, fmt.Errorf("%w: unrecognized identifier %q", apperrors.ErrNotFound, value)
	}
}

// removeExpired deletes the booking together with its phone index entry and
// publishes the expiry event.
func (s *BookingService) removeExpired(ctx context.Context, booking *models.Booking) error {
	if err := s.store.DeleteBookingWithIndex(ctx, booking.StorageKey, identifier.NormalizePhone(booking.Phone)); err != nil {
		return err
	}

	metrics.BookingsExpired.Inc()

	if s.publisher != nil {
		event := models.BookingExpiredEvent{
			StorageKey: booking.StorageKey,
			Email:      booking.Email,
			Reason:     expiredSweepReason,
			Timestamp:  s.clock.Now(),
		}
		if err := s.publisher.Publish(models.EventBookingExpired, event); err != nil {
			logger.WithContext(ctx).Error("Failed to publish booking expired event",
				"error", err, "storage_key", booking.StorageKey, "event_type", models.EventBookingExpired)
		}
	}

	return nil
}

func bookingIDLabel(id *string, placeholder string) string {
	if id == nil || *id == "" {
		return placeholder
	}
	return *id
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", apperrors.ErrStorageUnavailable, op, err)
}

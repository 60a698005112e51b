package jobs

import (
	"context"
	"time"

	"athena/internal/logger"
	"athena/internal/service"
)

// BookingExpirationJob removes bookings whose validity window has elapsed.
// Requests already expire their own record lazily; this job catches the
// records nobody asked about again.
type BookingExpirationJob struct {
	bookings *service.BookingService
	interval time.Duration
	ticker   *time.Ticker
	done     chan bool
}

func NewBookingExpirationJob(bookings *service.BookingService, interval time.Duration) *BookingExpirationJob {
	return &BookingExpirationJob{
		bookings: bookings,
		interval: interval,
		done:     make(chan bool),
	}
}

// Start begins the periodic sweep. The first pass runs immediately.
func (j *BookingExpirationJob) Start(ctx context.Context) {
	logger.Get().Info("Starting booking expiration job", "sweep_interval", j.interval.String())

	j.ticker = time.NewTicker(j.interval)

	go j.sweep(ctx)

	go func() {
		for {
			select {
			case <-j.ticker.C:
				j.sweep(ctx)
			case <-j.done:
				logger.Get().Info("Booking expiration job stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the background job
func (j *BookingExpirationJob) Stop() {
	if j.ticker != nil {
		j.ticker.Stop()
	}
	close(j.done)
}

func (j *BookingExpirationJob) sweep(ctx context.Context) {
	start := time.Now()

	removed, err := j.bookings.Sweep(ctx)
	if err != nil {
		logger.Get().Error("Booking sweep failed", "error", err)
		return
	}

	if removed > 0 {
		logger.Get().Info("Booking sweep completed",
			"removed", removed,
			"elapsed", time.Since(start).String())
	} else {
		logger.Get().Debug("Booking sweep found nothing to remove")
	}
}

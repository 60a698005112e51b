package external

import (
	"fmt"
	"net/url"
	"time"
)

// PaymentConfig points at the payment front-end that completes pending
// bookings. The core never talks to it; it only hands out URLs.
type PaymentConfig struct {
	BaseURL string
	Timeout time.Duration
}

// PaymentURLBuilder produces the payment link embedded in create responses
// and confirmation emails. The URL carries no signature and no expiry; the
// validity window is enforced by the booking record alone.
type PaymentURLBuilder struct {
	baseURL string
}

func NewPaymentURLBuilder(cfg PaymentConfig) *PaymentURLBuilder {
	return &PaymentURLBuilder{baseURL: cfg.BaseURL}
}

func (pb *PaymentURLBuilder) URLFor(email string) string {
	return fmt.Sprintf("%s?email=%s", pb.baseURL, url.QueryEscape(email))
}

package external

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// NotificationClient calls the delivery service that renders and sends the
// confirmation email. Invoked once per fresh create, never retried; a failed
// send is reported to the caller as a flag and never undoes the booking.
type NotificationClient struct {
	baseURL    string
	httpClient *http.Client
}

type NotificationConfig struct {
	BaseURL string
	Timeout time.Duration
}

type notificationRequest struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Tickets int    `json:"tickets"`
}

func NewNotificationClient(cfg NotificationConfig) *NotificationClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &NotificationClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (nc *NotificationClient) Send(email, phone string, tickets int) error {
	body, err := json.Marshal(notificationRequest{
		Email:   email,
		Phone:   phone,
		Tickets: tickets,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	resp, err := nc.httpClient.Post(nc.baseURL+"/api/notifications/booking", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}

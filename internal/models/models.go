package models

// CreateBookingRequest is the payload for POST /api/bookings.
type CreateBookingRequest struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Tickets int    `json:"tickets"`
}

// CreateBookingResponse reports the outcome of a create call. Existing is
// true when the call hit a still-valid pending booking and nothing was
// written. NotificationSent reflects the collaborator outcome only; a failed
// send never fails the booking itself.
type CreateBookingResponse struct {
	Success          bool   `json:"success"`
	Existing         bool   `json:"existing,omitempty"`
	StorageKey       string `json:"storage_key"`
	BookingID        string `json:"booking_id"`
	Amount           int64  `json:"amount"`
	PaymentURL       string `json:"payment_url"`
	NotificationSent bool   `json:"notification_sent"`
}

// BookingInfoResponse is a booking plus the validity fields derived at read
// time.
type BookingInfoResponse struct {
	BookingID string `json:"booking_id"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Tickets   int    `json:"tickets"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	Validity  string `json:"validity"`
	IsValid   bool   `json:"is_valid"`
}

// QRPayloadResponse carries the text payload a QR encoder collaborator turns
// into an image.
type QRPayloadResponse struct {
	Payload string `json:"payload"`
}

// ErrorResponse is the uniform error body for the API.
type ErrorResponse struct {
	Error string `json:"error"`
}

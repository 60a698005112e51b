package external

import "fmt"

// QRPayload is the text convention for museum entry codes. Only completed,
// still-valid bookings with a non-empty security hash get one.
func QRPayload(bookingID, securityHash string) string {
	return fmt.Sprintf("ATHENA-MUSEUM-%s-%s", bookingID, securityHash)
}

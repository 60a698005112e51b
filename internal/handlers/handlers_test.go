package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"athena/internal/apperrors"
	"athena/internal/identifier"
	"athena/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBookingService lets each test shape the service responses directly.
type stubBookingService struct {
	createResp *models.CreateBookingResponse
	createErr  error
	infoResp   *models.BookingInfoResponse
	infoErr    error
	qrResp     *models.QRPayloadResponse
	qrErr      error

	lastKind  identifier.Kind
	lastValue string
}

func (s *stubBookingService) CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (*models.CreateBookingResponse, error) {
	return s.createResp, s.createErr
}

func (s *stubBookingService) GetBookingInfo(ctx context.Context, kind identifier.Kind, value string) (*models.BookingInfoResponse, error) {
	s.lastKind = kind
	s.lastValue = value
	return s.infoResp, s.infoErr
}

func (s *stubBookingService) QRPayload(ctx context.Context, kind identifier.Kind, value string) (*models.QRPayloadResponse, error) {
	s.lastKind = kind
	s.lastValue = value
	return s.qrResp, s.qrErr
}

func setupRouter(svc BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewHandlers(svc)
	api := r.Group("/api")
	{
		bookings := api.Group("/bookings")
		{
			bookings.POST("", h.CreateBooking)
			bookings.GET("/lookup", h.LookupBooking)
			bookings.GET("/:identifier/qr", h.BookingQR)
		}
	}

	return r
}

func TestCreateBookingHandler(t *testing.T) {
	svc := &stubBookingService{
		createResp: &models.CreateBookingResponse{
			Success:          true,
			StorageKey:       "a_at_b_com",
			BookingID:        "Pending",
			Amount:           1000,
			PaymentURL:       "http://pay.test?email=a%40b.com",
			NotificationSent: true,
		},
	}
	r := setupRouter(svc)

	reqBody := models.CreateBookingRequest{
		Email:   "a@b.com",
		Phone:   "+91 9876543210",
		Tickets: 2,
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/api/bookings", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response models.CreateBookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "a_at_b_com", response.StorageKey)
	assert.Equal(t, int64(1000), response.Amount)
}

func TestCreateBookingHandlerExistingReturns200(t *testing.T) {
	svc := &stubBookingService{
		createResp: &models.CreateBookingResponse{
			Success:    true,
			Existing:   true,
			StorageKey: "a_at_b_com",
			BookingID:  "Pending",
			Amount:     1000,
		},
	}
	r := setupRouter(svc)

	jsonBody, _ := json.Marshal(models.CreateBookingRequest{Email: "a@b.com", Phone: "9876543210", Tickets: 2})
	req, _ := http.NewRequest("POST", "/api/bookings", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateBookingHandlerMalformedBody(t *testing.T) {
	r := setupRouter(&stubBookingService{})

	req, _ := http.NewRequest("POST", "/api/bookings", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperrors.ErrValidation, http.StatusBadRequest},
		{"already confirmed", apperrors.ErrAlreadyConfirmed, http.StatusConflict},
		{"storage down", apperrors.ErrStorageUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(&stubBookingService{createErr: tt.err})

			jsonBody, _ := json.Marshal(models.CreateBookingRequest{Email: "a@b.com", Phone: "9876543210", Tickets: 1})
			req, _ := http.NewRequest("POST", "/api/bookings", bytes.NewBuffer(jsonBody))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestLookupBookingClassifiesIdentifier(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantKind  identifier.Kind
		wantValue string
	}{
		{"email", "my email is a@b.com", identifier.KindEmail, "a@b.com"},
		{"booking code", "code ath1023 please", identifier.KindBookingCode, "ATH1023"},
		{"phone", "+91 9876543210", identifier.KindPhone, "+91 9876543210"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubBookingService{
				infoResp: &models.BookingInfoResponse{Email: "a@b.com", IsValid: true},
			}
			r := setupRouter(svc)

			req, _ := http.NewRequest("GET", "/api/bookings/lookup?identifier="+url.QueryEscape(tt.query), nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantKind, svc.lastKind)
			assert.Equal(t, tt.wantValue, svc.lastValue)
		})
	}
}

func TestLookupBookingMissingIdentifier(t *testing.T) {
	r := setupRouter(&stubBookingService{})

	req, _ := http.NewRequest("GET", "/api/bookings/lookup", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLookupBookingErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"inconsistent index", apperrors.ErrDataInconsistency, http.StatusConflict},
		{"storage down", apperrors.ErrStorageUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(&stubBookingService{infoErr: tt.err})

			req, _ := http.NewRequest("GET", "/api/bookings/lookup?identifier=a@b.com", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)

			var response models.ErrorResponse
			err := json.Unmarshal(w.Body.Bytes(), &response)
			require.NoError(t, err)
			assert.NotEmpty(t, response.Error)
		})
	}
}

func TestBookingQRHandler(t *testing.T) {
	svc := &stubBookingService{
		qrResp: &models.QRPayloadResponse{Payload: "ATHENA-MUSEUM-ATH1023-8f4e2c"},
	}
	r := setupRouter(svc)

	req, _ := http.NewRequest("GET", "/api/bookings/a@b.com/qr", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, identifier.KindEmail, svc.lastKind)

	var response models.QRPayloadResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "ATHENA-MUSEUM-ATH1023-8f4e2c", response.Payload)
}

func TestBookingQRHandlerNotFound(t *testing.T) {
	r := setupRouter(&stubBookingService{qrErr: apperrors.ErrNotFound})

	req, _ := http.NewRequest("GET", "/api/bookings/ATH9999/qr", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}


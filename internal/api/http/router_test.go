package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	api "freight-booking-backend/internal/api/http"
	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/export"
	"freight-booking-backend/internal/finance"
	"freight-booking-backend/internal/security"
	"freight-booking-backend/internal/service"
	"freight-booking-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough-1234"

type testServer struct {
	handler  http.Handler
	bookings *MockBookingService
	payments *MockPaymentService
	ledger   *MockLedgerService
	parties  *MockPartyService
	vehicles *MockVehicleService
	store    *MockStorage
	token    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	tm := security.NewTokenManager(testSecret, time.Hour)
	token, err := tm.GenerateAccessToken(42, "clerk@example.com", nil)
	require.NoError(t, err)

	s := &testServer{
		bookings: new(MockBookingService),
		payments: new(MockPaymentService),
		ledger:   new(MockLedgerService),
		parties:  new(MockPartyService),
		vehicles: new(MockVehicleService),
		store:    new(MockStorage),
		token:    token,
	}
	s.handler = api.NewRouter(api.Services{
		Bookings: s.bookings,
		Payments: s.payments,
		Ledger:   s.ledger,
		Parties:  s.parties,
		Vehicles: s.vehicles,
		Storage:  s.store,
	}, tm, api.RouterConfig{UploadBaseURL: "/uploads", MaxUploadBytes: 1 << 20})
	return s
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	if req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealthIsPublic(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAuthentication(t *testing.T) {
	s := newTestServer(t)

	t.Run("Missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "unauthenticated", decodeError(t, rec).Code)
	})

	t.Run("Bad token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := s.do(req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	s.bookings.AssertNotCalled(t, "ListBookings", mock.Anything, mock.Anything)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/bookings", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCreateBooking_JSON(t *testing.T) {
	s := newTestServer(t)
	body := `{
		"bookingNo": "BK-1",
		"bookingDate": "2024-03-01",
		"party": "{\"name\":\"Acme Traders\"}",
		"vehicle": {"vehicleNo": "MH12AB1234"},
		"journey": "not json",
		"charges": {"dealAmount": "10000", "advancePaid": 2000}
	}`
	s.bookings.On("CreateBooking", mock.Anything, mock.MatchedBy(func(in service.BookingInput) bool {
		return *in.BookingNo == "BK-1" &&
			in.BookingDate.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			in.Party.Name == "Acme Traders" &&
			in.Vehicle.VehicleNo == "MH12AB1234" &&
			*in.Journey == domain.Journey{} &&
			in.Charges.DealAmount.String() == "10000" &&
			in.Delivery == nil
	}), (*storage.Upload)(nil)).Return(&domain.Booking{ID: 1, BookingNo: "BK-1"}, nil)

	rec := s.do(jsonRequest(http.MethodPost, "/api/v1/bookings", body))
	assert.Equal(t, http.StatusCreated, rec.Code)
	s.bookings.AssertExpectations(t)
}

func TestCreateBooking_Multipart(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("bookingNo", "BK-2")
	mw.WriteField("party", `{"name":"Acme Traders"}`)
	mw.WriteField("charges", `{"dealAmount":"5000"}`)
	part, err := mw.CreateFormFile("proofImage", "pod.jpg")
	require.NoError(t, err)
	part.Write([]byte("jpeg bytes"))
	require.NoError(t, mw.Close())

	s.bookings.On("CreateBooking", mock.Anything, mock.MatchedBy(func(in service.BookingInput) bool {
		return *in.BookingNo == "BK-2" && in.Party.Name == "Acme Traders" && in.Charges.DealAmount.String() == "5000"
	}), mock.MatchedBy(func(u *storage.Upload) bool {
		return u != nil && u.Filename == "pod.jpg" && u.Size == int64(len("jpeg bytes"))
	})).Return(&domain.Booking{ID: 2}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := s.do(req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateBooking_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		code     string
		contains string
	}{
		{"Validation", domain.ValidationError{Msg: "booking is invalid", Problems: []string{"bookingNo is required", "journey.toLocation is required"}}, http.StatusBadRequest, "validation_error", "bookingNo is required"},
		{"Conflict", domain.ConflictError{Resource: "booking", Msg: "booking number BK-1 already exists"}, http.StatusConflict, "conflict", "BK-1"},
		{"Computation", domain.ComputationError{Msg: "cannot compute totals", Err: errors.New("boom")}, http.StatusInternalServerError, "computation_error", "cannot compute totals"},
		{"Generic", errors.New("connection reset by peer"), http.StatusInternalServerError, "internal_error", "connection reset by peer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.bookings.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := s.do(jsonRequest(http.MethodPost, "/api/v1/bookings", `{"bookingNo":"BK-1"}`))
			assert.Equal(t, tt.status, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tt.code, resp.Code)
			assert.Contains(t, resp.Error, tt.contains)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestCreateBooking_NotAnObject(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(jsonRequest(http.MethodPost, "/api/v1/bookings", `[1,2]`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	s.bookings.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetBooking_NotFound(t *testing.T) {
	s := newTestServer(t)
	s.bookings.On("GetBooking", mock.Anything, int64(9)).Return(nil, domain.NotFoundError{Resource: "booking", ID: int64(9)})

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/bookings/9", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "booking 9 not found", decodeError(t, rec).Error)
}

func TestListBookings(t *testing.T) {
	s := newTestServer(t)

	t.Run("Filters", func(t *testing.T) {
		expected := domain.BookingFilter{
			PartyName:          "Acme",
			PartyPaymentStatus: domain.PaymentStatePending,
			SortBy:             "bookingNo",
			Order:              "asc",
			Page:               2,
			PageSize:           10,
		}
		s.bookings.On("ListBookings", mock.Anything, expected).Return([]domain.Booking{{ID: 1}}, int64(11), nil)

		rec := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/bookings?party=Acme&partyPaymentStatus=pending&sort=bookingNo&order=asc&page=2&pageSize=10", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Items []domain.Booking `json:"items"`
			Total int64            `json:"total"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(11), resp.Total)
		assert.Len(t, resp.Items, 1)
	})

	t.Run("Bad status", func(t *testing.T) {
		rec := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/bookings?deliveryStatus=lost", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRecordPartyPayment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s := newTestServer(t)
		s.payments.On("RecordPartyPayment", mock.Anything, int64(5), mock.MatchedBy(func(in finance.PaymentInput) bool {
			return domain.ParseAmount(in.Amount).String() == "8000.5" && in.Mode == "UPI" &&
				in.PaymentDate.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
		})).Return(&domain.Booking{ID: 5}, nil)

		rec := s.do(jsonRequest(http.MethodPost, "/api/v1/bookings/5/payments/party",
			`{"amount": 8000.50, "paymentMode": "UPI", "paymentDate": "2024-03-05"}`))
		assert.Equal(t, http.StatusOK, rec.Code)
		s.payments.AssertExpectations(t)
	})

	t.Run("Invalid amount", func(t *testing.T) {
		s := newTestServer(t)
		s.payments.On("RecordPartyPayment", mock.Anything, int64(5), mock.Anything).Return(nil, domain.InvalidAmountError{Value: "-1"})

		rec := s.do(jsonRequest(http.MethodPost, "/api/v1/bookings/5/payments/party", `{"amount": -1}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_amount", decodeError(t, rec).Code)
	})

	t.Run("Unknown payment mode", func(t *testing.T) {
		s := newTestServer(t)
		s.payments.On("RecordPartyPayment", mock.Anything, int64(5), mock.MatchedBy(func(in finance.PaymentInput) bool {
			return in.Mode == "Barter"
		})).Return(nil, domain.ValidationError{Field: "paymentMode", Msg: "must be one of Cash, Cheque, Bank Transfer, UPI"})

		rec := s.do(jsonRequest(http.MethodPost, "/api/v1/bookings/5/payments/party", `{"amount": 500, "paymentMode": "Barter"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, "validation_error", resp.Code)
		assert.Contains(t, resp.Error, "paymentMode")
	})
}

func TestRecordVehiclePayment(t *testing.T) {
	s := newTestServer(t)
	s.payments.On("RecordVehiclePayment", mock.Anything, int64(3), mock.MatchedBy(func(in finance.PaymentInput) bool {
		return domain.ParseAmount(in.Amount).String() == "2000" && in.BankName == "SBI"
	})).Return(&domain.Booking{ID: 3}, nil)

	rec := s.do(jsonRequest(http.MethodPost, "/api/v1/bookings/3/payments/vehicle",
		`{"amount": "2000", "paymentMode": "Bank Transfer", "bankName": "SBI"}`))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateDelivery(t *testing.T) {
	s := newTestServer(t)
	delivered := domain.DeliveryStatusDelivered
	s.bookings.On("UpdateDelivery", mock.Anything, int64(4), mock.MatchedBy(func(in service.DeliveryInput) bool {
		return in.Status != nil && *in.Status == delivered && in.Remarks == nil && in.Proof == nil
	})).Return(&domain.Booking{ID: 4}, nil)

	rec := s.do(jsonRequest(http.MethodPut, "/api/v1/bookings/4/delivery", `{"status":"delivered"}`))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLedgerReport(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		s := newTestServer(t)
		s.ledger.On("GetLedgerReport", mock.Anything, domain.BookingFilter{PartyName: "Acme", Page: 1}).
			Return(&domain.LedgerReport{Summary: domain.LedgerSummary{Bookings: 2}}, nil)

		rec := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/ledger?party=Acme", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"bookings":2`)
	})

	t.Run("Export", func(t *testing.T) {
		s := newTestServer(t)
		s.ledger.On("ExportLedgerReport", mock.Anything, mock.Anything, export.FormatXLSX).
			Return(&export.File{Name: "ledger.xlsx", ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Data: []byte("PK")}, nil)

		rec := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/ledger?format=xlsx", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `attachment; filename="ledger.xlsx"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "PK", rec.Body.String())
	})

	t.Run("Unknown format", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/ledger?format=csv", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBookingLedger(t *testing.T) {
	s := newTestServer(t)
	s.ledger.On("GetBookingLedger", mock.Anything, int64(1)).Return([]domain.LedgerEntry(nil), nil)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/bookings/1/ledger", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestMigrateStructure(t *testing.T) {
	s := newTestServer(t)
	s.bookings.On("MigrateBookingStructures", mock.Anything).Return(&finance.MigrationReport{
		Total: 2, Migrated: 1, Failed: 1,
		Errors: []finance.MigrationError{{BookingID: 3, BookingNo: "OLD-3", Error: "write failed"}},
	}, nil)

	rec := s.do(httptest.NewRequest(http.MethodPost, "/api/v1/bookings/migrate-structure", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bookingNo":"OLD-3"`)
}

func TestPartyRoutes(t *testing.T) {
	s := newTestServer(t)

	t.Run("Validation", func(t *testing.T) {
		rec := s.do(jsonRequest(http.MethodPost, "/api/v1/parties", `{"gstNumber":"short"}`))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeError(t, rec)
		assert.Contains(t, resp.Details, "name is required")
		assert.Contains(t, resp.Details, "gstNumber must be exactly 15 characters")
	})

	t.Run("Create", func(t *testing.T) {
		s.parties.On("CreateParty", mock.Anything, mock.MatchedBy(func(p *domain.Party) bool {
			return p.Name == "Acme Traders"
		})).Return(nil)

		rec := s.do(jsonRequest(http.MethodPost, "/api/v1/parties", `{"name":"Acme Traders"}`))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("List defaults", func(t *testing.T) {
		s.parties.On("ListParties", mock.Anything, "", int32(1), int32(20)).Return([]domain.Party{}, int64(0), nil)

		rec := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/parties", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"items":[]`)
	})
}

func TestVehicleDelete(t *testing.T) {
	s := newTestServer(t)
	s.vehicles.On("DeleteVehicle", mock.Anything, int64(8)).Return(nil)

	rec := s.do(httptest.NewRequest(http.MethodDelete, "/api/v1/vehicles/8", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUploadsServed(t *testing.T) {
	s := newTestServer(t)
	s.store.On("ReadFile", mock.Anything, "proofs/a.png").Return(io.NopCloser(strings.NewReader("png")), nil)

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/proofs/a.png", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "png", rec.Body.String())
}

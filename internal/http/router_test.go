package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/godfreydekew/car-parking-crm/internal/config"
	"github.com/godfreydekew/car-parking-crm/internal/domain/models"
	"github.com/godfreydekew/car-parking-crm/internal/gateway"
	"github.com/godfreydekew/car-parking-crm/internal/http/handlers"
	"github.com/godfreydekew/car-parking-crm/internal/store"
)

type fakeGateway struct {
	bookings     []models.Booking
	checkInCalls int
	collectCalls int
}

func (f *fakeGateway) List(ctx context.Context, _ models.BookingFilters) ([]models.Booking, error) {
	out := make([]models.Booking, len(f.bookings))
	copy(out, f.bookings)
	return out, nil
}

func (f *fakeGateway) find(id string) models.Booking {
	for _, b := range f.bookings {
		if b.ID == id {
			return b
		}
	}
	return models.Booking{}
}

func (f *fakeGateway) CheckIn(ctx context.Context, id string) (models.Booking, error) {
	f.checkInCalls++
	b := f.find(id)
	b.Status = models.StatusOnSite
	now := time.Now().UTC()
	b.CheckInTime = &now
	return b, nil
}

func (f *fakeGateway) Collect(ctx context.Context, id string) (models.Booking, error) {
	f.collectCalls++
	b := f.find(id)
	b.Status = models.StatusCollected
	now := time.Now().UTC()
	b.CollectedTime = &now
	return b, nil
}

func (f *fakeGateway) SetStatus(ctx context.Context, id string, status models.Status) (models.Booking, error) {
	b := f.find(id)
	b.Status = status
	return b, nil
}

func (f *fakeGateway) Update(ctx context.Context, id string, u models.BookingUpdate) (models.Booking, error) {
	return f.find(id), nil
}

func (f *fakeGateway) AddNote(ctx context.Context, id, note string) (models.Booking, error) {
	b := f.find(id)
	b.Notes = append(b.Notes, note)
	return b, nil
}

func testBooking(id, name, status string) models.Booking {
	return models.Booking{
		ID:            id,
		CustomerID:    "27735440000|" + name,
		CreatedAt:     time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
		FullName:      name,
		Email:         strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Whatsapp:      "+27 73 544 0000",
		FlightType:    models.FlightDomestic,
		DropoffAt:     time.Date(2025, 5, 10, 6, 0, 0, 0, time.UTC),
		PickupAt:      time.Date(2025, 5, 14, 18, 0, 0, 0, time.UTC),
		VehicleMake:   "Toyota",
		VehicleModel:  "Corolla",
		Registration:  "CA 123-456",
		PaymentMethod: models.PaymentCard,
		Cost:          decimal.NewFromInt(450),
		Status:        models.Status(status),
	}
}

func newTestServer(t *testing.T, fake *fakeGateway) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := store.New(fake)
	h := handlers.New(st, gateway.NewClient("http://gateway.invalid", time.Second))
	return NewRouter(config.Env{}, h)
}

func doRequest(r http.Handler, method, path string, body []byte, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer staff-token")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthIsPublic(t *testing.T) {
	r := newTestServer(t, &fakeGateway{})
	w := doRequest(r, http.MethodGet, "/api/health", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestBookingsRequireAuth(t *testing.T) {
	r := newTestServer(t, &fakeGateway{})
	w := doRequest(r, http.MethodGet, "/api/bookings", nil, false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestListBookingsPaginates(t *testing.T) {
	fake := &fakeGateway{}
	for i := 0; i < 25; i++ {
		fake.bookings = append(fake.bookings, testBooking(fmt.Sprintf("b%02d", i), "Guest", "BOOKED"))
	}
	r := newTestServer(t, fake)

	w := doRequest(r, http.MethodGet, "/api/bookings?page=2", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Bookings   []models.Booking `json:"bookings"`
		Pagination struct {
			Page     int `json:"page"`
			PageSize int `json:"pageSize"`
			Total    int `json:"total"`
		} `json:"pagination"`
		Pages int `json:"pages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Bookings) != 5 {
		t.Fatalf("expected 5 bookings on page 2, got %d", len(resp.Bookings))
	}
	if resp.Pagination.Total != 25 || resp.Pages != 2 {
		t.Fatalf("unexpected pagination: total=%d pages=%d", resp.Pagination.Total, resp.Pages)
	}
}

func TestListBookingsRejectsUnknownStatus(t *testing.T) {
	r := newTestServer(t, &fakeGateway{})
	w := doRequest(r, http.MethodGet, "/api/bookings?status=PARKED", nil, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, "BOOKED") {
		t.Fatalf("error should list valid statuses, got %s", body)
	}
}

func TestRevenueReportCapsSeriesLength(t *testing.T) {
	r := newTestServer(t, &fakeGateway{})
	w := doRequest(r, http.MethodGet, "/api/reports/revenue?days=100000000", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Daily []json.RawMessage `json:"daily"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Daily) != 365 {
		t.Fatalf("daily series length = %d, want capped at 365", len(resp.Daily))
	}
}

func TestCheckInHappyPath(t *testing.T) {
	fake := &fakeGateway{bookings: []models.Booking{testBooking("b1", "Thandi Nkosi", "BOOKED")}}
	r := newTestServer(t, fake)

	w := doRequest(r, http.MethodPatch, "/api/bookings/b1/check-in", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var b models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	if b.Status != models.StatusOnSite {
		t.Fatalf("expected ON_SITE after check-in, got %s", b.Status)
	}
	if fake.checkInCalls != 1 {
		t.Fatalf("expected one gateway check-in call, got %d", fake.checkInCalls)
	}
}

func TestCollectFromBookedIsConflict(t *testing.T) {
	fake := &fakeGateway{bookings: []models.Booking{testBooking("b1", "Thandi Nkosi", "BOOKED")}}
	r := newTestServer(t, fake)

	w := doRequest(r, http.MethodPatch, "/api/bookings/b1/collect", nil, true)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for collect before check-in, got %d", w.Code)
	}
	if fake.collectCalls != 0 {
		t.Fatalf("gateway should not be called on a rejected transition, got %d calls", fake.collectCalls)
	}
}

func TestGetBookingNotFound(t *testing.T) {
	r := newTestServer(t, &fakeGateway{})
	w := doRequest(r, http.MethodGet, "/api/bookings/missing", nil, true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestSearchByRegistration(t *testing.T) {
	fake := &fakeGateway{bookings: []models.Booking{testBooking("b1", "Thandi Nkosi", "ON_SITE")}}
	r := newTestServer(t, fake)

	w := doRequest(r, http.MethodGet, "/api/search?registration=ca123-456", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var b models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	if b.ID != "b1" {
		t.Fatalf("expected booking b1, got %s", b.ID)
	}
}

func TestConfirmationPDF(t *testing.T) {
	fake := &fakeGateway{bookings: []models.Booking{testBooking("b1", "Thandi Nkosi", "BOOKED")}}
	r := newTestServer(t, fake)

	w := doRequest(r, http.MethodGet, "/api/bookings/b1/confirmation.pdf", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %s", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("response does not look like a PDF")
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "OR_Tambo_Confirmation_CA123-456.pdf") {
		t.Fatalf("unexpected content disposition: %s", cd)
	}
}

func TestLoginForwardsToGateway(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/api/auth/login" {
			http.NotFound(w, req)
			return
		}
		if err := req.ParseForm(); err != nil || req.PostFormValue("username") != "desk" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok123","token_type":"bearer"}`))
	}))
	defer upstream.Close()

	gin.SetMode(gin.TestMode)
	st := store.New(&fakeGateway{})
	h := handlers.New(st, gateway.NewClient(upstream.URL, time.Second))
	r := NewRouter(config.Env{}, h)

	body := []byte(`{"username":"desk","password":"secret"}`)
	w := doRequest(r, http.MethodPost, "/api/auth/login", body, false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp gateway.LoginResult
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.AccessToken != "tok123" {
		t.Fatalf("unexpected token: %s", resp.AccessToken)
	}
}

package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/godfreydekew/car-parking-crm/internal/domain"
	"github.com/godfreydekew/car-parking-crm/internal/domain/models"
)

// fakeGateway delegates to injected func hooks, counting calls.
type fakeGateway struct {
	listFn      func(f models.BookingFilters) ([]models.Booking, error)
	checkInFn   func(id string) (models.Booking, error)
	collectFn   func(id string) (models.Booking, error)
	setStatusFn func(id string, status models.Status) (models.Booking, error)
	updateFn    func(id string, u models.BookingUpdate) (models.Booking, error)
	addNoteFn   func(id, note string) (models.Booking, error)

	collectCalls int
}

func (g *fakeGateway) List(_ context.Context, f models.BookingFilters) ([]models.Booking, error) {
	return g.listFn(f)
}

func (g *fakeGateway) CheckIn(_ context.Context, id string) (models.Booking, error) {
	return g.checkInFn(id)
}

func (g *fakeGateway) Collect(_ context.Context, id string) (models.Booking, error) {
	g.collectCalls++
	return g.collectFn(id)
}

func (g *fakeGateway) SetStatus(_ context.Context, id string, status models.Status) (models.Booking, error) {
	return g.setStatusFn(id, status)
}

func (g *fakeGateway) Update(_ context.Context, id string, u models.BookingUpdate) (models.Booking, error) {
	return g.updateFn(id, u)
}

func (g *fakeGateway) AddNote(_ context.Context, id, note string) (models.Booking, error) {
	return g.addNoteFn(id, note)
}

func amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func booking(id, customerID string, status models.Status, cost string, createdAt time.Time) models.Booking {
	c, _ := decimal.NewFromString(cost)
	return models.Booking{
		ID:         id,
		CustomerID: customerID,
		Status:     status,
		Cost:       c,
		CreatedAt:  createdAt,
		FullName:   "Customer " + customerID,
	}
}

func TestLoadProjectsCustomers(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	gw := &fakeGateway{
		listFn: func(models.BookingFilters) ([]models.Booking, error) {
			return []models.Booking{
				booking("3", "A", models.StatusCollected, "200", base.Add(48*time.Hour)),
				booking("2", "A", models.StatusCancelled, "50", base.Add(24*time.Hour)),
				booking("1", "A", models.StatusBooked, "100", base),
			}, nil
		},
	}
	s := New(gw)
	if err := s.Load(context.Background(), models.BookingFilters{}); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	customers := s.Customers()
	if len(customers) != 1 {
		t.Fatalf("customer count = %d", len(customers))
	}
	c := customers[0]
	if !c.TotalSpend.Equal(amount(t, "300")) {
		t.Fatalf("totalSpend = %s, want 300", c.TotalSpend)
	}
	if c.BookingCount != 3 {
		t.Fatalf("bookingCount = %d, want 3", c.BookingCount)
	}
	if !c.IsRepeat {
		t.Fatalf("isRepeat = false, want true")
	}
	if c.LastVisit == nil || !c.LastVisit.Equal(base.Add(48*time.Hour)) {
		t.Fatalf("lastVisit = %v", c.LastVisit)
	}
	if !c.CreatedAt.Equal(base) {
		t.Fatalf("createdAt = %v, want %v", c.CreatedAt, base)
	}
}

func TestLoadEmptyResultIsNotAnError(t *testing.T) {
	gw := &fakeGateway{
		listFn: func(models.BookingFilters) ([]models.Booking, error) { return nil, nil },
	}
	s := New(gw)
	if err := s.Load(context.Background(), models.BookingFilters{}); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(s.Bookings()) != 0 || len(s.Customers()) != 0 {
		t.Fatalf("expected empty cache")
	}
}

func TestLoadFailurePreservesLastKnownGood(t *testing.T) {
	now := time.Now().UTC()
	fail := false
	gw := &fakeGateway{
		listFn: func(models.BookingFilters) ([]models.Booking, error) {
			if fail {
				return nil, domain.GatewayError{StatusCode: 502}
			}
			return []models.Booking{booking("1", "A", models.StatusBooked, "100", now)}, nil
		},
	}
	s := New(gw)
	if err := s.Load(context.Background(), models.BookingFilters{}); err != nil {
		t.Fatalf("first Load error: %v", err)
	}

	fail = true
	err := s.Load(context.Background(), models.BookingFilters{})
	if !domain.IsGateway(err) {
		t.Fatalf("expected gateway error, got %v", err)
	}
	if len(s.Bookings()) != 1 {
		t.Fatalf("cache cleared on failed reload")
	}
}

func TestCheckInReplacesCacheEntry(t *testing.T) {
	now := time.Now().UTC()
	booked := booking("1", "A", models.StatusBooked, "100", now)
	gw := &fakeGateway{
		listFn: func(models.BookingFilters) ([]models.Booking, error) {
			return []models.Booking{booked}, nil
		},
		checkInFn: func(id string) (models.Booking, error) {
			b := booked
			b.Status = models.StatusOnSite
			checkIn := now.Add(time.Minute)
			b.CheckInTime = &checkIn
			b.Activity = []models.ActivityEvent{{ID: "a1", Type: models.ActivityCheckIn, Timestamp: checkIn}}
			return b, nil
		},
	}
	s := New(gw)
	if err := s.Load(context.Background(), models.BookingFilters{}); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	updated, err := s.CheckIn(context.Background(), "1")
	if err != nil {
		t.Fatalf("CheckIn error: %v", err)
	}
	if updated.Status != models.StatusOnSite || updated.CheckInTime == nil {
		t.Fatalf("updated = %+v", updated)
	}

	cached, _ := s.Booking("1")
	if cached.Status != models.StatusOnSite {
		t.Fatalf("cache not replaced: %s", cached.Status)
	}
	if len(cached.Activity) != 1 {
		t.Fatalf("cache kept stale activity: %d entries", len(cached.Activity))
	}
}

func TestCollectFailureLeavesCacheUntouched(t *testing.T) {
	now := time.Now().UTC()
	gw := &fakeGateway{
		listFn: func(models.BookingFilters) ([]models.Booking, error) {
			return []models.Booking{booking("1", "A", models.StatusOnSite, "100", now)}, nil
		},
		collectFn: func(id string) (models.Booking, error) {
			return models.Booking{}, domain.GatewayError{StatusCode: 500, Msg: "boom"}
		},
	}
	s := New(gw)
	if err := s.Load(context.Background(), models.BookingFilters{}); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	_, err := s.Collect(context.Background(), "1")
	if !domain.IsGateway(err) {
		t.Fatalf("expected gateway error, got %v", err)
	}
	cached, _ := s.Booking("1")
	if cached.Status != models.StatusOnSite {
		t.Fatalf("status silently advanced to %s", cached.Status)
	}
}

func TestDoubleCollectFailsWithoutSecondRoundTrip(t *testing.T) {
	now := time.Now().UTC()
	onSite := booking("1", "A", models.StatusOnSite, "100", now)
	gw := &fakeGateway{
		listFn: func(models.BookingFilters) ([]models.Booking, error) {
			return []models.Booking{onSite}, nil
		},
		collectFn: func(id string) (models.Booking, error) {
			b := onSite
			b.Status = models.StatusCollected
			collected := now.Add(time.Minute)
			b.CollectedTime = &collected
			return b, nil
		},
	}
	s := New(gw)
	if err := s.Load(context.Background(), models.BookingFilters{}); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if _, err := s.Collect(context.Background(), "1"); err != nil {
		t.Fatalf("first collect error: %v", err)
	}
	_, err := s.Collect(context.Background(), "1")
	if !domain.IsInvalidTransition(err) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if gw.collectCalls != 1 {
		t.Fatalf("gateway called %d times, want 1", gw.collectCalls)
	}
}

func TestUpdateValidatesBeforeNetworkCall(t *testing.T) {
	now := time.Now().UTC()
	gw := &fakeGateway{
		listFn: func(models.BookingFilters) ([]models.Booking, error) {
			return []models.Booking{booking("1", "A", models.StatusBooked, "100", now)}, nil
		},
		updateFn: func(id string, u models.BookingUpdate) (models.Booking, error) {
			t.Fatalf("gateway must not be called for invalid input")
			return models.Booking{}, nil
		},
	}
	s := New(gw)
	if err := s.Load(context.Background(), models.BookingFilters{}); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	negative := amount(t, "-5")
	_, err := s.Update(context.Background(), "1", models.BookingUpdate{Cost: &negative})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	bad := models.PaymentMethod("crypto")
	_, err = s.Update(context.Background(), "1", models.BookingUpdate{PaymentMethod: &bad})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddNoteRejectsBlankNote(t *testing.T) {
	s := New(&fakeGateway{})
	_, err := s.AddNote(context.Background(), "1", "   ")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetStatusRejectsDirectOverride(t *testing.T) {
	now := time.Now().UTC()
	gw := &fakeGateway{
		listFn: func(models.BookingFilters) ([]models.Booking, error) {
			return []models.Booking{booking("1", "A", models.StatusBooked, "100", now)}, nil
		},
		setStatusFn: func(id string, status models.Status) (models.Booking, error) {
			b := booking("1", "A", status, "100", now)
			return b, nil
		},
	}
	s := New(gw)
	if err := s.Load(context.Background(), models.BookingFilters{}); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if _, err := s.SetStatus(context.Background(), "1", models.StatusOnSite); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for direct ON_SITE, got %v", err)
	}

	updated, err := s.SetStatus(context.Background(), "1", models.StatusCancelled)
	if err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if updated.Status != models.StatusCancelled {
		t.Fatalf("status = %s", updated.Status)
	}
}

func TestMutationOnUnknownIDFails(t *testing.T) {
	gw := &fakeGateway{
		listFn: func(models.BookingFilters) ([]models.Booking, error) { return nil, nil },
	}
	s := New(gw)
	if err := s.Load(context.Background(), models.BookingFilters{}); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if _, err := s.CheckIn(context.Background(), "missing"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

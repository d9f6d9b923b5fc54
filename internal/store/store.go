// Package store holds the single in-memory source of truth for the currently
// loaded booking set and the customer roster derived from it. Durable state
// lives in the remote gateway; the cache here is replaced, never merged by
// field, with whatever the gateway returns.
package store

import (
	"context"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/godfreydekew/car-parking-crm/internal/domain"
	"github.com/godfreydekew/car-parking-crm/internal/domain/models"
	"github.com/godfreydekew/car-parking-crm/internal/utils"
)

// Gateway is the slice of the booking backend the store depends on. Every
// mutating call returns the full authoritative post-mutation record.
type Gateway interface {
	List(ctx context.Context, f models.BookingFilters) ([]models.Booking, error)
	CheckIn(ctx context.Context, id string) (models.Booking, error)
	Collect(ctx context.Context, id string) (models.Booking, error)
	SetStatus(ctx context.Context, id string, status models.Status) (models.Booking, error)
	Update(ctx context.Context, id string, u models.BookingUpdate) (models.Booking, error)
	AddNote(ctx context.Context, id, note string) (models.Booking, error)
}

type Store struct {
	gw Gateway

	mu        sync.RWMutex
	bookings  []models.Booking
	customers []models.Customer
	loaded    bool
}

func New(gw Gateway) *Store {
	return &Store{gw: gw}
}

// Load fetches the booking list, replaces the cache entirely and recomputes
// the customer roster. An empty result is valid (no bookings, no customers).
// On fetch failure the previous cache is left untouched so the console keeps
// showing last-known-good data instead of flashing empty on a transient error.
func (s *Store) Load(ctx context.Context, f models.BookingFilters) error {
	bookings, err := s.gw.List(ctx, f)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = bookings
	s.customers = projectCustomers(bookings)
	s.loaded = true
	return nil
}

// EnsureLoaded loads the full booking set once; subsequent calls are no-ops
// until Load is called again explicitly.
func (s *Store) EnsureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Load(ctx, models.BookingFilters{})
}

// Bookings returns a copy of the cached booking list in gateway order.
func (s *Store) Bookings() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

// Customers returns the roster derived at last load, in order of first
// appearance in the booking list.
func (s *Store) Customers() []models.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

func (s *Store) Booking(id string) (models.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return models.Booking{}, false
}

func (s *Store) Customer(id string) (models.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.ID == id {
			return c, true
		}
	}
	return models.Customer{}, false
}

func (s *Store) BookingsByCustomer(customerID string) []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Filter(s.bookings, func(b models.Booking, _ int) bool {
		return b.CustomerID == customerID
	})
}

// CheckIn records vehicle drop-off (BOOKED -> ON_SITE).
func (s *Store) CheckIn(ctx context.Context, id string) (models.Booking, error) {
	if err := s.precheck(id, domain.ActionCheckIn); err != nil {
		return models.Booking{}, err
	}
	updated, err := s.gw.CheckIn(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	s.replace(updated)
	return updated, nil
}

// Collect records vehicle pick-up (ON_SITE/OVERSTAY -> COLLECTED).
func (s *Store) Collect(ctx context.Context, id string) (models.Booking, error) {
	if err := s.precheck(id, domain.ActionCollect); err != nil {
		return models.Booking{}, err
	}
	updated, err := s.gw.Collect(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	s.replace(updated)
	return updated, nil
}

// SetStatus applies a cancel or no-show. Other target statuses are the result
// of dedicated operations and are rejected before any network call.
func (s *Store) SetStatus(ctx context.Context, id string, target models.Status) (models.Booking, error) {
	action, err := domain.ActionForStatus(target)
	if err != nil {
		return models.Booking{}, err
	}
	if err := s.precheck(id, action); err != nil {
		return models.Booking{}, err
	}
	updated, err := s.gw.SetStatus(ctx, id, target)
	if err != nil {
		return models.Booking{}, err
	}
	s.replace(updated)
	return updated, nil
}

// Update revises the editable fields (cost, payment method, instructions,
// pick-up slot). This is the one edit path outside the status transitions.
func (s *Store) Update(ctx context.Context, id string, u models.BookingUpdate) (models.Booking, error) {
	if _, ok := s.Booking(id); !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if u.Cost != nil && u.Cost.IsNegative() {
		return models.Booking{}, domain.ValidationError{Field: "cost", Msg: "must not be negative"}
	}
	if u.PaymentMethod != nil && !u.PaymentMethod.Valid() {
		return models.Booking{}, domain.ValidationError{Field: "payment_method", Msg: "unknown payment method"}
	}
	updated, err := s.gw.Update(ctx, id, u)
	if err != nil {
		return models.Booking{}, err
	}
	s.replace(updated)
	return updated, nil
}

// AddNote appends a free-text note via the gateway.
func (s *Store) AddNote(ctx context.Context, id, note string) (models.Booking, error) {
	if strings.TrimSpace(note) == "" {
		return models.Booking{}, domain.ValidationError{Field: "note", Msg: "must not be empty"}
	}
	if _, ok := s.Booking(id); !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	updated, err := s.gw.AddNote(ctx, id, note)
	if err != nil {
		return models.Booking{}, err
	}
	s.replace(updated)
	return updated, nil
}

// precheck runs the transition validator against the cached record so
// obviously invalid actions fail synchronously, without a round-trip. The
// gateway stays authoritative and re-validates on its side.
func (s *Store) precheck(id string, action domain.Action) error {
	b, ok := s.Booking(id)
	if !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	_, err := domain.ApplyTransition(b, action, utils.NowUTC())
	return err
}

// replace swaps the single matching cache entry for the authoritative record
// the gateway returned. Linear scan is fine at this scale. Two mutations
// racing on the same id are not coordinated: the last response to land wins.
func (s *Store) replace(updated models.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == updated.ID {
			s.bookings[i] = updated
			return
		}
	}
}

// Package views holds pure, synchronous projections over the store's current
// cache: search, filtering, pagination and the report aggregations. Nothing
// here mutates state or performs I/O.
package views

import (
	"strings"

	"github.com/samber/lo"

	"github.com/godfreydekew/car-parking-crm/internal/domain/models"
	"github.com/godfreydekew/car-parking-crm/internal/utils"
)

// DefaultPageSize is the fixed page size the console lists bookings with.
const DefaultPageSize = 20

// Query filters conjunctively: every set field must match, plus the search
// predicate.
type Query struct {
	Status        models.Status
	PaymentMethod models.PaymentMethod
	FlightType    models.FlightType
	Search        string
}

// MatchesSearch is a case-insensitive substring match across full name,
// registration, WhatsApp number and email. Registration additionally matches
// compacted to letters and digits, so "ca123456" finds "CA 123-456".
// WhatsApp numbers match by exact substring, no normalization.
func MatchesSearch(b models.Booking, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	lower := strings.ToLower(query)

	if strings.Contains(strings.ToLower(b.FullName), lower) {
		return true
	}
	if strings.Contains(strings.ToLower(b.Registration), lower) {
		return true
	}
	if compact := utils.CompactPlate(query); compact != "" && strings.Contains(utils.CompactPlate(b.Registration), compact) {
		return true
	}
	if strings.Contains(b.Whatsapp, query) {
		return true
	}
	return strings.Contains(strings.ToLower(b.Email), lower)
}

// Filter applies the query over the list, preserving input order.
func Filter(bookings []models.Booking, q Query) []models.Booking {
	return lo.Filter(bookings, func(b models.Booking, _ int) bool {
		if q.Status != "" && b.Status != q.Status {
			return false
		}
		if q.PaymentMethod != "" && b.PaymentMethod != q.PaymentMethod {
			return false
		}
		if q.FlightType != "" && b.FlightType != q.FlightType {
			return false
		}
		return MatchesSearch(b, q.Search)
	})
}

// Page slices a deterministic 1-based page out of the filtered order. Pages
// past the end are empty, never an error.
func Page(bookings []models.Booking, page, size int) []models.Booking {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(bookings) {
		return []models.Booking{}
	}
	end := start + size
	if end > len(bookings) {
		end = len(bookings)
	}
	return bookings[start:end]
}

// PageCount returns the number of pages the list splits into.
func PageCount(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total == 0 {
		return 0
	}
	return (total + size - 1) / size
}

// FindByRegistration locates a booking by exact plate match, whitespace
// insensitive, for the check-in desk's scan/plate-entry flow.
func FindByRegistration(bookings []models.Booking, registration string) (models.Booking, bool) {
	want := utils.NormalizeRegistration(registration)
	if want == "" {
		return models.Booking{}, false
	}
	return lo.Find(bookings, func(b models.Booking) bool {
		return utils.NormalizeRegistration(b.Registration) == want
	})
}

// OnSite filters to vehicles physically on the premises (ON_SITE, OVERSTAY).
func OnSite(bookings []models.Booking) []models.Booking {
	return lo.Filter(bookings, func(b models.Booking, _ int) bool {
		return b.Status.OnPremises()
	})
}

// Overstays filters to bookings the backend has flagged as OVERSTAY. There is
// no detection here: this layer only reads the status once set.
func Overstays(bookings []models.Booking) []models.Booking {
	return lo.Filter(bookings, func(b models.Booking, _ int) bool {
		return b.Status == models.StatusOverstay
	})
}

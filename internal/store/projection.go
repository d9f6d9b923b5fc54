package store

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/godfreydekew/car-parking-crm/internal/domain/models"
)

// projectCustomers rebuilds the customer roster from scratch out of the
// booking list. A customer exists only as this projection: identity comes
// from CustomerID, total spend excludes CANCELLED and NO_SHOW bookings,
// booking count includes everything.
func projectCustomers(bookings []models.Booking) []models.Customer {
	grouped := lo.GroupBy(bookings, func(b models.Booking) string { return b.CustomerID })

	// Roster order follows first appearance in the booking list.
	var order []string
	seen := map[string]bool{}
	for _, b := range bookings {
		if !seen[b.CustomerID] {
			seen[b.CustomerID] = true
			order = append(order, b.CustomerID)
		}
	}

	customers := make([]models.Customer, 0, len(order))
	for _, id := range order {
		own := grouped[id]

		totalSpend := decimal.Zero
		for _, b := range own {
			if b.Status != models.StatusCancelled && b.Status != models.StatusNoShow {
				totalSpend = totalSpend.Add(b.Cost)
			}
		}

		newest := lo.MaxBy(own, func(a, b models.Booking) bool { return a.CreatedAt.After(b.CreatedAt) })
		oldest := lo.MinBy(own, func(a, b models.Booking) bool { return a.CreatedAt.Before(b.CreatedAt) })
		lastVisit := newest.CreatedAt

		customers = append(customers, models.Customer{
			ID:           id,
			FullName:     own[0].FullName,
			Email:        own[0].Email,
			Whatsapp:     own[0].Whatsapp,
			TotalSpend:   totalSpend,
			BookingCount: len(own),
			LastVisit:    &lastVisit,
			CreatedAt:    oldest.CreatedAt,
			IsRepeat:     len(own) > 1,
		})
	}
	return customers
}

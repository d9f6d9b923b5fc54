package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a projection over booking data, not an independently persisted
// record: identity comes from CustomerID on bookings and the roster is
// recomputed from scratch every time the booking list is reloaded.
type Customer struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Whatsapp string `json:"whatsapp"`

	// TotalSpend sums cost over the customer's bookings excluding CANCELLED
	// and NO_SHOW. BookingCount counts all bookings regardless of status.
	TotalSpend   decimal.Decimal `json:"totalSpend"`
	BookingCount int             `json:"bookingCount"`
	LastVisit    *time.Time      `json:"lastVisit,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	IsRepeat     bool            `json:"isRepeat"`
}

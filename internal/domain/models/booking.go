package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a booking. Values compare case-sensitively
// as an enumerated set; the gateway is the authority on transitions and this
// layer pre-checks them (see domain.ApplyTransition).
type Status string

const (
	StatusBooked    Status = "BOOKED"
	StatusOnSite    Status = "ON_SITE"
	StatusCollected Status = "COLLECTED"
	StatusOverstay  Status = "OVERSTAY"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
)

// Statuses lists every valid status value.
func Statuses() []Status {
	return []Status{StatusBooked, StatusOnSite, StatusCollected, StatusOverstay, StatusCancelled, StatusNoShow}
}

func (s Status) Valid() bool {
	switch s {
	case StatusBooked, StatusOnSite, StatusCollected, StatusOverstay, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are permitted from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusCollected, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// OnPremises reports whether the vehicle is physically parked on site.
func (s Status) OnPremises() bool {
	return s == StatusOnSite || s == StatusOverstay
}

type FlightType string

const (
	FlightDomestic      FlightType = "domestic"
	FlightInternational FlightType = "international"
)

func (f FlightType) Valid() bool {
	return f == FlightDomestic || f == FlightInternational
}

type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentEFT     PaymentMethod = "eft"
	PaymentCard    PaymentMethod = "card"
	PaymentPending PaymentMethod = "pending"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentEFT, PaymentCard, PaymentPending:
		return true
	}
	return false
}

type ActivityType string

const (
	ActivityCreated        ActivityType = "created"
	ActivityCheckIn        ActivityType = "check_in"
	ActivityCollected      ActivityType = "collected"
	ActivityNoteAdded      ActivityType = "note_added"
	ActivityStatusChanged  ActivityType = "status_changed"
	ActivityOverstayMarked ActivityType = "overstay_marked"
)

// ActivityEvent is an immutable audit entry describing one thing that happened
// to a booking. Events are only ever appended, never mutated; insertion order
// is the source of truth and each entry carries its own timestamp.
type ActivityEvent struct {
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp"`
	Actor       string       `json:"user,omitempty"`
}

// Booking is one parking reservation for one vehicle over one
// drop-off/pick-up date range. The gateway assigns IDs and owns the durable
// record; local copies are cache entries replaced wholesale after each
// mutation.
type Booking struct {
	ID                  string          `json:"id"`
	CustomerID          string          `json:"customerId"`
	CreatedAt           time.Time       `json:"timestamp"`
	FullName            string          `json:"fullName"`
	Email               string          `json:"email"`
	Whatsapp            string          `json:"whatsapp"`
	FlightType          FlightType      `json:"flightType"`
	DropoffAt           time.Time       `json:"dropoffAt"`
	PickupAt            time.Time       `json:"pickupAt"`
	VehicleMake         string          `json:"vehicleMake"`
	VehicleModel        string          `json:"vehicleModel"`
	VehicleColor        string          `json:"vehicleColor"`
	Registration        string          `json:"registration"`
	PaymentMethod       PaymentMethod   `json:"paymentMethod"`
	SpecialInstructions string          `json:"specialInstructions"`
	Cost                decimal.Decimal `json:"cost"`
	Status              Status          `json:"status"`
	CheckInTime         *time.Time      `json:"checkInTime,omitempty"`
	CollectedTime       *time.Time      `json:"collectedTime,omitempty"`
	Activity            []ActivityEvent `json:"activity"`
	Notes               []string        `json:"notes"`
}

// BookingUpdate carries the one documented edit path outside the status
// transitions: staff may revise cost, payment method, instructions and the
// pick-up slot at confirmation or invoice time. Nil fields are left untouched.
type BookingUpdate struct {
	PickupAt            *time.Time       `json:"pickup_at,omitempty"`
	PaymentMethod       *PaymentMethod   `json:"payment_method,omitempty"`
	SpecialInstructions *string          `json:"special_instructions,omitempty"`
	Cost                *decimal.Decimal `json:"cost,omitempty"`
}

// BookingFilters narrows a gateway list call. Zero values mean "no filter".
type BookingFilters struct {
	Status        Status
	PaymentMethod PaymentMethod
	FlightType    FlightType
	Search        string
	Skip          int
	Limit         int
}

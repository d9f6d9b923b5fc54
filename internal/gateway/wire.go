package gateway

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/godfreydekew/car-parking-crm/internal/domain/models"
	"github.com/godfreydekew/car-parking-crm/internal/utils"
)

// Wire shapes as serialized by the booking backend: snake_case fields,
// ISO-8601 timestamps, customer and vehicle nested on the booking. They are
// converted to domain types on receipt and never leak past this package.

type customerOut struct {
	ID             int64  `json:"id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	WhatsappNumber string `json:"whatsapp_number"`
	CreatedAt      string `json:"created_at"`
}

type vehicleOut struct {
	ID           int64  `json:"id"`
	Registration string `json:"registration"`
	MakeModel    string `json:"make_model"`
	Color        string `json:"color"`
}

type activityOut struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	User        string `json:"user"`
}

type bookingOut struct {
	ID                  int64           `json:"id"`
	Status              string          `json:"status"`
	FlightType          string          `json:"flight_type"`
	DropoffAt           string          `json:"dropoff_at"`
	PickupAt            string          `json:"pickup_at"`
	PaymentMethod       string          `json:"payment_method"`
	SpecialInstructions string          `json:"special_instructions"`
	Cost                decimal.Decimal `json:"cost"`
	CheckedInAt         *string         `json:"checked_in_at"`
	CollectedAt         *string         `json:"collected_at"`
	CreatedAt           string          `json:"created_at"`
	Customer            customerOut     `json:"customer"`
	Vehicle             vehicleOut      `json:"vehicle"`
	Activity            []activityOut   `json:"activity"`
	Notes               []string        `json:"notes"`
}

type bookingUpdateIn struct {
	PickupAt            *string          `json:"pickup_at,omitempty"`
	PaymentMethod       *string          `json:"payment_method,omitempty"`
	SpecialInstructions *string          `json:"special_instructions,omitempty"`
	Cost                *decimal.Decimal `json:"cost,omitempty"`
}

type noteIn struct {
	Note string `json:"note"`
}

type loginOut struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type errorOut struct {
	Detail any `json:"detail"`
}

func (w bookingOut) toDomain() (models.Booking, error) {
	createdAt, err := utils.ParseISO(w.CreatedAt)
	if err != nil {
		return models.Booking{}, fmt.Errorf("created_at: %w", err)
	}
	dropoffAt, err := utils.ParseISO(w.DropoffAt)
	if err != nil {
		return models.Booking{}, fmt.Errorf("dropoff_at: %w", err)
	}
	pickupAt, err := utils.ParseISO(w.PickupAt)
	if err != nil {
		return models.Booking{}, fmt.Errorf("pickup_at: %w", err)
	}

	make, model := splitMakeModel(w.Vehicle.MakeModel)

	b := models.Booking{
		ID:                  strconv.FormatInt(w.ID, 10),
		CustomerID:          strconv.FormatInt(w.Customer.ID, 10),
		CreatedAt:           createdAt,
		FullName:            w.Customer.FullName,
		Email:               w.Customer.Email,
		Whatsapp:            w.Customer.WhatsappNumber,
		FlightType:          models.FlightType(w.FlightType),
		DropoffAt:           dropoffAt,
		PickupAt:            pickupAt,
		VehicleMake:         make,
		VehicleModel:        model,
		VehicleColor:        w.Vehicle.Color,
		Registration:        w.Vehicle.Registration,
		PaymentMethod:       models.PaymentMethod(w.PaymentMethod),
		SpecialInstructions: w.SpecialInstructions,
		Cost:                w.Cost,
		Status:              models.Status(w.Status),
		Notes:               w.Notes,
	}

	if !b.Status.Valid() {
		return models.Booking{}, fmt.Errorf("unknown status %q", w.Status)
	}

	if w.CheckedInAt != nil && strings.TrimSpace(*w.CheckedInAt) != "" {
		t, err := utils.ParseISO(*w.CheckedInAt)
		if err != nil {
			return models.Booking{}, fmt.Errorf("checked_in_at: %w", err)
		}
		b.CheckInTime = &t
	}
	if w.CollectedAt != nil && strings.TrimSpace(*w.CollectedAt) != "" {
		t, err := utils.ParseISO(*w.CollectedAt)
		if err != nil {
			return models.Booking{}, fmt.Errorf("collected_at: %w", err)
		}
		b.CollectedTime = &t
	}

	for _, a := range w.Activity {
		ts, err := utils.ParseISO(a.Timestamp)
		if err != nil {
			return models.Booking{}, fmt.Errorf("activity timestamp: %w", err)
		}
		b.Activity = append(b.Activity, models.ActivityEvent{
			ID:          strconv.FormatInt(a.ID, 10),
			Type:        models.ActivityType(a.Type),
			Description: a.Description,
			Timestamp:   ts,
			Actor:       a.User,
		})
	}

	return b, nil
}

func toWireUpdate(u models.BookingUpdate) bookingUpdateIn {
	var w bookingUpdateIn
	if u.PickupAt != nil {
		s := u.PickupAt.UTC().Format(time.RFC3339)
		w.PickupAt = &s
	}
	if u.PaymentMethod != nil {
		s := string(*u.PaymentMethod)
		w.PaymentMethod = &s
	}
	w.SpecialInstructions = u.SpecialInstructions
	w.Cost = u.Cost
	return w
}

// splitMakeModel breaks the backend's combined "Toyota Corolla" field into the
// make/model pair the console displays. Single-word values become the make.
func splitMakeModel(s string) (string, string) {
	s = utils.NormalizeSpace(s)
	if s == "" {
		return "", ""
	}
	make, model, found := strings.Cut(s, " ")
	if !found {
		return s, ""
	}
	return make, model
}

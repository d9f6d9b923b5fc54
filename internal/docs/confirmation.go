package docs

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/godfreydekew/car-parking-crm/internal/domain/models"
	"github.com/godfreydekew/car-parking-crm/internal/utils"
)

const (
	companyName = "OR Tambo Premium Parking"
	companyAddr = "OR Tambo Airport, Kempton Park"
	companyTel  = "+27 73 544 0774"
	companyMail = "info@ortambopremiumparking.co.za"
	companyWeb  = "www.ortambopremiumparking.co.za"
)

// ConfirmationOverrides are the fields staff may revise while preparing the
// confirmation. Nil fields fall back to the booking snapshot. Persisting the
// revision is the caller's decision, made through the store's update path
// before or independently of generating the document.
type ConfirmationOverrides struct {
	PickupAt            *time.Time
	PaymentMethod       *models.PaymentMethod
	SpecialInstructions *string
	Cost                *decimal.Decimal
}

func (o ConfirmationOverrides) applyTo(b models.Booking) models.Booking {
	if o.PickupAt != nil {
		b.PickupAt = *o.PickupAt
	}
	if o.PaymentMethod != nil {
		b.PaymentMethod = *o.PaymentMethod
	}
	if o.SpecialInstructions != nil {
		b.SpecialInstructions = *o.SpecialInstructions
	}
	if o.Cost != nil {
		b.Cost = *o.Cost
	}
	return b
}

// ConfirmationLayout builds the confirmation document for a booking snapshot.
// Pure: the same snapshot, overrides and generation time yield an equal
// layout.
func ConfirmationLayout(b models.Booking, ov ConfirmationOverrides, generatedAt time.Time) Layout {
	b = ov.applyTo(b)

	blocks := []Block{
		HeaderBand{Company: companyName, Subtitle: "Booking Confirmation", DateStamp: utils.FormatLongDate(generatedAt)},
		ContactBlock{Heading: "From:", Lines: []string{companyAddr, companyTel, companyMail, companyWeb}},
		Divider{},
		SectionTitle{Text: "Customer Details"},
		FieldRows{Rows: []FieldRow{
			{Label: "Full Name", Value: safe(b.FullName)},
			{Label: "Email", Value: safe(b.Email)},
			{Label: "WhatsApp", Value: safe(b.Whatsapp)},
		}},
		SectionTitle{Text: "Vehicle Details"},
		FieldRows{Rows: []FieldRow{
			{Label: "Make / Model", Value: safe(strings.TrimSpace(b.VehicleMake + " " + b.VehicleModel))},
			{Label: "Color", Value: safe(b.VehicleColor)},
			{Label: "Registration", Value: safe(b.Registration)},
		}},
		SectionTitle{Text: "Booking Details"},
		FieldRows{Boxed: true, Rows: []FieldRow{
			{Label: "Booking Ref", Value: "#" + b.ID},
			{Label: "Flight Type", Value: strings.ToUpper(string(b.FlightType))},
			{Label: "Drop-off", Value: formatSlot(b.DropoffAt)},
			{Label: "Pick-up", Value: formatSlot(b.PickupAt)},
			{Label: "Payment Method", Value: strings.ToUpper(string(b.PaymentMethod))},
			{Label: "Special Instructions", Value: safe(b.SpecialInstructions)},
		}},
		TotalRow{Label: "Total", Value: utils.FormatRand(b.Cost)},
		Footer{Lines: []string{
			"Thank you for choosing " + companyName + ".",
			"Please present this confirmation at the gate on arrival.",
		}},
	}

	return Layout{
		Title:    "Booking Confirmation",
		Filename: fmt.Sprintf("OR_Tambo_Confirmation_%s.pdf", utils.SafeFilenamePart(utils.NormalizeRegistration(b.Registration))),
		Blocks:   blocks,
	}
}

// ConfirmationPDF renders the confirmation and returns the bytes and the
// deterministic download filename.
func ConfirmationPDF(b models.Booking, ov ConfirmationOverrides, generatedAt time.Time) ([]byte, string, error) {
	layout := ConfirmationLayout(b, ov, generatedAt)
	data, err := Render(layout)
	if err != nil {
		return nil, "", err
	}
	return data, layout.Filename, nil
}

func formatSlot(t time.Time) string {
	return utils.FormatLongDate(t) + " at " + utils.FormatTimeHM(t)
}

func safe(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

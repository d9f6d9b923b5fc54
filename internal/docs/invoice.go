package docs

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/godfreydekew/car-parking-crm/internal/domain/models"
	"github.com/godfreydekew/car-parking-crm/internal/utils"
)

// Default banking details printed on invoices unless staff override them.
const (
	defaultBankName      = "Access Bank"
	defaultBranchCode    = "410506"
	defaultAccountNumber = "51303986128"
)

// InvoiceDetails are the staff-editable invoice fields.
type InvoiceDetails struct {
	InvoiceDate   time.Time
	Description   string
	Amount        decimal.Decimal
	BankName      string
	BranchCode    string
	AccountNumber string
	Terms         string
}

// DefaultInvoiceDetails prefills the editable fields from the booking
// snapshot the way the invoice dialog opens.
func DefaultInvoiceDetails(b models.Booking, generatedAt time.Time) InvoiceDetails {
	return InvoiceDetails{
		InvoiceDate:   generatedAt,
		Description:   fmt.Sprintf("Secure airport parking, %s to %s", utils.FormatDate(b.DropoffAt), utils.FormatDate(b.PickupAt)),
		Amount:        b.Cost,
		BankName:      defaultBankName,
		BranchCode:    defaultBranchCode,
		AccountNumber: defaultAccountNumber,
	}
}

// InvoiceLayout builds the invoice document. Pure for fixed inputs.
func InvoiceLayout(b models.Booking, d InvoiceDetails, generatedAt time.Time) Layout {
	blocks := []Block{
		HeaderBand{Company: companyName, Subtitle: "Invoice", DateStamp: utils.FormatLongDate(generatedAt)},
		ContactBlock{Heading: "From:", Lines: []string{companyAddr, companyTel, companyMail, companyWeb}},
		Divider{},
		SectionTitle{Text: "Billed To"},
		FieldRows{Rows: []FieldRow{
			{Label: "Name", Value: safe(b.FullName)},
			{Label: "Email", Value: safe(b.Email)},
			{Label: "WhatsApp", Value: safe(b.Whatsapp)},
		}},
		SectionTitle{Text: "Invoice"},
		FieldRows{Boxed: true, Rows: []FieldRow{
			{Label: "Invoice No", Value: "INV-" + b.ID},
			{Label: "Invoice Date", Value: d.InvoiceDate.Format("02/01/2006")},
			{Label: "Booking Ref", Value: "#" + b.ID},
			{Label: "Description", Value: safe(d.Description)},
			{Label: "Amount", Value: utils.FormatRand(d.Amount)},
		}},
		TotalRow{Label: "Total Due", Value: utils.FormatRand(d.Amount)},
	}

	if strings.TrimSpace(d.Terms) != "" {
		blocks = append(blocks, TextBlock{Title: "Terms & Conditions", Text: d.Terms})
	}

	blocks = append(blocks,
		SectionTitle{Text: "Banking Details"},
		FieldRows{Rows: []FieldRow{
			{Label: "Bank Name", Value: safe(d.BankName)},
			{Label: "Branch Code", Value: safe(d.BranchCode)},
			{Label: "Account Number", Value: safe(d.AccountNumber)},
		}},
		Footer{Lines: []string{
			"Thank you for your business.",
			"Please use the invoice number as payment reference.",
		}},
	)

	return Layout{
		Title:    "Invoice",
		Filename: fmt.Sprintf("OR_Tambo_Invoice_%s.pdf", utils.SafeFilenamePart(b.FullName)),
		Blocks:   blocks,
	}
}

// InvoicePDF renders the invoice and returns the bytes and the deterministic
// download filename.
func InvoicePDF(b models.Booking, d InvoiceDetails, generatedAt time.Time) ([]byte, string, error) {
	layout := InvoiceLayout(b, d, generatedAt)
	data, err := Render(layout)
	if err != nil {
		return nil, "", err
	}
	return data, layout.Filename, nil
}

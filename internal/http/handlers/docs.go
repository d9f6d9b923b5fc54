package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/godfreydekew/car-parking-crm/internal/docs"
	"github.com/godfreydekew/car-parking-crm/internal/domain"
	"github.com/godfreydekew/car-parking-crm/internal/domain/models"
	"github.com/godfreydekew/car-parking-crm/internal/http/middleware"
	"github.com/godfreydekew/car-parking-crm/internal/utils"
)

// ConfirmationPDF renders the booking confirmation. Staff may revise the
// pick-up slot, payment method, instructions and cost for the document
// without persisting; persisting goes through the booking update endpoint.
func (h *Handler) ConfirmationPDF(c *gin.Context) {
	requestID := middleware.GetRequestID(c)

	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	b, ok := h.Store.Booking(c.Param("id"))
	if !ok {
		RespondDomainError(c, domain.NotFoundError{Resource: "booking"})
		return
	}

	ov, err := confirmationOverrides(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	data, filename, err := docs.ConfirmationPDF(b, ov, utils.NowUTC())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to generate confirmation", err)
		return
	}

	utils.LogEvent(requestID, "docs", "confirmation", "generated "+filename)
	sendPDF(c, data, filename)
}

// InvoicePDF renders the invoice. All invoice fields default from the
// booking and company settings and may be revised per document.
func (h *Handler) InvoicePDF(c *gin.Context) {
	requestID := middleware.GetRequestID(c)

	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	b, ok := h.Store.Booking(c.Param("id"))
	if !ok {
		RespondDomainError(c, domain.NotFoundError{Resource: "booking"})
		return
	}

	now := utils.NowUTC()
	details, err := invoiceDetails(c, b, now)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	data, filename, err := docs.InvoicePDF(b, details, now)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to generate invoice", err)
		return
	}

	utils.LogEvent(requestID, "docs", "invoice", "generated "+filename)
	sendPDF(c, data, filename)
}

func confirmationOverrides(c *gin.Context) (docs.ConfirmationOverrides, error) {
	var ov docs.ConfirmationOverrides

	if v := c.Query("pickup_at"); v != "" {
		t, err := utils.ParseISO(v)
		if err != nil {
			return ov, domain.ValidationError{Field: "pickup_at", Msg: "must be an ISO timestamp", Err: err}
		}
		ov.PickupAt = &t
	}
	if v := c.Query("payment_method"); v != "" {
		pm := models.PaymentMethod(v)
		if !pm.Valid() {
			return ov, domain.ValidationError{Field: "payment_method", Msg: "unknown payment method " + v}
		}
		ov.PaymentMethod = &pm
	}
	if v, set := c.GetQuery("special_instructions"); set {
		ov.SpecialInstructions = &v
	}
	if v := c.Query("cost"); v != "" {
		amount, err := utils.ParseAmount(v)
		if err != nil {
			return ov, domain.ValidationError{Field: "cost", Msg: "must be a valid amount", Err: err}
		}
		if amount.IsNegative() {
			return ov, domain.ValidationError{Field: "cost", Msg: "must not be negative"}
		}
		ov.Cost = &amount
	}
	return ov, nil
}

func invoiceDetails(c *gin.Context, b models.Booking, now time.Time) (docs.InvoiceDetails, error) {
	d := docs.DefaultInvoiceDetails(b, now)

	if v := c.Query("invoice_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return d, domain.ValidationError{Field: "invoice_date", Msg: "must be YYYY-MM-DD", Err: err}
		}
		d.InvoiceDate = t
	}
	if v := c.Query("description"); v != "" {
		d.Description = v
	}
	if v := c.Query("amount"); v != "" {
		amount, err := utils.ParseAmount(v)
		if err != nil {
			return d, domain.ValidationError{Field: "amount", Msg: "must be a valid amount", Err: err}
		}
		if amount.IsNegative() {
			return d, domain.ValidationError{Field: "amount", Msg: "must not be negative"}
		}
		d.Amount = amount
	}
	if v := c.Query("bank_name"); v != "" {
		d.BankName = v
	}
	if v := c.Query("branch_code"); v != "" {
		d.BranchCode = v
	}
	if v := c.Query("account_number"); v != "" {
		d.AccountNumber = v
	}
	if v := c.Query("terms"); v != "" {
		d.Terms = v
	}
	return d, nil
}

func sendPDF(c *gin.Context, data []byte, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

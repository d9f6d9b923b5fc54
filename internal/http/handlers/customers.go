package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/godfreydekew/car-parking-crm/internal/domain"
)

// ListCustomers serves the projected customer directory, first-appearance
// order preserved.
func (h *Handler) ListCustomers(c *gin.Context) {
	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	customers := h.Store.Customers()
	c.JSON(http.StatusOK, gin.H{"customers": customers, "count": len(customers)})
}

func (h *Handler) GetCustomer(c *gin.Context) {
	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	cust, ok := h.Store.Customer(c.Param("id"))
	if !ok {
		RespondDomainError(c, domain.NotFoundError{Resource: "customer"})
		return
	}
	c.JSON(http.StatusOK, cust)
}

// GetCustomerBookings lists the customer's full history, all statuses.
func (h *Handler) GetCustomerBookings(c *gin.Context) {
	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	if _, ok := h.Store.Customer(c.Param("id")); !ok {
		RespondDomainError(c, domain.NotFoundError{Resource: "customer"})
		return
	}
	bookings := h.Store.BookingsByCustomer(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

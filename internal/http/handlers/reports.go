package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/godfreydekew/car-parking-crm/internal/utils"
	"github.com/godfreydekew/car-parking-crm/internal/views"
)

// Dashboard serves the landing-page counters.
func (h *Handler) Dashboard(c *gin.Context) {
	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	stats := views.Dashboard(h.Store.Bookings(), utils.NowUTC())
	c.JSON(http.StatusOK, stats)
}

// maxRevenueSeriesDays bounds the daily series; the loop is O(days × n).
const maxRevenueSeriesDays = 365

// RevenueReport serves the rolling revenue windows plus a daily series.
// Query param days controls the series length, default 30, capped at a year.
func (h *Handler) RevenueReport(c *gin.Context) {
	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	now := utils.NowUTC()
	days := intQuery(c, "days", 30)
	if days > maxRevenueSeriesDays {
		days = maxRevenueSeriesDays
	}
	bookings := h.Store.Bookings()

	c.JSON(http.StatusOK, gin.H{
		"windows": views.RevenueWindows(bookings, now),
		"daily":   views.DailyRevenue(bookings, now, days),
	})
}

func (h *Handler) PaymentsReport(c *gin.Context) {
	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payments": views.PaymentsBreakdown(h.Store.Bookings()),
	})
}

// OperationsReport covers stay duration and flight-type mix.
func (h *Handler) OperationsReport(c *gin.Context) {
	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	bookings := h.Store.Bookings()
	c.JSON(http.StatusOK, gin.H{
		"averageStayDays": views.AverageStayDays(bookings),
		"flightTypes":     views.FlightTypes(bookings),
	})
}

// CustomersReport ranks customers by lifetime spend. Query param limit
// controls the list length, default 10.
func (h *Handler) CustomersReport(c *gin.Context) {
	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	limit := intQuery(c, "limit", 10)
	c.JSON(http.StatusOK, gin.H{
		"topCustomers": views.TopCustomers(h.Store.Customers(), limit),
	})
}

package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/godfreydekew/car-parking-crm/internal/domain"
	"github.com/godfreydekew/car-parking-crm/internal/domain/models"
	"github.com/godfreydekew/car-parking-crm/internal/http/middleware"
	"github.com/godfreydekew/car-parking-crm/internal/utils"
	"github.com/godfreydekew/car-parking-crm/internal/views"
)

// ListBookings serves the console's main list: filtered, searched and paged
// out of the cached snapshot. Query params: status, payment_method,
// flight_type, search, page, page_size.
func (h *Handler) ListBookings(c *gin.Context) {
	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}

	q := views.Query{
		Search: c.Query("search"),
	}
	if v := c.Query("status"); v != "" {
		status := models.Status(v)
		if !status.Valid() {
			RespondError(c, http.StatusBadRequest,
				fmt.Sprintf("unknown status %q, expected one of %v", v, models.Statuses()), nil)
			return
		}
		q.Status = status
	}
	if v := c.Query("payment_method"); v != "" {
		pm := models.PaymentMethod(v)
		if !pm.Valid() {
			RespondError(c, http.StatusBadRequest, "unknown payment method "+v, nil)
			return
		}
		q.PaymentMethod = pm
	}
	if v := c.Query("flight_type"); v != "" {
		ft := models.FlightType(v)
		if !ft.Valid() {
			RespondError(c, http.StatusBadRequest, "unknown flight type "+v, nil)
			return
		}
		q.FlightType = ft
	}

	page := intQuery(c, "page", 1)
	size := intQuery(c, "page_size", views.DefaultPageSize)

	filtered := views.Filter(h.Store.Bookings(), q)
	items := views.Page(filtered, page, size)

	c.JSON(http.StatusOK, gin.H{
		"bookings": items,
		"pagination": domain.Pagination{
			Page:     page,
			PageSize: size,
			Total:    len(filtered),
		},
		"pages": views.PageCount(len(filtered), size),
	})
}

func (h *Handler) GetBooking(c *gin.Context) {
	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	b, ok := h.Store.Booking(c.Param("id"))
	if !ok {
		RespondDomainError(c, domain.NotFoundError{Resource: "booking"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetActivity returns the booking's audit trail newest-first.
func (h *Handler) GetActivity(c *gin.Context) {
	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	b, ok := h.Store.Booking(c.Param("id"))
	if !ok {
		RespondDomainError(c, domain.NotFoundError{Resource: "booking"})
		return
	}

	activity := make([]models.ActivityEvent, len(b.Activity))
	copy(activity, b.Activity)
	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].Timestamp.After(activity[j].Timestamp)
	})
	c.JSON(http.StatusOK, gin.H{"activity": activity})
}

func (h *Handler) CheckIn(c *gin.Context) {
	requestID := middleware.GetRequestID(c)
	id := c.Param("id")

	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}

	b, err := h.Store.CheckIn(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(requestID, "bookings", "check_in", "booking "+id+" checked in")
	c.JSON(http.StatusOK, b)
}

func (h *Handler) Collect(c *gin.Context) {
	requestID := middleware.GetRequestID(c)
	id := c.Param("id")

	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}

	b, err := h.Store.Collect(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(requestID, "bookings", "collect", "booking "+id+" collected")
	c.JSON(http.StatusOK, b)
}

type statusRequest struct {
	Status models.Status `json:"status"`
}

// SetStatus covers the terminal branches staff set directly: CANCELLED and
// NO_SHOW. Check-in and collection have their own endpoints.
func (h *Handler) SetStatus(c *gin.Context) {
	requestID := middleware.GetRequestID(c)
	id := c.Param("id")

	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}

	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	b, err := h.Store.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(requestID, "bookings", "set_status", "booking "+id+" set to "+string(req.Status))
	c.JSON(http.StatusOK, b)
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	requestID := middleware.GetRequestID(c)
	id := c.Param("id")

	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}

	var u models.BookingUpdate
	if !BindJSONOrError(c, &u) {
		return
	}

	b, err := h.Store.Update(c.Request.Context(), id, u)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(requestID, "bookings", "update", "booking "+id+" updated")
	c.JSON(http.StatusOK, b)
}

type noteRequest struct {
	Note string `json:"note"`
}

func (h *Handler) AddNote(c *gin.Context) {
	requestID := middleware.GetRequestID(c)
	id := c.Param("id")

	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}

	var req noteRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	b, err := h.Store.AddNote(c.Request.Context(), id, req.Note)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(requestID, "bookings", "add_note", "note added to booking "+id)
	c.JSON(http.StatusOK, b)
}

// Reload forces a fresh snapshot from the gateway, bypassing the cache.
func (h *Handler) Reload(c *gin.Context) {
	requestID := middleware.GetRequestID(c)

	if err := h.Store.Load(c.Request.Context(), models.BookingFilters{}); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(requestID, "bookings", "reload", "snapshot refreshed from gateway")
	c.JSON(http.StatusOK, gin.H{
		"status": "reloaded",
		"count":  len(h.Store.Bookings()),
	})
}

// OnSite lists vehicles currently on the premises, for the yard view.
func (h *Handler) OnSite(c *gin.Context) {
	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	items := views.OnSite(h.Store.Bookings())
	c.JSON(http.StatusOK, gin.H{"bookings": items, "count": len(items)})
}

// Overstays lists bookings flagged OVERSTAY by the backend.
func (h *Handler) Overstays(c *gin.Context) {
	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	items := views.Overstays(h.Store.Bookings())
	c.JSON(http.StatusOK, gin.H{"bookings": items, "count": len(items)})
}

// FindByRegistration resolves a plate to its booking for the check-in desk.
func (h *Handler) FindByRegistration(c *gin.Context) {
	if err := h.Store.EnsureLoaded(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	reg := c.Query("registration")
	if utils.TrimOrEmpty(reg) == "" {
		RespondError(c, http.StatusBadRequest, "registration query parameter is required", nil)
		return
	}
	b, ok := views.FindByRegistration(h.Store.Bookings(), reg)
	if !ok {
		RespondDomainError(c, domain.NotFoundError{Resource: "booking"})
		return
	}
	c.JSON(http.StatusOK, b)
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

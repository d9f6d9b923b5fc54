// Package http wires the gin router: middleware chain, public routes and the
// authenticated console surface.
package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"github.com/godfreydekew/car-parking-crm/internal/config"
	"github.com/godfreydekew/car-parking-crm/internal/http/handlers"
	"github.com/godfreydekew/car-parking-crm/internal/http/middleware"
)

func NewRouter(env config.Env, h *handlers.Handler) *gin.Engine {
	r := gin.New()
	r.SetTrustedProxies(nil)

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(env.CORSAllowedOrigins))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(nethttp.StatusNotFound, gin.H{"message": "route not found"})
	})

	api := r.Group("/api")

	api.GET("/health", h.Health)
	api.POST("/auth/login", h.Login)

	authed := api.Group("")
	authed.Use(middleware.RequireAuth())
	{
		// Static paths cannot share a segment with :id in gin's tree, so the
		// list-derived views live beside /bookings rather than under it.
		authed.GET("/bookings", h.ListBookings)
		authed.POST("/reload", h.Reload)
		authed.GET("/search", h.FindByRegistration)
		authed.GET("/on-site", h.OnSite)
		authed.GET("/overstays", h.Overstays)
		authed.GET("/bookings/:id", h.GetBooking)
		authed.GET("/bookings/:id/activity", h.GetActivity)
		authed.PATCH("/bookings/:id/check-in", h.CheckIn)
		authed.PATCH("/bookings/:id/collect", h.Collect)
		authed.PATCH("/bookings/:id/status", h.SetStatus)
		authed.POST("/bookings/:id/update", h.UpdateBooking)
		authed.POST("/bookings/:id/notes", h.AddNote)
		authed.GET("/bookings/:id/confirmation.pdf", h.ConfirmationPDF)
		authed.GET("/bookings/:id/invoice.pdf", h.InvoicePDF)

		authed.GET("/customers", h.ListCustomers)
		authed.GET("/customers/:id", h.GetCustomer)
		authed.GET("/customers/:id/bookings", h.GetCustomerBookings)

		authed.GET("/reports/dashboard", h.Dashboard)
		authed.GET("/reports/revenue", h.RevenueReport)
		authed.GET("/reports/payments", h.PaymentsReport)
		authed.GET("/reports/operations", h.OperationsReport)
		authed.GET("/reports/customers", h.CustomersReport)
	}

	return r
}

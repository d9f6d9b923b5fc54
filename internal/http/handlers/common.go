package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/godfreydekew/car-parking-crm/internal/gateway"
	"github.com/godfreydekew/car-parking-crm/internal/http/middleware"
	"github.com/godfreydekew/car-parking-crm/internal/store"
)

// Handler bundles the console's collaborators. Wired once at startup and
// passed to the router; no module-level singletons.
type Handler struct {
	Store   *store.Store
	Gateway *gateway.Client
}

func New(s *store.Store, gw *gateway.Client) *Handler {
	return &Handler{Store: s, Gateway: gw}
}

// RespondError sends a standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty request body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

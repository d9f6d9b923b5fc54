package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/godfreydekew/car-parking-crm/internal/domain"
	"github.com/godfreydekew/car-parking-crm/internal/http/middleware"
)

// RespondDomainError translates a domain error into an HTTP response.
// Anything outside the known taxonomy is treated as an internal error.
func RespondDomainError(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)

	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{
			"message":    err.Error(),
			"code":       "validation_error",
			"request_id": requestID,
		})
	case domain.IsInvalidTransition(err):
		c.JSON(http.StatusConflict, gin.H{
			"message":    err.Error(),
			"code":       "invalid_transition",
			"request_id": requestID,
		})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{
			"message":    err.Error(),
			"code":       "not_found",
			"request_id": requestID,
		})
	case domain.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, gin.H{
			"message":    err.Error(),
			"code":       "unauthorized",
			"request_id": requestID,
		})
	case domain.IsGateway(err):
		c.JSON(http.StatusBadGateway, gin.H{
			"message":    err.Error(),
			"code":       "gateway_error",
			"request_id": requestID,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":    "internal server error",
			"code":       "internal_error",
			"request_id": requestID,
		})
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/godfreydekew/car-parking-crm/internal/http/middleware"
	"github.com/godfreydekew/car-parking-crm/internal/utils"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges operator credentials for a bearer token. The console
// holds no credential store of its own; the call is forwarded upstream.
func (h *Handler) Login(c *gin.Context) {
	requestID := middleware.GetRequestID(c)

	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if utils.TrimOrEmpty(req.Username) == "" || req.Password == "" {
		RespondError(c, http.StatusBadRequest, "username and password are required", nil)
		return
	}

	res, err := h.Gateway.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		utils.LogEvent(requestID, "auth", "login", "login failed for "+req.Username)
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(requestID, "auth", "login", "operator "+req.Username+" logged in")
	c.JSON(http.StatusOK, res)
}

package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/godfreydekew/car-parking-crm/internal/utils"
)

// Logger emits one request line in the same module/action vocabulary the
// handlers log with, so a request id can be traced from the staff-facing edge
// through the gateway calls it triggered.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		utils.LogEvent(GetRequestID(c), "http", strings.ToLower(c.Request.Method),
			fmt.Sprintf("%s status=%d latency_ms=%.3f ip=%s",
				c.Request.URL.Path,
				c.Writer.Status(),
				float64(latency.Microseconds())/1000.0,
				c.ClientIP()))
	}
}

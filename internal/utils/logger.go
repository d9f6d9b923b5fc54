package utils

import (
	"log"
	"strings"
)

// LogEvent writes one line in the console's module/action event vocabulary
// (AUTH, BOOKINGS, DOCS, HTTP). Blank request IDs print as "-" so the field
// stays grep-able. Messages should be summarized; never log payloads.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}

package utils

import (
	"log"
	"strings"
)

// LogEvent records a domain event as a single greppable line keyed by
// module and action. Messages carry identifiers (manifest id, seat, code),
// never passenger personal data.
func LogEvent(requestID, module, action, message string) {
	log.Printf("[%s] action=%s request_id=%s msg=%s",
		strings.ToUpper(module), action, strings.TrimSpace(requestID), message)
}

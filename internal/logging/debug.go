package logging

import (
	"log"
	"os"
)

// DebugEnabled returns true if debug mode is enabled via CLIENTDESK_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("CLIENTDESK_DEBUG") != ""
}

// Debugf logs a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// Package diag is the non-fatal diagnostics channel used across the codec.
//
// Warnings (end-signature mismatch, filename-decode fallback) are reported
// here instead of changing a caller's return status, per the propagation
// policy.
package diag

import (
	"fmt"
	"log"
)

// Channel collects warnings emitted during one embed/extract/compare call.
// It never affects control flow; callers may inspect Warnings() afterwards
// or ignore it entirely.
type Channel struct {
	warnings []string
}

// New returns an empty diagnostics channel.
func New() *Channel {
	return &Channel{}
}

// Warnf records a warning and logs it with the [WARN] tag.
func (c *Channel) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.warnings = append(c.warnings, msg)
	log.Printf("[WARN] %s", msg)
}

// Infof logs an informational message without recording it as a warning.
func (c *Channel) Infof(format string, args ...any) {
	log.Printf("[INFO] %s", fmt.Sprintf(format, args...))
}

// Warnings returns every warning recorded so far, in order.
func (c *Channel) Warnings() []string {
	return c.warnings
}

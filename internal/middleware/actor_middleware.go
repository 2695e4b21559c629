package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ContextKeyStaffID is the gin context key holding the acting staff member's
// ID, when the client identified one.
const ContextKeyStaffID = "staff_id"

// ActorMiddleware reads the X-Staff-ID header into the request context so
// handlers can attribute writes to a staff member. The header is optional;
// a malformed value is ignored rather than rejected, since attribution is
// informational and must never block the door.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("X-Staff-ID")
		if header != "" {
			if id, err := strconv.ParseInt(header, 10, 64); err == nil && id > 0 {
				c.Set(ContextKeyStaffID, id)
			}
		}
		c.Next()
	}
}

// StaffIDFromContext returns the acting staff ID, or nil if none was given.
func StaffIDFromContext(c *gin.Context) *int64 {
	value, exists := c.Get(ContextKeyStaffID)
	if !exists {
		return nil
	}
	id, ok := value.(int64)
	if !ok {
		return nil
	}
	return &id
}

package middleware

import (
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"venue_ops_backend/internal/services"
)

// AutoTransitionMiddleware piggybacks scheduled event transitions on
// incoming traffic: at most once per interval, a request triggers the
// open/close sweep before being handled. The sweep never fails the request;
// its errors are logged inside the service.
func AutoTransitionMiddleware(eventService services.EventService, interval time.Duration) gin.HandlerFunc {
	var lastRun atomic.Int64

	return func(c *gin.Context) {
		now := time.Now().UnixNano()
		last := lastRun.Load()
		if now-last >= interval.Nanoseconds() && lastRun.CompareAndSwap(last, now) {
			eventService.ProcessAutoTransitions()
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	resp "gin-gorm-users/internal/transport/http/response"
)

// ConcurrencyLimit caps in-flight requests to protect the database pool. A
// request that cannot get a slot before its context ends is answered with 503.
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, resp.Error(http.StatusServiceUnavailable, ""))
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}

package middleware

import (
	"net/http"

	"khanza/internal/ratelimit"
	"khanza/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const rateLimitedMsg = "Terlalu banyak permintaan. Coba lagi nanti."

// RateLimit lets one request per client IP through per window for the
// named bucket. A failing store fails open.
func RateLimit(l ratelimit.Limiter, bucket string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}
		ok, err := l.Allow(c.Request.Context(), bucket+":"+c.ClientIP())
		if err != nil {
			utils.Log().Warn("rate limiter unavailable", zap.String("request_id", GetRequestID(c)), zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      rateLimitedMsg,
				"code":       "rate_limited",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}

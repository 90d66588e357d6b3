package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RequestIDKey is the gin context key carrying the per-request identifier.
const RequestIDKey = "request_id"

// RequestLogger assigns a request ID, logs every request and recovers panics
// into a JSON 500.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		defer func() {
			if recovered := recover(); recovered != nil {
				log.WithFields(requestFields(c, start)).
					WithField("stack", string(debug.Stack())).
					Errorf("panic recovered: %v", recovered)

				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_SERVER_ERROR",
						"message": "Internal Server Error",
					},
				})
				c.Abort()
				return
			}

			entry := log.WithFields(requestFields(c, start))
			switch {
			case c.Writer.Status() >= http.StatusInternalServerError:
				entry.Error("request failed")
			case len(c.Errors) > 0:
				entry.Warn(fmt.Sprintf("request completed with errors: %v", c.Errors.Errors()))
			default:
				entry.Info("request completed")
			}
		}()

		c.Next()
	}
}

func requestFields(c *gin.Context, start time.Time) log.Fields {
	return log.Fields{
		"status":     c.Writer.Status(),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"client_ip":  c.ClientIP(),
		"user_id":    c.GetInt64("user_id"),
		"request_id": c.GetString(RequestIDKey),
		"latency":    time.Since(start).String(),
	}
}

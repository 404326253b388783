package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brokermate/brokermate-backend/internal/logger"
)

type RequestLogMiddleware struct {
	log *logger.Logger
}

func NewRequestLogMiddleware(baseLog *logger.Logger) *RequestLogMiddleware {
	return &RequestLogMiddleware{log: baseLog.With("middleware", "RequestLog")}
}

func (rl *RequestLogMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		rl.log.Info("Request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	logEventHTTPRequest    = "http_request"
	logFieldRequestMethod  = "method"
	logFieldRequestPath    = "path"
	logFieldResponseStatus = "status"
	logFieldRequestLatency = "latency"
	logFieldClientAddress  = "client"
)

// RequestLogger emits one structured log line per handled request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(context *gin.Context) {
		startedAt := time.Now()
		context.Next()
		logger.Info(logEventHTTPRequest,
			zap.String(logFieldRequestMethod, context.Request.Method),
			zap.String(logFieldRequestPath, context.Request.URL.Path),
			zap.Int(logFieldResponseStatus, context.Writer.Status()),
			zap.Duration(logFieldRequestLatency, time.Since(startedAt)),
			zap.String(logFieldClientAddress, context.ClientIP()),
		)
	}
}

package logger

import (
	"time"

	"github.com/gin-gonic/gin"
)

// LogWithWriter is the request access log middleware.
func LogWithWriter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path
		if raw := ctx.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		ctx.Next()

		Infof(ctx, "%s %s %d %s %s",
			ctx.Request.Method,
			path,
			ctx.Writer.Status(),
			time.Since(start),
			ctx.ClientIP(),
		)
	}
}

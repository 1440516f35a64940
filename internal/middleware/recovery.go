package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/task-rewards-api/internal/errors"
	"github.com/yukikurage/task-rewards-api/internal/metrics"
	"go.uber.org/zap"
)

func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic_recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
				)
				metrics.ErrorCount.WithLabelValues("recovery", "panic").Inc()
				apierrors.InternalError(c, "")
				c.Abort()
			}
		}()
		c.Next()
	}
}

package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/task-rewards-api/internal/errors"
	"github.com/yukikurage/task-rewards-api/internal/metrics"
	"github.com/yukikurage/task-rewards-api/internal/services"
	"go.uber.org/zap"
)

// respondServiceError maps service errors to API errors. Unknown errors are
// logged and answered with a generic 500.
func respondServiceError(c *gin.Context, log *zap.Logger, handler string, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.BadRequestWithDetails(c, "Invalid input", verr.Fields)
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrCardNotFound):
		apierrors.NotFound(c, "Card not found")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrEmptyCatalog):
		apierrors.EmptyCatalog(c)
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured")
	default:
		metrics.ErrorCount.WithLabelValues(handler, "internal").Inc()
		log.Error("request_failed", zap.String("handler", handler), zap.Error(err))
		apierrors.InternalError(c, "")
	}
}

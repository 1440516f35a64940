package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-rewards-api/internal/dto"
	apierrors "github.com/yukikurage/task-rewards-api/internal/errors"
	"github.com/yukikurage/task-rewards-api/internal/middleware"
	"github.com/yukikurage/task-rewards-api/internal/services"
	"github.com/yukikurage/task-rewards-api/internal/storage"
	"go.uber.org/zap"
)

type CollectionHandler struct {
	collectionService *services.CollectionService
	assets            storage.Storage
	log               *zap.Logger
}

func NewCollectionHandler(collectionService *services.CollectionService, assets storage.Storage, log *zap.Logger) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
		assets:            assets,
		log:               log,
	}
}

// GetCollection returns the current user's cards with quantities
func (h *CollectionHandler) GetCollection(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	entries, err := h.collectionService.GetCollection(userID)
	if err != nil {
		respondServiceError(c, h.log, "get_collection", err)
		return
	}

	summary, err := h.collectionService.Summary(userID)
	if err != nil {
		respondServiceError(c, h.log, "get_collection", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCollectionResponse(entries, summary, h.assets.URL))
}

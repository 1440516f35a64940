package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-rewards-api/internal/constants"
	"github.com/yukikurage/task-rewards-api/internal/dto"
	apierrors "github.com/yukikurage/task-rewards-api/internal/errors"
	"github.com/yukikurage/task-rewards-api/internal/services"
	"github.com/yukikurage/task-rewards-api/internal/storage"
	"go.uber.org/zap"
)

// CardHandler serves the card catalog.
type CardHandler struct {
	catalogService *services.CatalogService
	assets         storage.Storage
	log            *zap.Logger
}

func NewCardHandler(catalogService *services.CatalogService, assets storage.Storage, log *zap.Logger) *CardHandler {
	return &CardHandler{
		catalogService: catalogService,
		assets:         assets,
		log:            log,
	}
}

// ListCards returns the whole catalog
func (h *CardHandler) ListCards(c *gin.Context) {
	cards, err := h.catalogService.ListCards()
	if err != nil {
		respondServiceError(c, h.log, "list_cards", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": dto.ToCardList(cards, h.assets.URL)})
}

// AddCard creates a card from a multipart form with fields name, era,
// rarity, group and the image file.
func (h *CardHandler) AddCard(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, constants.MaxImageUploadBytes+1<<20)

	input := services.AddCardInput{
		Name:   c.PostForm("name"),
		Era:    c.PostForm("era"),
		Rarity: c.PostForm("rarity"),
		Group:  c.PostForm("group"),
	}

	fileHeader, err := c.FormFile("image")
	if err == nil {
		if fileHeader.Size > constants.MaxImageUploadBytes {
			apierrors.BadRequestWithDetails(c, "Invalid input", map[string]string{
				"image": "is too large",
			})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			apierrors.BadRequest(c, "Failed to read image")
			return
		}
		defer file.Close()

		input.Image = file
		input.ImageName = fileHeader.Filename
		input.ImageSize = fileHeader.Size
		input.ContentType = fileHeader.Header.Get("Content-Type")
	}

	card, err := h.catalogService.AddCard(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, h.log, "add_card", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCardDTO(*card, h.assets.URL))
}

// DeleteCard removes a card from the catalog and from every collection
func (h *CardHandler) DeleteCard(c *gin.Context) {
	cardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid card ID")
		return
	}

	if err := h.catalogService.RemoveCard(c.Request.Context(), cardID); err != nil {
		respondServiceError(c, h.log, "delete_card", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Card deleted successfully",
	})
}

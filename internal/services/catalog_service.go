package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/yukikurage/task-rewards-api/internal/models"
	"github.com/yukikurage/task-rewards-api/internal/repository"
	"github.com/yukikurage/task-rewards-api/internal/storage"
	"github.com/yukikurage/task-rewards-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// CatalogService manages card definitions and their images.
type CatalogService struct {
	store   *repository.Store
	storage storage.Storage
	log     *zap.Logger
}

func NewCatalogService(store *repository.Store, assets storage.Storage, log *zap.Logger) *CatalogService {
	return &CatalogService{
		store:   store,
		storage: assets,
		log:     log,
	}
}

// AddCardInput describes a new card. Image holds ImageSize bytes of the uploaded file.
type AddCardInput struct {
	Name        string `validate:"required,max=64"`
	Era         string `validate:"required,max=64"`
	Rarity      string `validate:"required,max=64"`
	Group       string `validate:"required,max=64"`
	Image       io.Reader
	ImageName   string
	ImageSize   int64
	ContentType string
}

// AddCard stores the image and creates the card. The image is removed again
// if the card cannot be created.
func (s *CatalogService) AddCard(ctx context.Context, input AddCardInput) (*models.Card, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Era = strings.TrimSpace(input.Era)
	input.Rarity = strings.TrimSpace(input.Rarity)
	input.Group = strings.TrimSpace(input.Group)

	verr := validateStruct(input)
	if input.Image == nil || input.ImageName == "" {
		if verr == nil {
			verr = &ValidationError{}
		}
		verr.add("image", "is required")
	} else if !imageExtensions[strings.ToLower(filepath.Ext(input.ImageName))] {
		if verr == nil {
			verr = &ValidationError{}
		}
		verr.add("image", "must be a jpg, png, gif or webp file")
	}
	if verr != nil {
		return nil, verr
	}

	name := utils.GenerateAssetName(input.ImageName)
	ref, err := s.storage.Save(ctx, name, input.Image, input.ImageSize, input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	card := &models.Card{
		ImageRef: ref,
		Name:     input.Name,
		Rarity:   input.Rarity,
		Era:      input.Era,
		Group:    input.Group,
	}

	if err := s.store.Cards.Create(card); err != nil {
		if derr := s.storage.Delete(ctx, ref); derr != nil {
			s.log.Warn("asset_cleanup_failed", zap.String("ref", ref), zap.Error(derr))
		}
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	s.log.Info("card_added",
		zap.Uint64("card_id", card.ID),
		zap.String("name", card.Name),
		zap.String("storage", s.storage.Name()),
	)

	return card, nil
}

// RemoveCard deletes a card and every collection entry holding it, then its image.
func (s *CatalogService) RemoveCard(ctx context.Context, cardID uint64) error {
	card, err := s.store.Cards.FindByID(cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCardNotFound
		}
		return fmt.Errorf("failed to find card: %w", err)
	}

	if err := s.store.Cards.Delete(card.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCardNotFound
		}
		return fmt.Errorf("failed to delete card: %w", err)
	}

	if err := s.storage.Delete(ctx, card.ImageRef); err != nil {
		s.log.Warn("asset_cleanup_failed", zap.String("ref", card.ImageRef), zap.Error(err))
	}

	s.log.Info("card_removed", zap.Uint64("card_id", card.ID))
	return nil
}

// ListCards returns the whole catalog.
func (s *CatalogService) ListCards() ([]models.Card, error) {
	cards, err := s.store.Cards.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// GetCard returns a card definition.
func (s *CatalogService) GetCard(cardID uint64) (*models.Card, error) {
	card, err := s.store.Cards.FindByID(cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}
	return card, nil
}

// ImageURL resolves a card's image reference for clients.
func (s *CatalogService) ImageURL(card *models.Card) string {
	return s.storage.URL(card.ImageRef)
}

package repository

import (
	"fmt"

	"github.com/yukikurage/task-rewards-api/internal/models"
	"gorm.io/gorm"
)

// GormCardRepository is a GORM implementation of CardRepository
type GormCardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new CardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &GormCardRepository{db: db}
}

// Create creates a new card definition
func (r *GormCardRepository) Create(card *models.Card) error {
	return r.db.Create(card).Error
}

// FindByID finds a card by ID
func (r *GormCardRepository) FindByID(id uint64) (*models.Card, error) {
	var card models.Card
	if err := r.db.First(&card, id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// List returns the whole catalog
func (r *GormCardRepository) List() ([]models.Card, error) {
	var cards []models.Card
	if err := r.db.Order("id ASC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// ListIDs returns the IDs of every card in the catalog
func (r *GormCardRepository) ListIDs() ([]uint64, error) {
	var ids []uint64
	if err := r.db.Model(&models.Card{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Delete deletes a card and every collection entry referencing it in a transaction
func (r *GormCardRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", id).Delete(&models.UserCard{}).Error; err != nil {
			return fmt.Errorf("delete collection entries: %w", err)
		}

		result := tx.Delete(&models.Card{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

package repository

import (
	"fmt"

	"github.com/yukikurage/task-rewards-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserCardRepository is a GORM implementation of UserCardRepository
type GormUserCardRepository struct {
	db *gorm.DB
}

// NewUserCardRepository creates a new UserCardRepository
func NewUserCardRepository(db *gorm.DB) UserCardRepository {
	return &GormUserCardRepository{db: db}
}

// Increment inserts a (user, card) entry with quantity 1, or bumps the quantity
// of the existing entry. The unique (user_id, card_id) index turns a concurrent
// second insert into an increment instead of a duplicate row.
func (r *GormUserCardRepository) Increment(userID, cardID uint64) (*models.UserCard, error) {
	entry := &models.UserCard{
		UserID:   userID,
		CardID:   cardID,
		Quantity: 1,
	}

	err := r.db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "card_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("user_cards.quantity + 1"),
			}),
		}).
		Create(entry).Error
	if err != nil {
		return nil, fmt.Errorf("upsert collection entry: %w", err)
	}

	return r.Find(userID, cardID)
}

// Find finds the collection entry for a (user, card) pair
func (r *GormUserCardRepository) Find(userID, cardID uint64) (*models.UserCard, error) {
	var entry models.UserCard
	if err := r.db.Where("user_id = ? AND card_id = ?", userID, cardID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListByUser lists a user's collection ordered by card ID
func (r *GormUserCardRepository) ListByUser(userID uint64) ([]models.UserCard, error) {
	var entries []models.UserCard
	if err := r.db.Preload("Card").
		Where("user_id = ?", userID).
		Order("card_id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CountByCard counts collection entries referencing a card
func (r *GormUserCardRepository) CountByCard(cardID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.UserCard{}).Where("card_id = ?", cardID).Count(&count).Error
	return count, err
}

package models

import "time"

// UserCard records that a user owns Quantity copies of a card. There is at most
// one row per (user, card) pair.
type UserCard struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_user_cards_user_card" json:"user_id"`
	CardID    uint64    `gorm:"not null;uniqueIndex:idx_user_cards_user_card;index:idx_user_cards_card_id" json:"card_id"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Card *Card `gorm:"foreignKey:CardID" json:"card,omitempty"`
}

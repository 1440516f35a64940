package models

import "time"

// Card is a catalog definition. Possession is tracked by UserCard.
type Card struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ImageRef  string    `gorm:"type:varchar(255);not null" json:"image_ref"`
	Name      string    `gorm:"type:varchar(64);not null" json:"name"`
	Rarity    string    `gorm:"type:varchar(64);not null" json:"rarity"`
	Era       string    `gorm:"type:varchar(64);not null" json:"era"`
	Group     string    `gorm:"column:card_group;type:varchar(64);not null" json:"group"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

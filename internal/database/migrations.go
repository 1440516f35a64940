package database

import (
	"fmt"

	"github.com/yukikurage/task-rewards-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnsureIndexes verifies the indexes the reward pipeline depends on and creates
// any that are missing. The unique (user_id, card_id) index backs the
// collection upsert.
func EnsureIndexes(db *gorm.DB, log *zap.Logger) error {
	indexes := []struct {
		model interface{}
		name  string
	}{
		{&models.UserCard{}, "idx_user_cards_user_card"},
		{&models.UserCard{}, "idx_user_cards_card_id"},
		{&models.Task{}, "idx_tasks_week"},
		{&models.Task{}, "idx_tasks_user_id"},
		{&models.Task{}, "idx_tasks_due_date"},
		{&models.User{}, "idx_users_username"},
		{&models.User{}, "idx_users_email"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		if err := migrator.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("index_created", zap.String("index", idx.name))
	}

	return nil
}

// MigrateDatabase runs schema migrations followed by index verification.
func MigrateDatabase(db *gorm.DB, log *zap.Logger) error {
	if err := Migrate(db); err != nil {
		return err
	}

	if err := EnsureIndexes(db, log); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}

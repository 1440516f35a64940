package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/task-rewards-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// IncompleteFirst orders tasks with open tasks before completed ones, keeping
// insertion order within each group.
func IncompleteFirst(db *gorm.DB) *gorm.DB {
	return db.Order("tasks.completed ASC").Order("tasks.id ASC")
}

package repository

import "gorm.io/gorm"

// Store bundles the repositories over one database handle. Store.Transaction
// hands a Store bound to the transaction to the callback, so every repository
// call inside it commits or rolls back together.
type Store struct {
	db        *gorm.DB
	Users     UserRepository
	Tasks     TaskRepository
	Cards     CardRepository
	UserCards UserCardRepository
}

// NewStore creates a Store over db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		Users:     NewUserRepository(db),
		Tasks:     NewTaskRepository(db),
		Cards:     NewCardRepository(db),
		UserCards: NewUserCardRepository(db),
	}
}

// Transaction runs fn inside a database transaction
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

package repository

import (
	"time"

	"github.com/yukikurage/task-rewards-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Delete removes a user together with their tasks and collection
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination, incomplete tasks first
	List(filter TaskFilter) ([]models.Task, int64, error)

	// MarkCompleted sets completed = true on a task
	MarkCompleted(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	UserID      *uint64
	DueDateFrom *time.Time
	DueDateTo   *time.Time
	WeekNumber  *int
	WeekYear    *int
	Completed   *bool
	Page        int
	PageSize    int
}

// CardRepository defines the interface for catalog data access
type CardRepository interface {
	// Create creates a new card definition
	Create(card *models.Card) error

	// FindByID finds a card by ID
	FindByID(id uint64) (*models.Card, error)

	// List returns the whole catalog ordered by ID
	List() ([]models.Card, error)

	// ListIDs returns the IDs of every card in the catalog
	ListIDs() ([]uint64, error)

	// Delete removes a card and every collection entry referencing it
	Delete(id uint64) error
}

// UserCardRepository defines the interface for collection data access
type UserCardRepository interface {
	// Increment adds one copy of a card to a user's collection, creating the
	// entry when it does not exist yet, and returns the resulting row
	Increment(userID, cardID uint64) (*models.UserCard, error)

	// Find finds the collection entry for a (user, card) pair
	Find(userID, cardID uint64) (*models.UserCard, error)

	// ListByUser lists a user's collection with card definitions preloaded
	ListByUser(userID uint64) ([]models.UserCard, error)

	// CountByCard counts collection entries referencing a card
	CountByCard(cardID uint64) (int64, error)
}

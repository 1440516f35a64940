package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/task-rewards-api/internal/models"
	"github.com/yukikurage/task-rewards-api/internal/repository"
	"gorm.io/gorm"
)

// CollectionEntry is one owned card and how many copies the user has.
type CollectionEntry struct {
	Card     models.Card
	Quantity int
}

// CollectionSummary aggregates a user's collection.
type CollectionSummary struct {
	DistinctCards int
	TotalCards    int
	CatalogSize   int
	ByRarity      map[string]int
}

type CollectionService struct {
	store *repository.Store
}

func NewCollectionService(store *repository.Store) *CollectionService {
	return &CollectionService{store: store}
}

// GetCollection returns the cards a user owns, ordered by card ID.
func (s *CollectionService) GetCollection(userID uint64) ([]CollectionEntry, error) {
	if _, err := s.store.Users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	rows, err := s.store.UserCards.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}

	entries := make([]CollectionEntry, 0, len(rows))
	for _, row := range rows {
		if row.Card == nil {
			continue
		}
		entries = append(entries, CollectionEntry{Card: *row.Card, Quantity: row.Quantity})
	}

	return entries, nil
}

// Summary counts distinct and total owned cards, per rarity, against the catalog size.
func (s *CollectionService) Summary(userID uint64) (*CollectionSummary, error) {
	entries, err := s.GetCollection(userID)
	if err != nil {
		return nil, err
	}

	ids, err := s.store.Cards.ListIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	summary := &CollectionSummary{
		DistinctCards: len(entries),
		CatalogSize:   len(ids),
		ByRarity:      make(map[string]int),
	}
	for _, e := range entries {
		summary.TotalCards += e.Quantity
		summary.ByRarity[e.Card.Rarity] += e.Quantity
	}

	return summary, nil
}

package services

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/yukikurage/task-rewards-api/internal/metrics"
	"github.com/yukikurage/task-rewards-api/internal/models"
	"github.com/yukikurage/task-rewards-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RewardResult is the outcome of one draw: the card and how many copies the
// user owns after it.
type RewardResult struct {
	Card     models.Card
	Quantity int
}

// RewardService draws cards from the catalog into user collections.
type RewardService struct {
	store *repository.Store
	pick  func(n int) int
	log   *zap.Logger
}

// NewRewardService creates a RewardService drawing uniformly at random.
func NewRewardService(store *repository.Store, log *zap.Logger) *RewardService {
	return &RewardService{
		store: store,
		pick:  rand.Intn,
		log:   log,
	}
}

// WithPicker replaces the index picker. pick(n) must return a value in [0, n).
func (s *RewardService) WithPicker(pick func(n int) int) *RewardService {
	s.pick = pick
	return s
}

// DrawReward draws one card for a user and adds it to their collection.
func (s *RewardService) DrawReward(userID uint64) (*RewardResult, error) {
	var result *RewardResult
	err := s.store.Transaction(func(tx *repository.Store) error {
		if _, err := tx.Users.FindByID(userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to find user: %w", err)
		}

		reward, err := s.draw(tx, userID)
		if err != nil {
			return err
		}
		result = reward
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(userID, result)
	return result, nil
}

// draw picks a card uniformly from the whole catalog and upserts the
// collection entry using the repositories of the surrounding transaction.
// Rarity, era and group do not weight the pick.
func (s *RewardService) draw(tx *repository.Store, userID uint64) (*RewardResult, error) {
	ids, err := tx.Cards.ListIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if len(ids) == 0 {
		return nil, ErrEmptyCatalog
	}

	cardID := ids[s.pick(len(ids))]

	card, err := tx.Cards.FindByID(cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load card %d: %w", cardID, err)
	}

	entry, err := tx.UserCards.Increment(userID, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to add card to collection: %w", err)
	}

	return &RewardResult{Card: *card, Quantity: entry.Quantity}, nil
}

// record runs after commit.
func (s *RewardService) record(userID uint64, result *RewardResult) {
	metrics.CardsDrawn.WithLabelValues(result.Card.Rarity).Inc()
	s.log.Info("card_drawn",
		zap.Uint64("user_id", userID),
		zap.Uint64("card_id", result.Card.ID),
		zap.String("rarity", result.Card.Rarity),
		zap.Int("quantity", result.Quantity),
	)
}

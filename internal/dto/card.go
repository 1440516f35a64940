package dto

import (
	"github.com/yukikurage/task-rewards-api/internal/models"
	"github.com/yukikurage/task-rewards-api/internal/services"
)

// CardDTO represents a catalog card. ImageURL is resolved through asset storage.
type CardDTO struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Rarity   string `json:"rarity"`
	Era      string `json:"era"`
	Group    string `json:"group"`
	ImageURL string `json:"image_url"`
}

type CollectionEntryDTO struct {
	Card     CardDTO `json:"card"`
	Quantity int     `json:"quantity"`
}

type CollectionResponse struct {
	Cards         []CollectionEntryDTO `json:"cards"`
	DistinctCards int                  `json:"distinct_cards"`
	TotalCards    int                  `json:"total_cards"`
	CatalogSize   int                  `json:"catalog_size"`
	ByRarity      map[string]int       `json:"by_rarity"`
}

// RewardDTO is the card drawn for a completed task
type RewardDTO struct {
	Card     CardDTO `json:"card"`
	Quantity int     `json:"quantity"`
}

type CompletionResponse struct {
	Task   TaskDTO   `json:"task"`
	Reward RewardDTO `json:"reward"`
}

// ToCardDTO converts a Card model, resolving the image reference with imageURL
func ToCardDTO(card models.Card, imageURL func(ref string) string) CardDTO {
	return CardDTO{
		ID:       card.ID,
		Name:     card.Name,
		Rarity:   card.Rarity,
		Era:      card.Era,
		Group:    card.Group,
		ImageURL: imageURL(card.ImageRef),
	}
}

func ToCardList(cards []models.Card, imageURL func(ref string) string) []CardDTO {
	items := make([]CardDTO, len(cards))
	for i, card := range cards {
		items[i] = ToCardDTO(card, imageURL)
	}
	return items
}

func ToCollectionResponse(entries []services.CollectionEntry, summary *services.CollectionSummary, imageURL func(ref string) string) CollectionResponse {
	items := make([]CollectionEntryDTO, len(entries))
	for i, entry := range entries {
		items[i] = CollectionEntryDTO{
			Card:     ToCardDTO(entry.Card, imageURL),
			Quantity: entry.Quantity,
		}
	}

	return CollectionResponse{
		Cards:         items,
		DistinctCards: summary.DistinctCards,
		TotalCards:    summary.TotalCards,
		CatalogSize:   summary.CatalogSize,
		ByRarity:      summary.ByRarity,
	}
}

func ToCompletionResponse(result *services.CompletionResult, imageURL func(ref string) string) CompletionResponse {
	return CompletionResponse{
		Task: ToTaskDTO(*result.Task),
		Reward: RewardDTO{
			Card:     ToCardDTO(result.Reward.Card, imageURL),
			Quantity: result.Reward.Quantity,
		},
	}
}

package deck

import (
	"context"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/logger"
)

func (s *Service) ListDecks(ctx context.Context, userID string) ([]domain.Deck, error) {
	return s.decks.ListByUser(ctx, userID)
}

// GetDeck returns the deck with its flashcards, served from cache when possible.
func (s *Service) GetDeck(ctx context.Context, id, userID string) (domain.Deck, error) {
	key := deckKey(userID, id)

	if s.cache != nil {
		var cached domain.Deck
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.WithCtx(ctx).Warn().Err(err).Str("key", key).Msg("deck cache get failed")
		} else if found {
			return cached, nil
		}
	}

	d, err := s.decks.GetByID(ctx, id, userID)
	if err != nil {
		return domain.Deck{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, d, s.cacheTTL); err != nil {
			logger.WithCtx(ctx).Warn().Err(err).Str("key", key).Msg("deck cache set failed")
		}
	}
	return d, nil
}

func (s *Service) CreateDeck(ctx context.Context, userID string, in DeckInput) (domain.Deck, error) {
	now := s.timestamp()
	return s.decks.Create(ctx, domain.Deck{
		ID:          s.newID(),
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// UpdateDeck replaces name and description.
func (s *Service) UpdateDeck(ctx context.Context, id, userID string, in DeckInput) (domain.Deck, error) {
	d, err := s.decks.Update(ctx, domain.Deck{
		ID:          id,
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		UpdatedAt:   s.timestamp(),
	})
	if err != nil {
		return domain.Deck{}, err
	}
	s.invalidate(ctx, userID, id)
	return d, nil
}

// DeleteDeck removes the deck and, through the foreign key, its flashcards.
func (s *Service) DeleteDeck(ctx context.Context, id, userID string) error {
	if err := s.decks.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.invalidate(ctx, userID, id)
	return nil
}

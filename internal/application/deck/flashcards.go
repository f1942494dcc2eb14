package deck

import (
	"context"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
)

// ListFlashcards returns an empty list when the deck is missing or foreign.
func (s *Service) ListFlashcards(ctx context.Context, deckID, userID string) ([]domain.Flashcard, error) {
	cards, err := s.cards.ListByDeck(ctx, deckID, userID)
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []domain.Flashcard{}
	}
	return cards, nil
}

func (s *Service) GetFlashcard(ctx context.Context, id, deckID, userID string) (domain.Flashcard, error) {
	return s.cards.GetByID(ctx, id, deckID, userID)
}

// CreateFlashcard fails with ErrDeckNotFound unless the deck belongs to userID.
func (s *Service) CreateFlashcard(ctx context.Context, deckID, userID string, in FlashcardInput) (domain.Flashcard, error) {
	if _, err := s.decks.GetByID(ctx, deckID, userID); err != nil {
		return domain.Flashcard{}, err
	}

	now := s.timestamp()
	f, err := s.cards.Create(ctx, domain.Flashcard{
		ID:        s.newID(),
		UserID:    userID,
		DeckID:    deckID,
		Front:     in.Front,
		Back:      in.Back,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return domain.Flashcard{}, err
	}
	s.invalidate(ctx, userID, deckID)
	return f, nil
}

// UpdateFlashcard replaces front and back. Notes change only when provided.
func (s *Service) UpdateFlashcard(ctx context.Context, id, deckID, userID string, in FlashcardInput) (domain.Flashcard, error) {
	f, err := s.cards.GetByID(ctx, id, deckID, userID)
	if err != nil {
		return domain.Flashcard{}, err
	}

	f.Front = in.Front
	f.Back = in.Back
	if in.Notes != nil {
		f.Notes = in.Notes
	}
	f.UpdatedAt = s.timestamp()

	updated, err := s.cards.Update(ctx, f)
	if err != nil {
		return domain.Flashcard{}, err
	}
	s.invalidate(ctx, userID, deckID)
	return updated, nil
}

func (s *Service) DeleteFlashcard(ctx context.Context, id, deckID, userID string) error {
	if err := s.cards.Delete(ctx, id, deckID, userID); err != nil {
		return err
	}
	s.invalidate(ctx, userID, deckID)
	return nil
}

package deck

import (
	"context"
	"time"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
)

// DeckRepo reads and writes decks. Every call is scoped to the owner;
// a deck owned by someone else is reported as domain.ErrDeckNotFound.
// ListByUser and GetByID load the deck's flashcards.
type DeckRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Deck, error)
	GetByID(ctx context.Context, id, userID string) (domain.Deck, error)
	Create(ctx context.Context, d domain.Deck) (domain.Deck, error)
	Update(ctx context.Context, d domain.Deck) (domain.Deck, error)
	Delete(ctx context.Context, id, userID string) error
}

type FlashcardRepo interface {
	ListByDeck(ctx context.Context, deckID, userID string) ([]domain.Flashcard, error)
	GetByID(ctx context.Context, id, deckID, userID string) (domain.Flashcard, error)
	Create(ctx context.Context, f domain.Flashcard) (domain.Flashcard, error)
	Update(ctx context.Context, f domain.Flashcard) (domain.Flashcard, error)
	Delete(ctx context.Context, id, deckID, userID string) error
}

// Cache is an optional JSON read-through cache.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type DeckInput struct {
	Name        string
	Description *string
}

type FlashcardInput struct {
	Front string
	Back  string
	Notes *string
}

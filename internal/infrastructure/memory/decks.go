package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
)

type deckData struct {
	mu    sync.RWMutex
	decks map[string]domain.Deck
	cards map[string]domain.Flashcard
}

// DeckRepo and FlashcardRepo share one store so deletes cascade.
type DeckRepo struct{ d *deckData }

type FlashcardRepo struct{ d *deckData }

func NewDeckRepos() (*DeckRepo, *FlashcardRepo) {
	d := &deckData{
		decks: make(map[string]domain.Deck),
		cards: make(map[string]domain.Flashcard),
	}
	return &DeckRepo{d: d}, &FlashcardRepo{d: d}
}

// cardsOf must be called with the lock held.
func (d *deckData) cardsOf(deckID string) []domain.Flashcard {
	out := []domain.Flashcard{}
	for _, c := range d.cards {
		if c.DeckID == deckID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (d *deckData) ownedDeck(id, userID string) (domain.Deck, bool) {
	dk, ok := d.decks[id]
	if !ok || !dk.OwnedBy(userID) {
		return domain.Deck{}, false
	}
	return dk, true
}

func (r *DeckRepo) ListByUser(ctx context.Context, userID string) ([]domain.Deck, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	out := []domain.Deck{}
	for _, dk := range r.d.decks {
		if dk.OwnedBy(userID) {
			dk.Flashcards = r.d.cardsOf(dk.ID)
			out = append(out, dk)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *DeckRepo) GetByID(ctx context.Context, id, userID string) (domain.Deck, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	dk, ok := r.d.ownedDeck(id, userID)
	if !ok {
		return domain.Deck{}, domain.ErrDeckNotFound()
	}
	dk.Flashcards = r.d.cardsOf(id)
	return dk, nil
}

func (r *DeckRepo) Create(ctx context.Context, dk domain.Deck) (domain.Deck, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	dk.Flashcards = nil
	r.d.decks[dk.ID] = dk
	return dk, nil
}

func (r *DeckRepo) Update(ctx context.Context, dk domain.Deck) (domain.Deck, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	cur, ok := r.d.ownedDeck(dk.ID, dk.UserID)
	if !ok {
		return domain.Deck{}, domain.ErrDeckNotFound()
	}
	cur.Name = dk.Name
	cur.Description = dk.Description
	cur.UpdatedAt = dk.UpdatedAt
	r.d.decks[cur.ID] = cur
	return cur, nil
}

func (r *DeckRepo) Delete(ctx context.Context, id, userID string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if _, ok := r.d.ownedDeck(id, userID); !ok {
		return domain.ErrDeckNotFound()
	}
	delete(r.d.decks, id)
	for cid, c := range r.d.cards {
		if c.DeckID == id {
			delete(r.d.cards, cid)
		}
	}
	return nil
}

func (r *FlashcardRepo) ListByDeck(ctx context.Context, deckID, userID string) ([]domain.Flashcard, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	if _, ok := r.d.ownedDeck(deckID, userID); !ok {
		return []domain.Flashcard{}, nil
	}
	return r.d.cardsOf(deckID), nil
}

func (r *FlashcardRepo) GetByID(ctx context.Context, id, deckID, userID string) (domain.Flashcard, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	c, ok := r.d.cards[id]
	if !ok || c.DeckID != deckID {
		return domain.Flashcard{}, domain.ErrFlashcardNotFound()
	}
	if _, owned := r.d.ownedDeck(deckID, userID); !owned {
		return domain.Flashcard{}, domain.ErrFlashcardNotFound()
	}
	return c, nil
}

func (r *FlashcardRepo) Create(ctx context.Context, c domain.Flashcard) (domain.Flashcard, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if _, ok := r.d.ownedDeck(c.DeckID, c.UserID); !ok {
		return domain.Flashcard{}, domain.ErrDeckNotFound()
	}
	r.d.cards[c.ID] = c
	return c, nil
}

func (r *FlashcardRepo) Update(ctx context.Context, c domain.Flashcard) (domain.Flashcard, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	cur, ok := r.d.cards[c.ID]
	if !ok || cur.DeckID != c.DeckID || cur.UserID != c.UserID {
		return domain.Flashcard{}, domain.ErrFlashcardNotFound()
	}
	cur.Front, cur.Back, cur.Notes, cur.UpdatedAt = c.Front, c.Back, c.Notes, c.UpdatedAt
	r.d.cards[cur.ID] = cur
	return cur, nil
}

func (r *FlashcardRepo) Delete(ctx context.Context, id, deckID, userID string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	c, ok := r.d.cards[id]
	if !ok || c.DeckID != deckID {
		return domain.ErrFlashcardNotFound()
	}
	if _, owned := r.d.ownedDeck(deckID, userID); !owned {
		return domain.ErrFlashcardNotFound()
	}
	delete(r.d.cards, id)
	return nil
}

package dto

import (
	"time"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/application/auth"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
)

// -------- Auth --------

// AuthResultView is returned by register and login.
type AuthResultView struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func NewAuthResultView(r auth.Result) AuthResultView {
	return AuthResultView{
		Success:   r.Success,
		Message:   r.Message,
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt,
	}
}

type RefreshView struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// MeView echoes the identity carried by the bearer token.
type MeView struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// -------- Decks --------

type FlashcardView struct {
	ID        string    `json:"id"`
	DeckID    string    `json:"deckId"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type DeckView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Flashcards  []FlashcardView `json:"flashcards"`
}

func NewFlashcardView(f domain.Flashcard) FlashcardView {
	return FlashcardView{
		ID:        f.ID,
		DeckID:    f.DeckID,
		Front:     f.Front,
		Back:      f.Back,
		Notes:     f.Notes,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func NewFlashcardViews(cards []domain.Flashcard) []FlashcardView {
	out := make([]FlashcardView, 0, len(cards))
	for _, c := range cards {
		out = append(out, NewFlashcardView(c))
	}
	return out
}

func NewDeckView(d domain.Deck) DeckView {
	return DeckView{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		Flashcards:  NewFlashcardViews(d.Flashcards),
	}
}

func NewDeckViews(decks []domain.Deck) []DeckView {
	out := make([]DeckView, 0, len(decks))
	for _, d := range decks {
		out = append(out, NewDeckView(d))
	}
	return out
}

// -------- Grammar --------

type GrammarView struct {
	ID           string    `json:"id"`
	GrammarSetID string    `json:"grammarSetId"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type GrammarSetView struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Grammars    []GrammarView `json:"grammars"`
}

func NewGrammarView(g domain.Grammar) GrammarView {
	return GrammarView{
		ID:           g.ID,
		GrammarSetID: g.GrammarSetID,
		Name:         g.Name,
		Description:  g.Description,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

func NewGrammarViews(gs []domain.Grammar) []GrammarView {
	out := make([]GrammarView, 0, len(gs))
	for _, g := range gs {
		out = append(out, NewGrammarView(g))
	}
	return out
}

func NewGrammarSetView(s domain.GrammarSet) GrammarSetView {
	return GrammarSetView{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Grammars:    NewGrammarViews(s.Grammars),
	}
}

func NewGrammarSetViews(sets []domain.GrammarSet) []GrammarSetView {
	out := make([]GrammarSetView, 0, len(sets))
	for _, s := range sets {
		out = append(out, NewGrammarSetView(s))
	}
	return out
}

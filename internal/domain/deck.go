package domain

import "time"

type Deck struct {
	ID          string
	UserID      string
	Name        string
	Description *string
	Flashcards  []Flashcard
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Flashcard struct {
	ID        string
	UserID    string
	DeckID    string
	Front     string
	Back      string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether userID owns the deck.
func (d Deck) OwnedBy(userID string) bool {
	return d.UserID != "" && d.UserID == userID
}

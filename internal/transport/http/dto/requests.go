package dto

// -------- Auth --------

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,notblank,email,max=320"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Token string `json:"token" validate:"required,notblank"`
}

// -------- Decks --------

type DeckRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type FlashcardRequest struct {
	Front string  `json:"front" validate:"required,notblank,max=2000"`
	Back  string  `json:"back" validate:"required,notblank,max=2000"`
	Notes *string `json:"notes" validate:"omitempty,max=4000"`
}

// -------- Grammar --------

// GrammarSetRequest and GrammarRequest share a shape but stay separate types
// so each route documents its own body.
type GrammarSetRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type GrammarRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=200"`
	Description *string `json:"description" validate:"omitempty,max=4000"`
}

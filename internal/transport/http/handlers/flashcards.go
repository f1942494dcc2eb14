package http_handlers

import (
	"net/http"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/application/deck"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/transport/http/dto"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/transport/http/response"
)

type FlashcardHandler struct {
	svc *deck.Service
}

func NewFlashcardHandler(svc *deck.Service) *FlashcardHandler {
	return &FlashcardHandler{svc: svc}
}

// scope resolves the caller and the deck id every flashcard route starts with.
func (h *FlashcardHandler) scope(r *http.Request) (userID, deckID string, err error) {
	if userID, err = currentUser(r); err != nil {
		return "", "", err
	}
	if deckID, err = pathID(r, ParamDeckID); err != nil {
		return "", "", err
	}
	return userID, deckID, nil
}

// List handles GET /decks/{deckId}/flashcards. A foreign deck yields an empty list.
func (h *FlashcardHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, deckID, err := h.scope(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	cards, err := h.svc.ListFlashcards(r.Context(), deckID, userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewFlashcardViews(cards))
}

// Get handles GET /decks/{deckId}/flashcards/{flashcardId}
func (h *FlashcardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, deckID, err := h.scope(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	id, err := pathID(r, ParamFlashcardID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	f, err := h.svc.GetFlashcard(r.Context(), id, deckID, userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewFlashcardView(f))
}

// Create handles POST /decks/{deckId}/flashcards
func (h *FlashcardHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, deckID, err := h.scope(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.FlashcardRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	f, err := h.svc.CreateFlashcard(r.Context(), deckID, userID, deck.FlashcardInput{
		Front: req.Front,
		Back:  req.Back,
		Notes: req.Notes,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.CreatedAt(w, "/decks/"+deckID+"/flashcards/"+f.ID, dto.NewFlashcardView(f))
}

// Update handles PATCH /decks/{deckId}/flashcards/{flashcardId}
func (h *FlashcardHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, deckID, err := h.scope(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	id, err := pathID(r, ParamFlashcardID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.FlashcardRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	f, err := h.svc.UpdateFlashcard(r.Context(), id, deckID, userID, deck.FlashcardInput{
		Front: req.Front,
		Back:  req.Back,
		Notes: req.Notes,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewFlashcardView(f))
}

// Delete handles DELETE /decks/{deckId}/flashcards/{flashcardId}
func (h *FlashcardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, deckID, err := h.scope(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	id, err := pathID(r, ParamFlashcardID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.DeleteFlashcard(r.Context(), id, deckID, userID); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}

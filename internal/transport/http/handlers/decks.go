package http_handlers

import (
	"net/http"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/application/deck"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/transport/http/dto"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/transport/http/response"
)

type DeckHandler struct {
	svc *deck.Service
}

func NewDeckHandler(svc *deck.Service) *DeckHandler {
	return &DeckHandler{svc: svc}
}

// List handles GET /decks
func (h *DeckHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	decks, err := h.svc.ListDecks(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewDeckViews(decks))
}

// Get handles GET /decks/{deckId}
func (h *DeckHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	id, err := pathID(r, ParamDeckID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	d, err := h.svc.GetDeck(r.Context(), id, userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewDeckView(d))
}

// Create handles POST /decks
func (h *DeckHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.DeckRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	d, err := h.svc.CreateDeck(r.Context(), userID, deck.DeckInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.CreatedAt(w, "/decks/"+d.ID, dto.NewDeckView(d))
}

// Update handles PATCH /decks/{deckId}. Name and description are replaced as a whole.
func (h *DeckHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	id, err := pathID(r, ParamDeckID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.DeckRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	d, err := h.svc.UpdateDeck(r.Context(), id, userID, deck.DeckInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewDeckView(d))
}

// Delete handles DELETE /decks/{deckId}
func (h *DeckHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	id, err := pathID(r, ParamDeckID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.DeleteDeck(r.Context(), id, userID); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}

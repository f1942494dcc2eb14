package http_handlers

import (
	"net/http"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/application/grammar"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/transport/http/dto"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/transport/http/response"
)

type GrammarSetHandler struct {
	svc *grammar.Service
}

func NewGrammarSetHandler(svc *grammar.Service) *GrammarSetHandler {
	return &GrammarSetHandler{svc: svc}
}

// List handles GET /grammarsets
func (h *GrammarSetHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	sets, err := h.svc.ListSets(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewGrammarSetViews(sets))
}

// Get handles GET /grammarsets/{setId}
func (h *GrammarSetHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	id, err := pathID(r, ParamGrammarSetID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	s, err := h.svc.GetSet(r.Context(), id, userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewGrammarSetView(s))
}

// Create handles POST /grammarsets
func (h *GrammarSetHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.GrammarSetRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	s, err := h.svc.CreateSet(r.Context(), userID, grammar.Input{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.CreatedAt(w, "/grammarsets/"+s.ID, dto.NewGrammarSetView(s))
}

// Update handles PATCH /grammarsets/{setId}
func (h *GrammarSetHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	id, err := pathID(r, ParamGrammarSetID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.GrammarSetRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	s, err := h.svc.UpdateSet(r.Context(), id, userID, grammar.Input{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewGrammarSetView(s))
}

// Delete handles DELETE /grammarsets/{setId}
func (h *GrammarSetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	id, err := pathID(r, ParamGrammarSetID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.DeleteSet(r.Context(), id, userID); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}

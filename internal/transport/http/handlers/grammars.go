package http_handlers

import (
	"net/http"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/application/grammar"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/transport/http/dto"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/transport/http/response"
)

type GrammarHandler struct {
	svc *grammar.Service
}

func NewGrammarHandler(svc *grammar.Service) *GrammarHandler {
	return &GrammarHandler{svc: svc}
}

func (h *GrammarHandler) scope(r *http.Request) (userID, setID string, err error) {
	if userID, err = currentUser(r); err != nil {
		return "", "", err
	}
	if setID, err = pathID(r, ParamGrammarSetID); err != nil {
		return "", "", err
	}
	return userID, setID, nil
}

// List handles GET /grammarsets/{setId}/grammars
func (h *GrammarHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, setID, err := h.scope(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	gs, err := h.svc.ListGrammars(r.Context(), setID, userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewGrammarViews(gs))
}

// Get handles GET /grammarsets/{setId}/grammars/{grammarId}
func (h *GrammarHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, setID, err := h.scope(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	id, err := pathID(r, ParamGrammarID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	g, err := h.svc.GetGrammar(r.Context(), id, setID, userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewGrammarView(g))
}

// Create handles POST /grammarsets/{setId}/grammars
func (h *GrammarHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, setID, err := h.scope(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.GrammarRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	g, err := h.svc.CreateGrammar(r.Context(), setID, userID, grammar.Input{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.CreatedAt(w, "/grammarsets/"+setID+"/grammars/"+g.ID, dto.NewGrammarView(g))
}

// Update handles PATCH /grammarsets/{setId}/grammars/{grammarId}
func (h *GrammarHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, setID, err := h.scope(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	id, err := pathID(r, ParamGrammarID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.GrammarRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	g, err := h.svc.UpdateGrammar(r.Context(), id, setID, userID, grammar.Input{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewGrammarView(g))
}

// Delete handles DELETE /grammarsets/{setId}/grammars/{grammarId}
func (h *GrammarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, setID, err := h.scope(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	id, err := pathID(r, ParamGrammarID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.DeleteGrammar(r.Context(), id, setID, userID); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}

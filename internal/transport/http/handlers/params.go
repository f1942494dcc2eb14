package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/transport/http/middleware"
)

// Route parameter names shared with the router.
const (
	ParamDeckID       = "deckId"
	ParamFlashcardID  = "flashcardId"
	ParamGrammarSetID = "setId"
	ParamGrammarID    = "grammarId"
)

// pathID reads a UUID route parameter and returns it in canonical form.
func pathID(r *http.Request, name string) (string, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return "", domain.ErrInvalidField(name, "must be a UUID")
	}
	return id.String(), nil
}

// currentUser returns the caller put on the context by the auth middleware.
func currentUser(r *http.Request) (string, error) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return "", domain.ErrTokenMissing()
	}
	return userID, nil
}

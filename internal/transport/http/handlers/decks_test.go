package http_handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/application/deck"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/infrastructure/memory"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/transport/http/dto"
)

const (
	owner    = "3f1b6c1e-0c55-4b0e-9f0e-6d7a2b1c0a01"
	stranger = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
	missing  = "00000000-0000-4000-8000-000000000000"
)

func newDeckHandlers() (*DeckHandler, *FlashcardHandler) {
	decks, cards := memory.NewDeckRepos()
	svc := deck.NewService(decks, cards)
	return NewDeckHandler(svc), NewFlashcardHandler(svc)
}

func deckRequest(t *testing.T, method, target, userID string, body any, params ...string) *http.Request {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, mustJSONBody(t, body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req = withURLParams(req, params...)
	return withUserCtx(req, userID, userID+"@example.com")
}

func createDeck(t *testing.T, h *DeckHandler, userID, name string) dto.DeckView {
	t.Helper()
	rr := httptest.NewRecorder()
	h.Create(rr, deckRequest(t, http.MethodPost, "/decks", userID, map[string]any{"name": name}))
	if rr.Code != http.StatusCreated {
		t.Fatalf("create deck: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var out dto.DeckView
	mustReadJSON(t, rr.Body, &out)
	return out
}

func TestDeckHandler_Lifecycle(t *testing.T) {
	t.Parallel()

	h, _ := newDeckHandlers()

	rr := httptest.NewRecorder()
	h.Create(rr, deckRequest(t, http.MethodPost, "/decks", owner, map[string]any{
		"name":        "Verbs",
		"description": "irregular",
	}))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var created dto.DeckView
	mustReadJSON(t, rr.Body, &created)
	if loc := rr.Header().Get("Location"); loc != "/decks/"+created.ID {
		t.Fatalf("unexpected Location %q", loc)
	}
	if created.Flashcards == nil || len(created.Flashcards) != 0 {
		t.Fatalf("expected empty flashcards, got %v", created.Flashcards)
	}

	rr = httptest.NewRecorder()
	h.Get(rr, deckRequest(t, http.MethodGet, "/decks/"+created.ID, owner, nil, ParamDeckID, created.ID))
	if rr.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.Update(rr, deckRequest(t, http.MethodPatch, "/decks/"+created.ID, owner,
		map[string]any{"name": "Nouns"}, ParamDeckID, created.ID))
	if rr.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var updated dto.DeckView
	mustReadJSON(t, rr.Body, &updated)
	if updated.Name != "Nouns" || updated.Description != nil {
		t.Fatalf("update should replace name and description: %+v", updated)
	}

	rr = httptest.NewRecorder()
	h.List(rr, deckRequest(t, http.MethodGet, "/decks", owner, nil))
	var list []dto.DeckView
	mustReadJSON(t, rr.Body, &list)
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("unexpected list: %+v", list)
	}

	rr = httptest.NewRecorder()
	h.Delete(rr, deckRequest(t, http.MethodDelete, "/decks/"+created.ID, owner, nil, ParamDeckID, created.ID))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.Get(rr, deckRequest(t, http.MethodGet, "/decks/"+created.ID, owner, nil, ParamDeckID, created.ID))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", rr.Code)
	}
}

func TestDeckHandler_OwnershipHidesDecks(t *testing.T) {
	t.Parallel()

	h, _ := newDeckHandlers()
	d := createDeck(t, h, owner, "Mine")

	rr := httptest.NewRecorder()
	h.Get(rr, deckRequest(t, http.MethodGet, "/decks/"+d.ID, stranger, nil, ParamDeckID, d.ID))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if code := mustErrorCode(t, rr.Body); code != "deck_not_found" {
		t.Fatalf("unexpected code %s", code)
	}

	rr = httptest.NewRecorder()
	h.Delete(rr, deckRequest(t, http.MethodDelete, "/decks/"+d.ID, stranger, nil, ParamDeckID, d.ID))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("foreign delete: expected 404, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.List(rr, deckRequest(t, http.MethodGet, "/decks", stranger, nil))
	if body := strings.TrimSpace(rr.Body.String()); body != `{"data":[]}` {
		t.Fatalf("expected empty list, got %s", body)
	}
}

func TestDeckHandler_BadInput(t *testing.T) {
	t.Parallel()

	h, _ := newDeckHandlers()

	rr := httptest.NewRecorder()
	h.Get(rr, deckRequest(t, http.MethodGet, "/decks/abc", owner, nil, ParamDeckID, "abc"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("non-uuid id: expected 400, got %d", rr.Code)
	}
	if code := mustErrorCode(t, rr.Body); code != "invalid_field" {
		t.Fatalf("unexpected code %s", code)
	}

	rr = httptest.NewRecorder()
	h.Create(rr, deckRequest(t, http.MethodPost, "/decks", owner, map[string]any{"name": "   "}))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("blank name: expected 400, got %d", rr.Code)
	}
	if code := mustErrorCode(t, rr.Body); code != "missing_field" {
		t.Fatalf("unexpected code %s", code)
	}

	rr = httptest.NewRecorder()
	h.Create(rr, deckRequest(t, http.MethodPost, "/decks", owner, map[string]any{"name": strings.Repeat("x", 201)}))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("long name: expected 400, got %d", rr.Code)
	}
}

func TestDeckHandler_NoCaller(t *testing.T) {
	t.Parallel()

	h, _ := newDeckHandlers()
	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/decks", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestFlashcardHandler_Lifecycle(t *testing.T) {
	t.Parallel()

	decks, cards := newDeckHandlers()
	d := createDeck(t, decks, owner, "Kana")
	base := "/decks/" + d.ID + "/flashcards"

	rr := httptest.NewRecorder()
	cards.Create(rr, deckRequest(t, http.MethodPost, base, owner,
		map[string]any{"front": "あ", "back": "a", "notes": "vowel"}, ParamDeckID, d.ID))
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var card dto.FlashcardView
	mustReadJSON(t, rr.Body, &card)
	if card.DeckID != d.ID {
		t.Fatalf("card not attached to deck: %+v", card)
	}
	if loc := rr.Header().Get("Location"); loc != base+"/"+card.ID {
		t.Fatalf("unexpected Location %q", loc)
	}

	rr = httptest.NewRecorder()
	cards.Update(rr, deckRequest(t, http.MethodPatch, base+"/"+card.ID, owner,
		map[string]any{"front": "い", "back": "i"}, ParamDeckID, d.ID, ParamFlashcardID, card.ID))
	if rr.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var updated dto.FlashcardView
	mustReadJSON(t, rr.Body, &updated)
	if updated.Front != "い" || updated.Notes == nil || *updated.Notes != "vowel" {
		t.Fatalf("notes should survive an update without notes: %+v", updated)
	}

	rr = httptest.NewRecorder()
	decks.Get(rr, deckRequest(t, http.MethodGet, "/decks/"+d.ID, owner, nil, ParamDeckID, d.ID))
	var withCards dto.DeckView
	mustReadJSON(t, rr.Body, &withCards)
	if len(withCards.Flashcards) != 1 {
		t.Fatalf("expected deck to carry 1 flashcard, got %d", len(withCards.Flashcards))
	}

	rr = httptest.NewRecorder()
	cards.Delete(rr, deckRequest(t, http.MethodDelete, base+"/"+card.ID, owner, nil,
		ParamDeckID, d.ID, ParamFlashcardID, card.ID))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	cards.Get(rr, deckRequest(t, http.MethodGet, base+"/"+card.ID, owner, nil,
		ParamDeckID, d.ID, ParamFlashcardID, card.ID))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", rr.Code)
	}
}

func TestFlashcardHandler_ForeignDeck(t *testing.T) {
	t.Parallel()

	decks, cards := newDeckHandlers()
	d := createDeck(t, decks, owner, "Private")

	rr := httptest.NewRecorder()
	cards.Create(rr, deckRequest(t, http.MethodPost, "/decks/"+d.ID+"/flashcards", stranger,
		map[string]any{"front": "f", "back": "b"}, ParamDeckID, d.ID))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if code := mustErrorCode(t, rr.Body); code != "deck_not_found" {
		t.Fatalf("unexpected code %s", code)
	}

	rr = httptest.NewRecorder()
	cards.List(rr, deckRequest(t, http.MethodGet, "/decks/"+missing+"/flashcards", owner, nil, ParamDeckID, missing))
	if rr.Code != http.StatusOK {
		t.Fatalf("list on missing deck: expected 200, got %d", rr.Code)
	}
	var list []dto.FlashcardView
	mustReadJSON(t, rr.Body, &list)
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}

func TestFlashcardHandler_BadIDs(t *testing.T) {
	t.Parallel()

	decks, cards := newDeckHandlers()
	d := createDeck(t, decks, owner, "Ids")

	rr := httptest.NewRecorder()
	cards.Get(rr, deckRequest(t, http.MethodGet, "/decks/"+d.ID+"/flashcards/zzz", owner, nil,
		ParamDeckID, d.ID, ParamFlashcardID, "zzz"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	cards.Create(rr, deckRequest(t, http.MethodPost, "/decks/"+d.ID+"/flashcards", owner,
		map[string]any{"front": "only front"}, ParamDeckID, d.ID))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing back: expected 400, got %d", rr.Code)
	}
	if code := mustErrorCode(t, rr.Body); code != "missing_field" {
		t.Fatalf("unexpected code %s", code)
	}
}

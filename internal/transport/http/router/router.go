package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/transport/http/middleware"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/transport/http/response"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

// ResourceHandler is the CRUD surface shared by decks, flashcards,
// grammar sets and grammars.
type ResourceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health      HealthHandler
	Auth        AuthHandler
	Decks       ResourceHandler
	Flashcards  ResourceHandler
	GrammarSets ResourceHandler
	Grammars    ResourceHandler

	AuthMW      func(http.Handler) http.Handler
	RequestIDMW func(http.Handler) http.Handler

	// Metrics serves /metrics; promhttp.Handler() when nil.
	Metrics http.Handler
}

func (d Deps) validate() error {
	switch {
	case d.Health == nil:
		return fmt.Errorf("nil Health handler")
	case d.Auth == nil:
		return fmt.Errorf("nil Auth handler")
	case d.Decks == nil:
		return fmt.Errorf("nil Decks handler")
	case d.Flashcards == nil:
		return fmt.Errorf("nil Flashcards handler")
	case d.GrammarSets == nil:
		return fmt.Errorf("nil GrammarSets handler")
	case d.Grammars == nil:
		return fmt.Errorf("nil Grammars handler")
	case d.AuthMW == nil:
		return fmt.Errorf("nil Auth middleware")
	case d.RequestIDMW == nil:
		return fmt.Errorf("nil RequestID middleware")
	}
	return nil
}

func New(deps Deps) (http.Handler, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}

	r := chi.NewRouter()
	r.Use(deps.RequestIDMW)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS())
	r.Use(middleware.AccessLog)
	r.Use(middleware.Metrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.WriteError(w, r, domain.New(domain.KindNotFound, "route_not_found", "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.WriteErrorStatus(w, r, http.StatusMethodNotAllowed,
			domain.New(domain.KindValidation, "method_not_allowed", "method not allowed"))
	})

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", metrics)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", deps.Auth.Register)
		r.Post("/login", deps.Auth.Login)
		r.Post("/refresh", deps.Auth.Refresh)
		r.With(deps.AuthMW).Get("/", deps.Auth.Me)
	})

	r.Group(func(r chi.Router) {
		r.Use(deps.AuthMW)

		r.Route("/decks", func(r chi.Router) {
			mount(r, deps.Decks)
			r.Route("/{deckId}", func(r chi.Router) {
				item(r, deps.Decks)
				r.Route("/flashcards", func(r chi.Router) {
					mount(r, deps.Flashcards)
					r.Route("/{flashcardId}", func(r chi.Router) {
						item(r, deps.Flashcards)
					})
				})
			})
		})

		r.Route("/grammarsets", func(r chi.Router) {
			mount(r, deps.GrammarSets)
			r.Route("/{setId}", func(r chi.Router) {
				item(r, deps.GrammarSets)
				r.Route("/grammars", func(r chi.Router) {
					mount(r, deps.Grammars)
					r.Route("/{grammarId}", func(r chi.Router) {
						item(r, deps.Grammars)
					})
				})
			})
		})
	})

	return r, nil
}

// mount registers the collection routes.
func mount(r chi.Router, h ResourceHandler) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
}

// item registers the single-resource routes.
func item(r chi.Router, h ResourceHandler) {
	r.Get("/", h.Get)
	r.Patch("/", h.Update)
	r.Delete("/", h.Delete)
}

package http_handlers

import (
	"net/http"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/application/auth"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/logger"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/transport/http/dto"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/transport/http/middleware"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/transport/http/response"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		middleware.RegistrationsTotal.WithLabelValues(middleware.OutcomeLabel("invalid_json")).Inc()
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		middleware.RegistrationsTotal.WithLabelValues(middleware.OutcomeLabel(codeOf(err))).Inc()
		response.WriteError(w, r, err)
		return
	}

	res := h.svc.Register(r.Context(), req.Email, req.Password)
	middleware.RegistrationsTotal.WithLabelValues(middleware.OutcomeLabel(res.Code())).Inc()
	if !res.Success {
		response.WriteErrorStatus(w, r, failureStatus(res.Err, http.StatusBadRequest), res.Err)
		return
	}

	response.OK(w, dto.NewAuthResultView(res))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		middleware.LoginAttemptsTotal.WithLabelValues(middleware.OutcomeLabel("invalid_json")).Inc()
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		middleware.LoginAttemptsTotal.WithLabelValues(middleware.OutcomeLabel(codeOf(err))).Inc()
		response.WriteError(w, r, err)
		return
	}

	res := h.svc.Login(r.Context(), req.Email, req.Password)
	middleware.LoginAttemptsTotal.WithLabelValues(middleware.OutcomeLabel(res.Code())).Inc()
	if !res.Success {
		response.WriteErrorStatus(w, r, failureStatus(res.Err, http.StatusBadRequest), res.Err)
		return
	}

	response.OK(w, dto.NewAuthResultView(res))
}

// Refresh handles POST /auth/refresh. Expired tokens are accepted as long as
// the signature holds; everything else is a 401.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res := h.svc.RefreshToken(r.Context(), req.Token)
	middleware.TokenRefreshTotal.WithLabelValues(middleware.OutcomeLabel(res.Code())).Inc()
	if !res.Success {
		logger.WithCtx(r.Context()).Warn().Str("code", res.Code()).Msg("token_refresh_rejected")
		response.WriteErrorStatus(w, r, failureStatus(res.Err, http.StatusUnauthorized), res.Err)
		return
	}

	view := dto.RefreshView{Token: res.Token}
	if res.ExpiresAt != nil {
		view.ExpiresAt = *res.ExpiresAt
	}
	response.OK(w, view)
}

// Me handles GET /auth.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.MeView{
		UserID: userID,
		Email:  middleware.EmailFromContext(r.Context()),
	})
}

// failureStatus keeps dependency outages out of the 4xx range.
func failureStatus(err *domain.Error, fallback int) int {
	if err == nil {
		return http.StatusInternalServerError
	}
	switch err.Kind {
	case domain.KindInfrastructure:
		return http.StatusServiceUnavailable
	case domain.KindInternal:
		return http.StatusInternalServerError
	default:
		return fallback
	}
}

func codeOf(err error) string {
	if de, ok := domain.As(err); ok {
		return de.Code
	}
	return "internal_error"
}

package middleware

import (
	"net/http"

	"github.com/google/uuid"

	appCtx "github.com/PavelNikolaichev/LangLearn.Backend/internal/pkg/context"
)

const HeaderXRequestID = "X-Request-Id"

// longest client-supplied id we echo back
const maxRequestIDLen = 128

// RequestID propagates X-Request-Id, generating one when absent or oversized.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(HeaderXRequestID)
		if reqID == "" || len(reqID) > maxRequestIDLen {
			reqID = uuid.NewString()
		}

		w.Header().Set(HeaderXRequestID, reqID)
		next.ServeHTTP(w, r.WithContext(appCtx.WithRequestID(r.Context(), reqID)))
	})
}

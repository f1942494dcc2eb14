package response

import (
	"net/http"

	appCtx "github.com/PavelNikolaichev/LangLearn.Backend/internal/pkg/context"
)

// RequestIDFromContext returns the id set by the RequestID middleware, or "".
func RequestIDFromContext(r *http.Request) string {
	return appCtx.GetRequestID(r.Context())
}

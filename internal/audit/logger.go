package audit

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	ctxpkg "github.com/PavelNikolaichev/LangLearn.Backend/internal/pkg/context"
)

// Logger writes security-relevant account events as structured log lines
// tagged audit=true.
type Logger struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Logger {
	return &Logger{
		log: log.With().Bool("audit", true).Logger(),
	}
}

// Record logs one event. Failed actions are logged at warn level.
// An "email" field is masked before it is written.
func (l *Logger) Record(ctx context.Context, action string, fields map[string]string) {
	evt := l.log.Info()
	if strings.HasSuffix(action, "_failed") {
		evt = l.log.Warn()
	}
	evt = evt.Str("action", action)
	if rid := ctxpkg.GetRequestID(ctx); rid != "" {
		evt = evt.Str("request_id", rid)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := fields[k]
		if k == "email" {
			v = maskEmail(v)
		}
		evt = evt.Str(k, v)
	}
	evt.Msg(action)
}

// maskEmail keeps the first two characters of the local part and the domain.
func maskEmail(email string) string {
	if len(email) < 5 {
		return "***"
	}
	at := strings.IndexByte(email, '@')
	if at < 0 {
		return email[:2] + "***"
	}
	if at < 2 {
		return email[:1] + "***" + email[at:]
	}
	return email[:2] + "***" + email[at:]
}

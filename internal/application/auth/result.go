package auth

import (
	"time"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
)

const (
	MsgRegistered = "Registration successful."
	MsgLoggedIn   = "Login successful."
	MsgRefreshed  = "Token refreshed successfully."
)

// Result is the outcome of every auth operation. Failures are values, not errors:
// Err carries the stable code and Message its client-safe text.
type Result struct {
	Success   bool
	Message   string
	Token     string
	ExpiresAt *time.Time
	Err       *domain.Error
}

// Code returns the failure code, or "" on success.
func (r Result) Code() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Code
}

func succeeded(msg string) Result {
	return Result{Success: true, Message: msg}
}

func withToken(msg, token string, exp time.Time) Result {
	return Result{Success: true, Message: msg, Token: token, ExpiresAt: &exp}
}

func failed(err *domain.Error) Result {
	return Result{Success: false, Message: err.Message, Err: err}
}

package auth

import (
	"context"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
)

// Login checks credentials and issues a token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) Result {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, domain.CodeUserNotFound) {
			s.burnCompare(password)
			s.audit(ctx, "user.login_failed", map[string]string{"email": email, "reason": "unknown_email"})
			return failed(domain.ErrInvalidCredentials())
		}
		return s.unavailable(ctx, "login.lookup", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		s.audit(ctx, "user.login_failed", map[string]string{"email": email, "reason": "bad_password"})
		return failed(domain.ErrInvalidCredentials())
	}

	token, exp, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return s.unavailable(ctx, "login.issue", err)
	}

	s.audit(ctx, "user.login", map[string]string{"user_id": u.ID})
	return withToken(MsgLoggedIn, token, exp)
}

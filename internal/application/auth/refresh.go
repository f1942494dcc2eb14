package auth

import (
	"context"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
)

// RefreshToken reissues a token from a previously issued one, expired or not.
// The subject must still exist.
func (s *Service) RefreshToken(ctx context.Context, oldToken string) Result {
	claims, err := s.parseForRefresh(oldToken)
	if err != nil {
		return failed(domain.ErrTokenInvalid())
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if domain.Is(err, domain.CodeUserNotFound) {
			return failed(domain.ErrUserNotFound())
		}
		return s.unavailable(ctx, "refresh.lookup", err)
	}

	token, exp, err := s.tokens.Reissue(u.ID, u.Email, claims.ExpiresAt)
	if err != nil {
		return s.unavailable(ctx, "refresh.issue", err)
	}

	s.audit(ctx, "token.refresh", map[string]string{"user_id": u.ID})
	return withToken(MsgRefreshed, token, exp)
}

func (s *Service) parseForRefresh(token string) (claims TokenClaims, err error) {
	defer func() {
		if r := recover(); r != nil {
			claims, err = TokenClaims{}, domain.ErrTokenInvalid()
		}
	}()
	return s.tokens.ParseForRefresh(token)
}

package auth

import (
	"context"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/logger"
)

// Register creates an account. It never signs the user in.
func (s *Service) Register(ctx context.Context, email, password string) Result {
	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return failed(domain.ErrDuplicateAccount())
	case !domain.Is(err, domain.CodeUserNotFound):
		return s.unavailable(ctx, "register.lookup", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return s.unavailable(ctx, "register.hash", err)
	}

	created, err := s.users.Create(ctx, domain.User{
		ID:           s.newID(),
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		// lost a race with a concurrent registration; the unique index decided
		if domain.Is(err, domain.CodeEmailExists) {
			return failed(domain.ErrDuplicateAccount())
		}
		return s.unavailable(ctx, "register.create", err)
	}

	s.audit(ctx, "user.register", map[string]string{"user_id": created.ID})

	if s.pub != nil {
		evt := UserRegisteredEvent{UserID: created.ID, Email: created.Email, OccurredAt: s.now().UTC()}
		if err := s.pub.PublishUserRegistered(ctx, evt); err != nil {
			logger.WithCtx(ctx).Warn().Err(err).Str("user_id", created.ID).Msg("publish user.registered failed")
		}
	}

	return succeeded(MsgRegistered)
}

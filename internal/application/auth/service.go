package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/logger"
)

// dummyPassword is hashed once and compared against when the email is unknown,
// so both login failure paths pay for a bcrypt comparison.
const dummyPassword = "langlearn-unknown-account"

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	tokens TokenIssuer
	pub    EventPublisher

	now   func() time.Time
	newID func() string
	audit func(ctx context.Context, action string, fields map[string]string)

	dummyOnce sync.Once
	dummyHash string
}

func NewService(users UserRepo, hasher PasswordHasher, tokens TokenIssuer, pub EventPublisher) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		pub:    pub,
		now:    time.Now,
		newID:  uuid.NewString,
		audit:  func(context.Context, string, map[string]string) {},
	}
}

// WithAudit installs a sink for security-relevant events such as logins.
func (s *Service) WithAudit(fn func(ctx context.Context, action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Service) WithIDGenerator(fn func() string) *Service {
	if fn != nil {
		s.newID = fn
	}
	return s
}

// unavailable turns an unexpected dependency failure into a Result.
// Domain errors keep their kind (validation stays 400); anything else is internal.
func (s *Service) unavailable(ctx context.Context, op string, err error) Result {
	de, ok := domain.As(err)
	if !ok {
		de = domain.ErrInternal(err)
	}
	logger.WithCtx(ctx).Error().
		Err(err).
		Str("op", op).
		Str("code", de.Code).
		Msg("auth_dependency_failed")
	return failed(de)
}

func (s *Service) burnCompare(password string) {
	s.dummyOnce.Do(func() {
		if h, err := s.hasher.Hash(dummyPassword); err == nil {
			s.dummyHash = h
		}
	})
	if s.dummyHash != "" {
		_ = s.hasher.Compare(s.dummyHash, password)
	}
}

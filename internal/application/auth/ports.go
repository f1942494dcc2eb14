package auth

import (
	"context"
	"time"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
)

/*
UserRepo
--------
Credential store port. A missing user is reported as domain.ErrUserNotFound;
a duplicate email on Create as domain.ErrEmailAlreadyExists.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

// TokenClaims is what the service and the bearer middleware read back from a token.
type TokenClaims struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

/*
TokenIssuer
-----------
Signs tokens and reads them back for refresh, ignoring expiry. Reissue must
return an expiry strictly later than prevExpiry.
*/
type TokenIssuer interface {
	Issue(userID, email string) (token string, expiresAt time.Time, err error)
	Reissue(userID, email string, prevExpiry time.Time) (token string, expiresAt time.Time, err error)
	ParseForRefresh(token string) (TokenClaims, error)
}

/*
EventPublisher
--------------
Publishes account events. Failures never fail the request.
*/
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error
}

type UserRegisteredEvent struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

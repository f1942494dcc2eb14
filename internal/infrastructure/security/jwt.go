package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/application/auth"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
)

// MinKeyLen is the shortest HS256 secret accepted, in bytes.
const MinKeyLen = 32

// ClockSkew is the leeway applied when validating token lifetime on protected routes.
const ClockSkew = 5 * time.Minute

// Claim names written into every token. The identifier and the email are each
// written twice so that readers expecting either naming convention can find them.
const (
	ClaimSubject  = "sub"
	ClaimNameID   = "nameid"
	ClaimEmail    = "email"
	ClaimEmailURI = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"
)

// claimAliases lists, per logical field, the claim names to read in priority order.
var claimAliases = map[string][]string{
	"user_id": {ClaimNameID, ClaimSubject},
	"email":   {ClaimEmail, ClaimEmailURI},
}

type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if len([]byte(secret)) < MinKeyLen {
		return nil, fmt.Errorf("jwt key must be at least %d bytes", MinKeyLen)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}
	return &JWTIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock replaces the time source used for issuance and validation.
func (s *JWTIssuer) WithClock(now func() time.Time) *JWTIssuer {
	if now != nil {
		s.now = now
	}
	return s
}

// Issue signs a token for the user. The returned expiry is exactly the exp claim.
func (s *JWTIssuer) Issue(userID, email string) (string, time.Time, error) {
	return s.issueAt(userID, email, s.now().UTC())
}

// Reissue is Issue for refresh: the new exp is strictly after prevExpiry even
// when the refresh lands in the same second as the original issuance, since
// exp has whole-second precision.
func (s *JWTIssuer) Reissue(userID, email string, prevExpiry time.Time) (string, time.Time, error) {
	at := s.now().UTC()
	if floor := prevExpiry.UTC().Add(time.Second - s.ttl); at.Before(floor) {
		at = floor
	}
	return s.issueAt(userID, email, at)
}

func (s *JWTIssuer) issueAt(userID, email string, at time.Time) (string, time.Time, error) {
	iat := jwt.NewNumericDate(at)
	exp := jwt.NewNumericDate(at.Add(s.ttl))

	claims := jwt.MapClaims{
		ClaimSubject:  userID,
		ClaimNameID:   userID,
		ClaimEmail:    email,
		ClaimEmailURI: email,
		"iat":         iat,
		"exp":         exp,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, domain.ErrTokenSignFailed(err)
	}
	return signed, exp.Time, nil
}

// Verify validates signature, algorithm and lifetime (with ClockSkew leeway).
func (s *JWTIssuer) Verify(token string) (auth.TokenClaims, error) {
	parsed, err := jwt.Parse(token, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(ClockSkew),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.TokenClaims{}, domain.ErrTokenExpired()
		}
		return auth.TokenClaims{}, domain.ErrTokenInvalid()
	}
	if !parsed.Valid {
		return auth.TokenClaims{}, domain.ErrTokenInvalid()
	}
	return readClaims(parsed)
}

// ParseForRefresh checks signature and structure only; expiry is ignored.
// Any failure, including a panic inside the parser, becomes ErrTokenInvalid.
func (s *JWTIssuer) ParseForRefresh(token string) (claims auth.TokenClaims, err error) {
	defer func() {
		if r := recover(); r != nil {
			claims, err = auth.TokenClaims{}, domain.ErrTokenInvalid()
		}
	}()

	parsed, perr := jwt.Parse(token, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if perr != nil || !parsed.Valid {
		return auth.TokenClaims{}, domain.ErrTokenInvalid()
	}
	return readClaims(parsed)
}

func (s *JWTIssuer) keyFunc(t *jwt.Token) (any, error) {
	// prevent alg confusion
	if t.Method != jwt.SigningMethodHS256 {
		return nil, domain.ErrTokenInvalid()
	}
	return s.secret, nil
}

func readClaims(t *jwt.Token) (auth.TokenClaims, error) {
	mc, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return auth.TokenClaims{}, domain.ErrTokenInvalid()
	}

	userID := lookupClaim(mc, "user_id")
	if _, err := uuid.Parse(userID); err != nil {
		return auth.TokenClaims{}, domain.ErrTokenInvalid()
	}

	out := auth.TokenClaims{
		UserID: userID,
		Email:  lookupClaim(mc, "email"),
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

func lookupClaim(mc jwt.MapClaims, field string) string {
	for _, name := range claimAliases[field] {
		if v, ok := mc[name].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

//go:build integration

package cases

import (
	"time"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
)

func userFixture(id, email string) domain.User {
	return domain.User{ID: id, Email: email, PasswordHash: "$2a$04$fixturefixturefixturefixturefixturefixturefixture12"}
}

func deckFixture(id, userID string) domain.Deck {
	now := time.Now().UTC()
	return domain.Deck{ID: id, UserID: userID, Name: "fixture", CreatedAt: now, UpdatedAt: now}
}

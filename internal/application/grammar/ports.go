package grammar

import (
	"context"
	"time"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
)

// SetRepo persists grammar sets, scoped to their owner.
// ListByUser and GetByID load the set's grammars.
type SetRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.GrammarSet, error)
	GetByID(ctx context.Context, id, userID string) (domain.GrammarSet, error)
	Create(ctx context.Context, s domain.GrammarSet) (domain.GrammarSet, error)
	Update(ctx context.Context, s domain.GrammarSet) (domain.GrammarSet, error)
	Delete(ctx context.Context, id, userID string) error
}

type GrammarRepo interface {
	ListBySet(ctx context.Context, setID, userID string) ([]domain.Grammar, error)
	GetByID(ctx context.Context, id, setID, userID string) (domain.Grammar, error)
	Create(ctx context.Context, g domain.Grammar) (domain.Grammar, error)
	Update(ctx context.Context, g domain.Grammar) (domain.Grammar, error)
	Delete(ctx context.Context, id, setID, userID string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Input is shared by sets and grammars: both carry a name and an optional description.
type Input struct {
	Name        string
	Description *string
}

package deck

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/logger"
)

type Service struct {
	decks DeckRepo
	cards FlashcardRepo

	cache    Cache
	cacheTTL time.Duration

	now   func() time.Time
	newID func() string
}

func NewService(decks DeckRepo, cards FlashcardRepo) *Service {
	return &Service{
		decks: decks,
		cards: cards,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// WithCache enables read-through caching of single decks.
func (s *Service) WithCache(c Cache, ttl time.Duration) *Service {
	s.cache = c
	s.cacheTTL = ttl
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

func deckKey(userID, id string) string {
	return fmt.Sprintf("deck:%s:%s", userID, id)
}

// invalidate drops the cached aggregate. Cache errors are logged, never returned.
func (s *Service) invalidate(ctx context.Context, userID, deckID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, deckKey(userID, deckID)); err != nil {
		logger.WithCtx(ctx).Warn().Err(err).Str("deck_id", deckID).Msg("deck cache invalidation failed")
	}
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC()
}

package grammar

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/logger"
)

type Service struct {
	sets     SetRepo
	grammars GrammarRepo

	cache    Cache
	cacheTTL time.Duration

	now   func() time.Time
	newID func() string
}

func NewService(sets SetRepo, grammars GrammarRepo) *Service {
	return &Service{
		sets:     sets,
		grammars: grammars,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

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

func setKey(userID, id string) string {
	return "grammarset:" + userID + ":" + id
}

func (s *Service) invalidate(ctx context.Context, userID, setID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, setKey(userID, setID)); err != nil {
		logger.WithCtx(ctx).Warn().Err(err).Str("grammar_set_id", setID).Msg("grammar set cache invalidation failed")
	}
}

// ---- grammar sets ----

func (s *Service) ListSets(ctx context.Context, userID string) ([]domain.GrammarSet, error) {
	return s.sets.ListByUser(ctx, userID)
}

func (s *Service) GetSet(ctx context.Context, id, userID string) (domain.GrammarSet, error) {
	key := setKey(userID, id)

	if s.cache != nil {
		var cached domain.GrammarSet
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.WithCtx(ctx).Warn().Err(err).Str("key", key).Msg("grammar set cache get failed")
		} else if found {
			return cached, nil
		}
	}

	gs, err := s.sets.GetByID(ctx, id, userID)
	if err != nil {
		return domain.GrammarSet{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, gs, s.cacheTTL); err != nil {
			logger.WithCtx(ctx).Warn().Err(err).Str("key", key).Msg("grammar set cache set failed")
		}
	}
	return gs, nil
}

func (s *Service) CreateSet(ctx context.Context, userID string, in Input) (domain.GrammarSet, error) {
	now := s.now().UTC()
	return s.sets.Create(ctx, domain.GrammarSet{
		ID:          s.newID(),
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *Service) UpdateSet(ctx context.Context, id, userID string, in Input) (domain.GrammarSet, error) {
	gs, err := s.sets.Update(ctx, domain.GrammarSet{
		ID:          id,
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		UpdatedAt:   s.now().UTC(),
	})
	if err != nil {
		return domain.GrammarSet{}, err
	}
	s.invalidate(ctx, userID, id)
	return gs, nil
}

func (s *Service) DeleteSet(ctx context.Context, id, userID string) error {
	if err := s.sets.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.invalidate(ctx, userID, id)
	return nil
}

// ---- grammars ----

// ListGrammars returns an empty list when the set is missing or foreign.
func (s *Service) ListGrammars(ctx context.Context, setID, userID string) ([]domain.Grammar, error) {
	gs, err := s.grammars.ListBySet(ctx, setID, userID)
	if err != nil {
		return nil, err
	}
	if gs == nil {
		gs = []domain.Grammar{}
	}
	return gs, nil
}

func (s *Service) GetGrammar(ctx context.Context, id, setID, userID string) (domain.Grammar, error) {
	return s.grammars.GetByID(ctx, id, setID, userID)
}

func (s *Service) CreateGrammar(ctx context.Context, setID, userID string, in Input) (domain.Grammar, error) {
	if _, err := s.sets.GetByID(ctx, setID, userID); err != nil {
		return domain.Grammar{}, err
	}

	now := s.now().UTC()
	g, err := s.grammars.Create(ctx, domain.Grammar{
		ID:           s.newID(),
		UserID:       userID,
		GrammarSetID: setID,
		Name:         in.Name,
		Description:  in.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return domain.Grammar{}, err
	}
	s.invalidate(ctx, userID, setID)
	return g, nil
}

// UpdateGrammar replaces both name and description.
func (s *Service) UpdateGrammar(ctx context.Context, id, setID, userID string, in Input) (domain.Grammar, error) {
	g, err := s.grammars.Update(ctx, domain.Grammar{
		ID:           id,
		UserID:       userID,
		GrammarSetID: setID,
		Name:         in.Name,
		Description:  in.Description,
		UpdatedAt:    s.now().UTC(),
	})
	if err != nil {
		return domain.Grammar{}, err
	}
	s.invalidate(ctx, userID, setID)
	return g, nil
}

func (s *Service) DeleteGrammar(ctx context.Context, id, setID, userID string) error {
	if err := s.grammars.Delete(ctx, id, setID, userID); err != nil {
		return err
	}
	s.invalidate(ctx, userID, setID)
	return nil
}

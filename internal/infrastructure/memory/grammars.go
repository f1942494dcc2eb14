package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
)

type grammarData struct {
	mu       sync.RWMutex
	sets     map[string]domain.GrammarSet
	grammars map[string]domain.Grammar
}

type GrammarSetRepo struct{ d *grammarData }

type GrammarRepo struct{ d *grammarData }

func NewGrammarRepos() (*GrammarSetRepo, *GrammarRepo) {
	d := &grammarData{
		sets:     make(map[string]domain.GrammarSet),
		grammars: make(map[string]domain.Grammar),
	}
	return &GrammarSetRepo{d: d}, &GrammarRepo{d: d}
}

func (d *grammarData) grammarsOf(setID string) []domain.Grammar {
	out := []domain.Grammar{}
	for _, g := range d.grammars {
		if g.GrammarSetID == setID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (d *grammarData) ownedSet(id, userID string) (domain.GrammarSet, bool) {
	s, ok := d.sets[id]
	if !ok || !s.OwnedBy(userID) {
		return domain.GrammarSet{}, false
	}
	return s, true
}

func (r *GrammarSetRepo) ListByUser(ctx context.Context, userID string) ([]domain.GrammarSet, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	out := []domain.GrammarSet{}
	for _, s := range r.d.sets {
		if s.OwnedBy(userID) {
			s.Grammars = r.d.grammarsOf(s.ID)
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *GrammarSetRepo) GetByID(ctx context.Context, id, userID string) (domain.GrammarSet, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	s, ok := r.d.ownedSet(id, userID)
	if !ok {
		return domain.GrammarSet{}, domain.ErrGrammarSetNotFound()
	}
	s.Grammars = r.d.grammarsOf(id)
	return s, nil
}

func (r *GrammarSetRepo) Create(ctx context.Context, s domain.GrammarSet) (domain.GrammarSet, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	s.Grammars = nil
	r.d.sets[s.ID] = s
	return s, nil
}

func (r *GrammarSetRepo) Update(ctx context.Context, s domain.GrammarSet) (domain.GrammarSet, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	cur, ok := r.d.ownedSet(s.ID, s.UserID)
	if !ok {
		return domain.GrammarSet{}, domain.ErrGrammarSetNotFound()
	}
	cur.Name, cur.Description, cur.UpdatedAt = s.Name, s.Description, s.UpdatedAt
	r.d.sets[cur.ID] = cur
	return cur, nil
}

func (r *GrammarSetRepo) Delete(ctx context.Context, id, userID string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if _, ok := r.d.ownedSet(id, userID); !ok {
		return domain.ErrGrammarSetNotFound()
	}
	delete(r.d.sets, id)
	for gid, g := range r.d.grammars {
		if g.GrammarSetID == id {
			delete(r.d.grammars, gid)
		}
	}
	return nil
}

func (r *GrammarRepo) ListBySet(ctx context.Context, setID, userID string) ([]domain.Grammar, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	if _, ok := r.d.ownedSet(setID, userID); !ok {
		return []domain.Grammar{}, nil
	}
	return r.d.grammarsOf(setID), nil
}

func (r *GrammarRepo) GetByID(ctx context.Context, id, setID, userID string) (domain.Grammar, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	g, ok := r.d.grammars[id]
	if !ok || g.GrammarSetID != setID || g.UserID != userID {
		return domain.Grammar{}, domain.ErrGrammarNotFound()
	}
	return g, nil
}

func (r *GrammarRepo) Create(ctx context.Context, g domain.Grammar) (domain.Grammar, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if _, ok := r.d.ownedSet(g.GrammarSetID, g.UserID); !ok {
		return domain.Grammar{}, domain.ErrGrammarSetNotFound()
	}
	r.d.grammars[g.ID] = g
	return g, nil
}

func (r *GrammarRepo) Update(ctx context.Context, g domain.Grammar) (domain.Grammar, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	cur, ok := r.d.grammars[g.ID]
	if !ok || cur.GrammarSetID != g.GrammarSetID || cur.UserID != g.UserID {
		return domain.Grammar{}, domain.ErrGrammarNotFound()
	}
	cur.Name, cur.Description, cur.UpdatedAt = g.Name, g.Description, g.UpdatedAt
	r.d.grammars[cur.ID] = cur
	return cur, nil
}

func (r *GrammarRepo) Delete(ctx context.Context, id, setID, userID string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	g, ok := r.d.grammars[id]
	if !ok || g.GrammarSetID != setID || g.UserID != userID {
		return domain.ErrGrammarNotFound()
	}
	delete(r.d.grammars, id)
	return nil
}

package postgres

import (
	"context"
	"database/sql"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
)

type GrammarSetRepo struct {
	db *sql.DB
}

func NewGrammarSetRepo(db *sql.DB) *GrammarSetRepo {
	return &GrammarSetRepo{db: db}
}

const grammarSetColumns = `id, user_id, name, description, created_at, updated_at`

func scanGrammarSet(row rowScanner) (domain.GrammarSet, error) {
	var (
		s    domain.GrammarSet
		desc sql.NullString
	)
	if err := row.Scan(&s.ID, &s.UserID, &s.Name, &desc, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return domain.GrammarSet{}, err
	}
	s.Description = strPtr(desc)
	s.Grammars = []domain.Grammar{}
	return s, nil
}

func (r *GrammarSetRepo) ListByUser(ctx context.Context, userID string) ([]domain.GrammarSet, error) {
	const q = `
SELECT ` + grammarSetColumns + `
FROM grammar_sets
WHERE user_id = $1
ORDER BY created_at, id;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		if pgCode(err) == pgInvalidTextRepr {
			return []domain.GrammarSet{}, nil
		}
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	sets := []domain.GrammarSet{}
	index := map[string]int{}
	for rows.Next() {
		s, err := scanGrammarSet(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		index[s.ID] = len(sets)
		sets = append(sets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	if len(sets) == 0 {
		return sets, nil
	}

	const gq = `
SELECT ` + grammarColumns + `
FROM grammars
WHERE user_id = $1
ORDER BY created_at, id;
`
	grammars, err := queryGrammars(ctx, r.db, gq, userID)
	if err != nil {
		return nil, err
	}
	for _, g := range grammars {
		if i, ok := index[g.GrammarSetID]; ok {
			sets[i].Grammars = append(sets[i].Grammars, g)
		}
	}
	return sets, nil
}

func (r *GrammarSetRepo) GetByID(ctx context.Context, id, userID string) (domain.GrammarSet, error) {
	const q = `
SELECT ` + grammarSetColumns + `
FROM grammar_sets
WHERE id = $1 AND user_id = $2;
`
	s, err := scanGrammarSet(r.db.QueryRowContext(ctx, q, id, userID))
	if err != nil {
		if notFoundLike(err) {
			return domain.GrammarSet{}, domain.ErrGrammarSetNotFound()
		}
		return domain.GrammarSet{}, domain.ErrDBUnavailable(err)
	}

	const gq = `
SELECT ` + grammarColumns + `
FROM grammars
WHERE grammar_set_id = $1
ORDER BY created_at, id;
`
	grammars, err := queryGrammars(ctx, r.db, gq, id)
	if err != nil {
		return domain.GrammarSet{}, err
	}
	s.Grammars = grammars
	return s, nil
}

func (r *GrammarSetRepo) Create(ctx context.Context, s domain.GrammarSet) (domain.GrammarSet, error) {
	const q = `
INSERT INTO grammar_sets (id, user_id, name, description, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + grammarSetColumns + `;
`
	created, err := scanGrammarSet(r.db.QueryRowContext(ctx, q,
		s.ID, s.UserID, s.Name, s.Description, s.CreatedAt, s.UpdatedAt,
	))
	if err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return domain.GrammarSet{}, domain.ErrTokenInvalid()
		}
		return domain.GrammarSet{}, domain.ErrDBUnavailable(err)
	}
	return created, nil
}

func (r *GrammarSetRepo) Update(ctx context.Context, s domain.GrammarSet) (domain.GrammarSet, error) {
	const q = `
UPDATE grammar_sets
SET name = $3, description = $4, updated_at = $5
WHERE id = $1 AND user_id = $2
RETURNING ` + grammarSetColumns + `;
`
	updated, err := scanGrammarSet(r.db.QueryRowContext(ctx, q,
		s.ID, s.UserID, s.Name, s.Description, s.UpdatedAt,
	))
	if err != nil {
		if notFoundLike(err) {
			return domain.GrammarSet{}, domain.ErrGrammarSetNotFound()
		}
		return domain.GrammarSet{}, domain.ErrDBUnavailable(err)
	}
	return updated, nil
}

func (r *GrammarSetRepo) Delete(ctx context.Context, id, userID string) error {
	const q = `DELETE FROM grammar_sets WHERE id = $1 AND user_id = $2;`

	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		if pgCode(err) == pgInvalidTextRepr {
			return domain.ErrGrammarSetNotFound()
		}
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrGrammarSetNotFound()
	}
	return nil
}

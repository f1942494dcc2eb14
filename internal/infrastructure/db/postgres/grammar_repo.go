package postgres

import (
	"context"
	"database/sql"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
)

// GrammarRepo checks ownership on the grammar row itself.
type GrammarRepo struct {
	db *sql.DB
}

func NewGrammarRepo(db *sql.DB) *GrammarRepo {
	return &GrammarRepo{db: db}
}

const grammarColumns = `id, user_id, grammar_set_id, name, description, created_at, updated_at`

func scanGrammar(row rowScanner) (domain.Grammar, error) {
	var (
		g    domain.Grammar
		desc sql.NullString
	)
	if err := row.Scan(&g.ID, &g.UserID, &g.GrammarSetID, &g.Name, &desc, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return domain.Grammar{}, err
	}
	g.Description = strPtr(desc)
	return g, nil
}

func queryGrammars(ctx context.Context, db *sql.DB, q string, args ...any) ([]domain.Grammar, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		if pgCode(err) == pgInvalidTextRepr {
			return []domain.Grammar{}, nil
		}
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []domain.Grammar{}
	for rows.Next() {
		g, err := scanGrammar(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *GrammarRepo) ListBySet(ctx context.Context, setID, userID string) ([]domain.Grammar, error) {
	const q = `
SELECT g.id, g.user_id, g.grammar_set_id, g.name, g.description, g.created_at, g.updated_at
FROM grammars g
JOIN grammar_sets s ON s.id = g.grammar_set_id
WHERE g.grammar_set_id = $1 AND s.user_id = $2
ORDER BY g.created_at, g.id;
`
	return queryGrammars(ctx, r.db, q, setID, userID)
}

func (r *GrammarRepo) GetByID(ctx context.Context, id, setID, userID string) (domain.Grammar, error) {
	const q = `
SELECT ` + grammarColumns + `
FROM grammars
WHERE id = $1 AND grammar_set_id = $2 AND user_id = $3;
`
	g, err := scanGrammar(r.db.QueryRowContext(ctx, q, id, setID, userID))
	if err != nil {
		if notFoundLike(err) {
			return domain.Grammar{}, domain.ErrGrammarNotFound()
		}
		return domain.Grammar{}, domain.ErrDBUnavailable(err)
	}
	return g, nil
}

func (r *GrammarRepo) Create(ctx context.Context, g domain.Grammar) (domain.Grammar, error) {
	const q = `
INSERT INTO grammars (id, user_id, grammar_set_id, name, description, created_at, updated_at)
SELECT $1::uuid, $2::uuid, $3::uuid, $4::text, $5::text, $6::timestamptz, $7::timestamptz
WHERE EXISTS (SELECT 1 FROM grammar_sets WHERE id = $3 AND user_id = $2)
RETURNING ` + grammarColumns + `;
`
	created, err := scanGrammar(r.db.QueryRowContext(ctx, q,
		g.ID, g.UserID, g.GrammarSetID, g.Name, g.Description, g.CreatedAt, g.UpdatedAt,
	))
	if err != nil {
		if notFoundLike(err) || pgCode(err) == pgForeignKeyViolation {
			return domain.Grammar{}, domain.ErrGrammarSetNotFound()
		}
		return domain.Grammar{}, domain.ErrDBUnavailable(err)
	}
	return created, nil
}

// Update replaces both name and description.
func (r *GrammarRepo) Update(ctx context.Context, g domain.Grammar) (domain.Grammar, error) {
	const q = `
UPDATE grammars
SET name = $4, description = $5, updated_at = $6
WHERE id = $1 AND grammar_set_id = $2 AND user_id = $3
RETURNING ` + grammarColumns + `;
`
	updated, err := scanGrammar(r.db.QueryRowContext(ctx, q,
		g.ID, g.GrammarSetID, g.UserID, g.Name, g.Description, g.UpdatedAt,
	))
	if err != nil {
		if notFoundLike(err) {
			return domain.Grammar{}, domain.ErrGrammarNotFound()
		}
		return domain.Grammar{}, domain.ErrDBUnavailable(err)
	}
	return updated, nil
}

func (r *GrammarRepo) Delete(ctx context.Context, id, setID, userID string) error {
	const q = `DELETE FROM grammars WHERE id = $1 AND grammar_set_id = $2 AND user_id = $3;`

	res, err := r.db.ExecContext(ctx, q, id, setID, userID)
	if err != nil {
		if pgCode(err) == pgInvalidTextRepr {
			return domain.ErrGrammarNotFound()
		}
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrGrammarNotFound()
	}
	return nil
}

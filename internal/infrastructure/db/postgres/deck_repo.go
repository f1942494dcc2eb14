package postgres

import (
	"context"
	"database/sql"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
)

// DeckRepo scopes every statement to the owning user.
type DeckRepo struct {
	db *sql.DB
}

func NewDeckRepo(db *sql.DB) *DeckRepo {
	return &DeckRepo{db: db}
}

const deckColumns = `id, user_id, name, description, created_at, updated_at`

func scanDeck(row rowScanner) (domain.Deck, error) {
	var (
		d    domain.Deck
		desc sql.NullString
	)
	if err := row.Scan(&d.ID, &d.UserID, &d.Name, &desc, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return domain.Deck{}, err
	}
	d.Description = strPtr(desc)
	d.Flashcards = []domain.Flashcard{}
	return d, nil
}

func (r *DeckRepo) ListByUser(ctx context.Context, userID string) ([]domain.Deck, error) {
	const q = `
SELECT ` + deckColumns + `
FROM decks
WHERE user_id = $1
ORDER BY created_at, id;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		if pgCode(err) == pgInvalidTextRepr {
			return []domain.Deck{}, nil
		}
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	decks := []domain.Deck{}
	index := map[string]int{}
	for rows.Next() {
		d, err := scanDeck(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		index[d.ID] = len(decks)
		decks = append(decks, d)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	if len(decks) == 0 {
		return decks, nil
	}

	const cq = `
SELECT f.id, f.user_id, f.deck_id, f.front, f.back, f.notes, f.created_at, f.updated_at
FROM flashcards f
JOIN decks d ON d.id = f.deck_id
WHERE d.user_id = $1
ORDER BY f.created_at, f.id;
`
	cards, err := queryFlashcards(ctx, r.db, cq, userID)
	if err != nil {
		return nil, err
	}
	for _, c := range cards {
		if i, ok := index[c.DeckID]; ok {
			decks[i].Flashcards = append(decks[i].Flashcards, c)
		}
	}
	return decks, nil
}

func (r *DeckRepo) GetByID(ctx context.Context, id, userID string) (domain.Deck, error) {
	const q = `
SELECT ` + deckColumns + `
FROM decks
WHERE id = $1 AND user_id = $2;
`
	d, err := scanDeck(r.db.QueryRowContext(ctx, q, id, userID))
	if err != nil {
		if notFoundLike(err) {
			return domain.Deck{}, domain.ErrDeckNotFound()
		}
		return domain.Deck{}, domain.ErrDBUnavailable(err)
	}

	const cq = `
SELECT ` + flashcardColumns + `
FROM flashcards
WHERE deck_id = $1
ORDER BY created_at, id;
`
	cards, err := queryFlashcards(ctx, r.db, cq, id)
	if err != nil {
		return domain.Deck{}, err
	}
	d.Flashcards = cards
	return d, nil
}

func (r *DeckRepo) Create(ctx context.Context, d domain.Deck) (domain.Deck, error) {
	const q = `
INSERT INTO decks (id, user_id, name, description, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + deckColumns + `;
`
	created, err := scanDeck(r.db.QueryRowContext(ctx, q,
		d.ID, d.UserID, d.Name, d.Description, d.CreatedAt, d.UpdatedAt,
	))
	if err != nil {
		// owner row gone: the caller's token outlived the account
		if pgCode(err) == pgForeignKeyViolation {
			return domain.Deck{}, domain.ErrTokenInvalid()
		}
		return domain.Deck{}, domain.ErrDBUnavailable(err)
	}
	return created, nil
}

// Update replaces name and description. The returned deck carries no flashcards.
func (r *DeckRepo) Update(ctx context.Context, d domain.Deck) (domain.Deck, error) {
	const q = `
UPDATE decks
SET name = $3, description = $4, updated_at = $5
WHERE id = $1 AND user_id = $2
RETURNING ` + deckColumns + `;
`
	updated, err := scanDeck(r.db.QueryRowContext(ctx, q,
		d.ID, d.UserID, d.Name, d.Description, d.UpdatedAt,
	))
	if err != nil {
		if notFoundLike(err) {
			return domain.Deck{}, domain.ErrDeckNotFound()
		}
		return domain.Deck{}, domain.ErrDBUnavailable(err)
	}
	return updated, nil
}

// Delete removes the deck; flashcards go with it via ON DELETE CASCADE.
func (r *DeckRepo) Delete(ctx context.Context, id, userID string) error {
	const q = `DELETE FROM decks WHERE id = $1 AND user_id = $2;`

	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		if pgCode(err) == pgInvalidTextRepr {
			return domain.ErrDeckNotFound()
		}
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrDeckNotFound()
	}
	return nil
}

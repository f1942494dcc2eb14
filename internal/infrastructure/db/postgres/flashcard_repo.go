package postgres

import (
	"context"
	"database/sql"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
)

// FlashcardRepo checks ownership through the parent deck's user_id.
type FlashcardRepo struct {
	db *sql.DB
}

func NewFlashcardRepo(db *sql.DB) *FlashcardRepo {
	return &FlashcardRepo{db: db}
}

const flashcardColumns = `id, user_id, deck_id, front, back, notes, created_at, updated_at`

func scanFlashcard(row rowScanner) (domain.Flashcard, error) {
	var (
		f     domain.Flashcard
		notes sql.NullString
	)
	if err := row.Scan(&f.ID, &f.UserID, &f.DeckID, &f.Front, &f.Back, &notes, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return domain.Flashcard{}, err
	}
	f.Notes = strPtr(notes)
	return f, nil
}

func queryFlashcards(ctx context.Context, db *sql.DB, q string, args ...any) ([]domain.Flashcard, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		if pgCode(err) == pgInvalidTextRepr {
			return []domain.Flashcard{}, nil
		}
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []domain.Flashcard{}
	for rows.Next() {
		f, err := scanFlashcard(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

// ListByDeck yields an empty slice when the deck is missing or foreign.
func (r *FlashcardRepo) ListByDeck(ctx context.Context, deckID, userID string) ([]domain.Flashcard, error) {
	const q = `
SELECT f.id, f.user_id, f.deck_id, f.front, f.back, f.notes, f.created_at, f.updated_at
FROM flashcards f
JOIN decks d ON d.id = f.deck_id
WHERE f.deck_id = $1 AND d.user_id = $2
ORDER BY f.created_at, f.id;
`
	return queryFlashcards(ctx, r.db, q, deckID, userID)
}

func (r *FlashcardRepo) GetByID(ctx context.Context, id, deckID, userID string) (domain.Flashcard, error) {
	const q = `
SELECT f.id, f.user_id, f.deck_id, f.front, f.back, f.notes, f.created_at, f.updated_at
FROM flashcards f
JOIN decks d ON d.id = f.deck_id
WHERE f.id = $1 AND f.deck_id = $2 AND d.user_id = $3;
`
	f, err := scanFlashcard(r.db.QueryRowContext(ctx, q, id, deckID, userID))
	if err != nil {
		if notFoundLike(err) {
			return domain.Flashcard{}, domain.ErrFlashcardNotFound()
		}
		return domain.Flashcard{}, domain.ErrDBUnavailable(err)
	}
	return f, nil
}

// Create inserts only when the deck belongs to f.UserID.
func (r *FlashcardRepo) Create(ctx context.Context, f domain.Flashcard) (domain.Flashcard, error) {
	const q = `
INSERT INTO flashcards (id, user_id, deck_id, front, back, notes, created_at, updated_at)
SELECT $1::uuid, $2::uuid, $3::uuid, $4::text, $5::text, $6::text, $7::timestamptz, $8::timestamptz
WHERE EXISTS (SELECT 1 FROM decks WHERE id = $3 AND user_id = $2)
RETURNING ` + flashcardColumns + `;
`
	created, err := scanFlashcard(r.db.QueryRowContext(ctx, q,
		f.ID, f.UserID, f.DeckID, f.Front, f.Back, f.Notes, f.CreatedAt, f.UpdatedAt,
	))
	if err != nil {
		if notFoundLike(err) || pgCode(err) == pgForeignKeyViolation {
			return domain.Flashcard{}, domain.ErrDeckNotFound()
		}
		return domain.Flashcard{}, domain.ErrDBUnavailable(err)
	}
	return created, nil
}

func (r *FlashcardRepo) Update(ctx context.Context, f domain.Flashcard) (domain.Flashcard, error) {
	const q = `
UPDATE flashcards AS f
SET front = $4, back = $5, notes = $6, updated_at = $7
FROM decks AS d
WHERE f.id = $1 AND f.deck_id = $2 AND d.id = f.deck_id AND d.user_id = $3
RETURNING f.id, f.user_id, f.deck_id, f.front, f.back, f.notes, f.created_at, f.updated_at;
`
	updated, err := scanFlashcard(r.db.QueryRowContext(ctx, q,
		f.ID, f.DeckID, f.UserID, f.Front, f.Back, f.Notes, f.UpdatedAt,
	))
	if err != nil {
		if notFoundLike(err) {
			return domain.Flashcard{}, domain.ErrFlashcardNotFound()
		}
		return domain.Flashcard{}, domain.ErrDBUnavailable(err)
	}
	return updated, nil
}

func (r *FlashcardRepo) Delete(ctx context.Context, id, deckID, userID string) error {
	const q = `
DELETE FROM flashcards AS f
USING decks AS d
WHERE f.id = $1 AND f.deck_id = $2 AND d.id = f.deck_id AND d.user_id = $3;
`
	res, err := r.db.ExecContext(ctx, q, id, deckID, userID)
	if err != nil {
		if pgCode(err) == pgInvalidTextRepr {
			return domain.ErrFlashcardNotFound()
		}
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrFlashcardNotFound()
	}
	return nil
}

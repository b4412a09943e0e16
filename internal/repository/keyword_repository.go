package repository

import (
	"context"
	"errors"
	"widgetdesk/internal/entities"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type KeywordRepository struct {
	db *pgxpool.Pool
}

func NewKeywordRepository(db *pgxpool.Pool) *KeywordRepository {
	return &KeywordRepository{db: db}
}

const keywordColumns = `id, user_id, keywords, response, priority, is_active, created_at, updated_at`

func scanKeyword(row pgx.Row) (*entities.KeywordResponse, error) {
	var k entities.KeywordResponse
	err := row.Scan(&k.ID, &k.UserID, &k.Keywords, &k.Response, &k.Priority,
		&k.IsActive, &k.CreatedAt, &k.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, mapPgError(err)
	}
	return &k, nil
}

// ListByOwner returns responses ordered by priority descending; equal
// priorities keep insertion order via the created_at/id tie-break.
func (r *KeywordRepository) ListByOwner(ctx context.Context, userID string, activeOnly bool) ([]entities.KeywordResponse, error) {
	query := "SELECT " + keywordColumns + " FROM keyword_responses WHERE user_id = $1"
	if activeOnly {
		query += " AND is_active = TRUE"
	}
	query += " ORDER BY priority DESC, created_at ASC, id ASC"

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	responses := []entities.KeywordResponse{}
	for rows.Next() {
		var k entities.KeywordResponse
		if err := rows.Scan(&k.ID, &k.UserID, &k.Keywords, &k.Response, &k.Priority,
			&k.IsActive, &k.CreatedAt, &k.UpdatedAt); err != nil {
			return nil, err
		}
		responses = append(responses, k)
	}
	return responses, rows.Err()
}

func (r *KeywordRepository) Insert(ctx context.Context, k *entities.KeywordResponse) (*entities.KeywordResponse, error) {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO keyword_responses (id, user_id, keywords, response, priority, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+keywordColumns,
		k.ID, k.UserID, k.Keywords, k.Response, k.Priority, k.IsActive)
	return scanKeyword(row)
}

// Update changes only the columns supplied in upd; nil fields keep their
// stored value. The row must belong to userID.
func (r *KeywordRepository) Update(ctx context.Context, userID string, upd *entities.KeywordResponseUpdate) (*entities.KeywordResponse, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE keyword_responses SET
			keywords   = COALESCE($3, keywords),
			response   = COALESCE($4, response),
			priority   = COALESCE($5, priority),
			is_active  = COALESCE($6, is_active),
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+keywordColumns,
		upd.ID, userID, upd.Keywords, upd.Response, upd.Priority, upd.IsActive)
	return scanKeyword(row)
}

// Delete reports whether a row belonging to userID was actually removed.
func (r *KeywordRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM keyword_responses WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return false, mapPgError(err)
	}
	return tag.RowsAffected() > 0, nil
}

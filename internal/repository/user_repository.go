package repository

import (
	"context"
	"errors"
	"widgetdesk/internal/entities"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, role, telegram_chat_id, created_at`

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.TelegramChatID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, mapPgError(err)
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entities.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := r.db.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, role, telegram_chat_id) VALUES ($1, $2, $3, $4, $5)",
		u.ID, u.Email, u.PasswordHash, u.Role, u.TelegramChatID)
	return mapPgError(err)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return scanUser(row)
}

// Exists is used by the public widget endpoint to validate an owner id before
// fanning out the settings and keyword lookups.
func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, mapPgError(err)
	}
	return exists, nil
}

package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound      = errors.New("repository: not found")
	ErrAlreadyExists = errors.New("repository: already exists")
	ErrInvalidInput  = errors.New("repository: invalid input")
)

// mapPgError translates Postgres error codes into sentinel errors so callers
// can branch without importing pgconn.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 - unique violation
		if pgErr.Code == "23505" {
			return ErrAlreadyExists
		}
	}
	return err
}

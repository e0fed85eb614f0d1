package repository

import (
	"errors"
	"fmt"

	"github.com/aircondor/reservations/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// translate maps store errors into the domain taxonomy so no pgx error
// crosses the repository boundary. Unique violations become Conflict,
// missing rows become NotFound, everything else is treated as
// transient and safe to retry because a failed statement leaves no
// partial state.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %v: %w", op, err, domain.ErrTransient)
}

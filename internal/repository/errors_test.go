package repository

import (
	"errors"
	"testing"

	"github.com/aircondor/reservations/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate("op", nil))

	err := translate("op", pgx.ErrNoRows)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = translate("op", &pgconn.PgError{Code: "23505", ConstraintName: "tickets_flight_id_seat_id_key"})
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Contains(t, err.Error(), "tickets_flight_id_seat_id_key")

	err = translate("op", errors.New("connection refused"))
	assert.True(t, errors.Is(err, domain.ErrTransient))
}

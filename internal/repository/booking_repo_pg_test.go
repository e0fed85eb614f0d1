package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewBookingRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewBookingRepository(pool)
	assert.NotNil(t, repo)
}

func TestNewCatalogRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewCatalogRepository(pool)
	assert.NotNil(t, repo)
}

func TestNewTicketRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewTicketRepository(pool)
	assert.NotNil(t, repo)
}

func TestNewReportRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewReportRepository(pool)
	assert.NotNil(t, repo)
}

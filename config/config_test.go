package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	data := []byte(`
http:
  address: ":8080"
database:
  host: localhost
  port: 5432
  user: aircondor
  password: secret
  name: reservations
  ssl_mode: disable
redis:
  addr: localhost:6379
kafka:
  brokers: ["localhost:9092"]
  reservation_topic: reservation_events
  notifications_topic: notifications
  group_id: notifications-worker
reservation:
  seat_hold_ttl_seconds: 60
  seat_map_cache_ttl_seconds: 30
worker:
  seat_map_refresh_minutes: 5
`)

	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, "host=localhost port=5432 user=aircondor password=secret dbname=reservations sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 60, cfg.Reservation.SeatHoldTTLSeconds)
	assert.Equal(t, 5, cfg.Worker.SeatMapRefreshMinutes)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

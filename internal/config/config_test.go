package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 18, cfg.Venue.CancelCutoffHour)
	assert.Equal(t, 5*time.Second, cfg.Venue.AutoSweepInterval)
	assert.Empty(t, cfg.Redis.Addr, "redis is opt-in")
	assert.Empty(t, cfg.Queue.AMQPURL, "amqp is opt-in")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VENUE_SERVER_PORT", "9090")
	t.Setenv("VENUE_VENUE_CANCEL_CUTOFF_HOUR", "20")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 20, cfg.Venue.CancelCutoffHour)
}

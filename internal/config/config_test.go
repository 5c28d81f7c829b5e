package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()

	require.NoError(t, err)
	require.NotNil(t, c, "Load must not return nil")

	assert.Equal(t, c.Bind, "0.0.0.0:8080")
	assert.Equal(t, c.DBPath, "data/chotta.db")
	assert.Equal(t, c.JWTSecret, "dev-only-change-me")
	assert.Equal(t, c.RoomTTL, 14*24*time.Hour)
	assert.Equal(t, c.RatesBaseURL, "https://api.frankfurter.app")
	assert.Equal(t, c.RatesRefresh, 12*time.Hour)
	assert.Equal(t, c.RatesCurrencies, []string{"EUR", "USD", "GBP", "CHF"})
	assert.Equal(t, c.LogLevel, "info")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BIND", ":9999")
	t.Setenv("ROOM_TTL_DAYS", "30")
	t.Setenv("RATES_CURRENCIES", " eur , jpy ")

	c, err := Load()

	require.NoError(t, err)
	assert.Equal(t, c.Bind, ":9999")
	assert.Equal(t, c.RoomTTL, 30*24*time.Hour)
	assert.Equal(t, c.RatesCurrencies, []string{"EUR", "JPY"})
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("ROOM_TTL_DAYS", "zero")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("ROOM_TTL_DAYS", "-3")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("ROOM_TTL_DAYS", "14")
	t.Setenv("RATES_CURRENCIES", " , ")
	_, err = Load()
	require.Error(t, err)
}

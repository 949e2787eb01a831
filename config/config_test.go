package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "")
	t.Setenv("STOREFRONT_STORAGE", "")
	t.Setenv("STOREFRONT_LOGOUT_DELAY", "")

	cfg := Load()

	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
	assert.Equal(t, "file", cfg.Storage)
	assert.Equal(t, time.Second, cfg.LogoutDelay)
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "https://shop.example.com")
	t.Setenv("STOREFRONT_STORAGE", "redis")
	t.Setenv("STOREFRONT_REQUEST_TIMEOUT", "15s")

	cfg := Load()

	assert.Equal(t, "https://shop.example.com", cfg.APIURL)
	assert.Equal(t, "redis", cfg.Storage)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("STOREFRONT_LOGOUT_DELAY", "soon")

	cfg := Load()

	assert.Equal(t, time.Second, cfg.LogoutDelay)
}

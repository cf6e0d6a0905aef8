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

	assert.Equal(t, "catalogue-api", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 5*time.Second, cfg.Peers.MetadataTimeout)
	assert.Equal(t, 10*time.Second, cfg.Peers.UploadTimeout)
	assert.NotEmpty(t, cfg.Peers.Inventory.BaseURL)
	assert.NotEmpty(t, cfg.Peers.Media.BaseURL)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CATALOGUE_PEERS_INVENTORY_URL", "http://inventory.internal:9000")
	t.Setenv("CATALOGUE_DATABASE_DBNAME", "catalogue_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://inventory.internal:9000", cfg.Peers.Inventory.BaseURL)
	assert.Equal(t, "catalogue_test", cfg.Database.DBName)
}

func TestLoad_RejectsMalformedPeerURL(t *testing.T) {
	t.Setenv("CATALOGUE_PEERS_AUTH_URL", "not a url")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth peer base URL")
}

func TestLoad_RejectsPeerURLWithoutSchemeOrHost(t *testing.T) {
	t.Setenv("CATALOGUE_PEERS_REVIEWS_URL", "/just/a/path")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reviews peer base URL")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "app",
		Password: "secret",
		DBName:   "catalogue",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=catalogue sslmode=disable", cfg.DSN())
	assert.Equal(t, "postgres://app:secret@db:5432/catalogue?sslmode=disable", cfg.URL())
}

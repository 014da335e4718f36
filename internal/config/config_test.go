package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir()) // no config file present
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Server.Address)
	require.Equal(t, "http://localhost:3000", cfg.Server.ClientOrigin)
	require.Equal(t, "sqlite", cfg.Storage.Backend)
	require.Equal(t, "allball.db", cfg.Storage.SQLitePath)
	require.Equal(t, "pro", cfg.Auth.DefaultPlan)
	require.True(t, cfg.S3.UseSSL)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: ":9090"
  client_origin: "https://app.allball.example"
storage:
  backend: "memory"
stripe:
  secret_key: "sk_test_123"
  price_pro_month: "price_pro"
auth:
  default_plan: "free"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Server.Address)
	require.Equal(t, "https://app.allball.example", cfg.Server.ClientOrigin)
	require.Equal(t, "memory", cfg.Storage.Backend)
	require.Equal(t, "sk_test_123", cfg.Stripe.SecretKey)
	require.Equal(t, "price_pro", cfg.Stripe.PriceProMonth)
	require.Equal(t, "free", cfg.Auth.DefaultPlan)
	// Untouched keys keep their defaults.
	require.Equal(t, "allball.db", cfg.Storage.SQLitePath)
}

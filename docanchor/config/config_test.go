package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SOLANA_RPC_URL", "")
	t.Setenv("SOLANA_PRIVATE_KEY", "")
	t.Setenv("SOLANA_NETWORK", "")

	cfg, err := Load(context.Background(), NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, DefaultNetwork, cfg.Solana.Network)
	assert.Equal(t, DefaultExplorerBaseURL, cfg.Solana.ExplorerBaseURL)
	assert.Equal(t, DefaultConfirmTimeout, cfg.Solana.ConfirmTimeout)
	assert.Equal(t, DefaultRequestsPerSecond, cfg.Solana.RequestsPerSecond)
	assert.Equal(t, DefaultAlgorithm, cfg.Digest.Algorithm)
	assert.Empty(t, cfg.Solana.PrivateKey)
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	path := writeConfig(t, `
solana:
  rpc_url: https://file.example.com
  network: testnet
  confirm_timeout: 15s
  private_key: fileKey
log:
  level: debug
`)
	t.Setenv("SOLANA_RPC_URL", "")
	t.Setenv("SOLANA_NETWORK", "")
	t.Setenv("SOLANA_PRIVATE_KEY", "envKey")

	cfg, err := Load(context.Background(), NewViper(), path)
	require.NoError(t, err)

	assert.Equal(t, "https://file.example.com", cfg.Solana.RPCURL)
	assert.Equal(t, "testnet", cfg.Solana.Network)
	assert.Equal(t, 15*time.Second, cfg.Solana.ConfirmTimeout)
	assert.Equal(t, "envKey", cfg.Solana.PrivateKey, "environment overrides the file")
	assert.Equal(t, "debug", cfg.Log.Level)

	ac := cfg.AnchorConfig()
	assert.Equal(t, "envKey", ac.PrivateKey)
	assert.Equal(t, "https://file.example.com", ac.RPCURL)
}

func TestLoadNetworkFollowsClusterEndpoint(t *testing.T) {
	t.Setenv("SOLANA_RPC_URL", "mainnet-beta")
	t.Setenv("SOLANA_NETWORK", "")

	cfg, err := Load(context.Background(), NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, "mainnet-beta", cfg.Solana.Network)

	t.Setenv("SOLANA_NETWORK", "testnet")
	cfg, err = Load(context.Background(), NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, "testnet", cfg.Solana.Network)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), NewViper(), filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestRedacted(t *testing.T) {
	cfg := &Config{}
	cfg.Solana.PrivateKey = "secret"

	red := cfg.Redacted()
	assert.Equal(t, "<redacted>", red.Solana.PrivateKey)
	assert.Equal(t, "secret", cfg.Solana.PrivateKey)
}

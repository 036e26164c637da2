package config

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/LumeraProtocol/docanchor/pkg/anchor"
	"github.com/LumeraProtocol/docanchor/pkg/logtrace"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// SolanaConfig holds the ledger settings.
type SolanaConfig struct {
	RPCURL            string        `mapstructure:"rpc_url" yaml:"rpc_url"`
	PrivateKey        string        `mapstructure:"private_key" yaml:"private_key,omitempty"`
	Network           string        `mapstructure:"network" yaml:"network"`
	ExplorerBaseURL   string        `mapstructure:"explorer_base_url" yaml:"explorer_base_url"`
	ConfirmTimeout    time.Duration `mapstructure:"confirm_timeout" yaml:"confirm_timeout"`
	RequestsPerSecond int           `mapstructure:"requests_per_second" yaml:"requests_per_second"`
	SkipPreflight     bool          `mapstructure:"skip_preflight" yaml:"skip_preflight"`
}

// Config represents the resolved configuration of the docanchor CLI.
type Config struct {
	Solana SolanaConfig `mapstructure:"solana" yaml:"solana"`

	Digest struct {
		Algorithm string `mapstructure:"algorithm" yaml:"algorithm"`
	} `mapstructure:"digest" yaml:"digest"`

	Log struct {
		Level string `mapstructure:"level" yaml:"level"`
	} `mapstructure:"log" yaml:"log"`
}

// envBindings maps config keys onto the environment variables that override them.
var envBindings = map[string]string{
	"solana.rpc_url":     anchor.EnvRPCURL,
	"solana.private_key": anchor.EnvPrivateKey,
	"solana.network":     anchor.EnvNetwork,
	"log.level":          "DOCANCHOR_LOG_LEVEL",
	"digest.algorithm":   "DOCANCHOR_DIGEST_ALGORITHM",
}

// NewViper returns a viper instance carrying defaults and environment bindings.
// Flags bound to it by the caller take precedence over both.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("solana.rpc_url", DefaultRPCURL)
	v.SetDefault("solana.explorer_base_url", DefaultExplorerBaseURL)
	v.SetDefault("solana.confirm_timeout", DefaultConfirmTimeout)
	v.SetDefault("solana.requests_per_second", DefaultRequestsPerSecond)
	v.SetDefault("solana.skip_preflight", false)
	v.SetDefault("digest.algorithm", DefaultAlgorithm)
	v.SetDefault("log.level", DefaultLogLevel)

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
	return v
}

// Load resolves configuration: flags → environment → config file → defaults.
// An empty path skips the file layer.
func Load(ctx context.Context, v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, errors.Wrap(err, "error getting absolute path for config file")
		}

		logtrace.Debug(ctx, "Loading configuration", logtrace.Fields{
			"path": absPath,
		})

		v.SetConfigFile(absPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", absPath)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	cfg.Solana.RPCURL = strings.TrimSpace(cfg.Solana.RPCURL)
	cfg.Solana.PrivateKey = strings.TrimSpace(cfg.Solana.PrivateKey)
	cfg.Solana.Network = strings.TrimSpace(cfg.Solana.Network)
	if cfg.Solana.Network == "" {
		cfg.Solana.Network = anchor.NetworkFor(cfg.Solana.RPCURL)
	}
	if cfg.Solana.ConfirmTimeout <= 0 {
		cfg.Solana.ConfirmTimeout = DefaultConfirmTimeout
		logtrace.Debug(ctx, "Using default confirm timeout", logtrace.Fields{
			"timeout": cfg.Solana.ConfirmTimeout.String(),
		})
	}

	logtrace.Debug(ctx, "Configuration loaded successfully", logtrace.Fields{
		logtrace.FieldEndpoint: cfg.Solana.RPCURL,
		logtrace.FieldNetwork:  cfg.Solana.Network,
		"credential_present":   cfg.Solana.PrivateKey != "",
	})
	return &cfg, nil
}

// AnchorConfig converts the Solana section into the explicit anchor.Config.
func (c *Config) AnchorConfig() anchor.Config {
	return anchor.Config{
		RPCURL:            c.Solana.RPCURL,
		PrivateKey:        c.Solana.PrivateKey,
		Network:           c.Solana.Network,
		ExplorerBaseURL:   c.Solana.ExplorerBaseURL,
		ConfirmTimeout:    c.Solana.ConfirmTimeout,
		RequestsPerSecond: c.Solana.RequestsPerSecond,
		SkipPreflight:     c.Solana.SkipPreflight,
	}
}

// Redacted returns a copy safe to print: the credential is masked.
func (c *Config) Redacted() *Config {
	out := *c
	if out.Solana.PrivateKey != "" {
		out.Solana.PrivateKey = "<redacted>"
	}
	return &out
}

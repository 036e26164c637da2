package ledger

import (
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

const (
	DefaultCommitment        = rpc.CommitmentConfirmed
	DefaultConfirmTimeout    = 60 * time.Second
	DefaultPollInterval      = 500 * time.Millisecond
	DefaultMaxPollInterval   = 2 * time.Second
	DefaultBlockhashTTL      = 20 * time.Second
	DefaultRequestsPerSecond = 5
)

// Config holds the settings of a ledger client.
type Config struct {
	// Endpoint is an RPC URL, a bare host[:port] or a cluster name
	// (devnet, testnet, mainnet-beta, localnet).
	Endpoint string
	// Signer pays for and signs every memo transaction.
	Signer solana.PrivateKey

	Commitment     rpc.CommitmentType
	ConfirmTimeout time.Duration
	// PollInterval is the initial delay between signature status checks.
	PollInterval time.Duration
	// BlockhashTTL bounds how long a fetched blockhash is reused.
	BlockhashTTL time.Duration
	// RequestsPerSecond caps outbound RPC calls. Zero disables the limit.
	RequestsPerSecond int
	SkipPreflight     bool
}

func (c *Config) withDefaults() *Config {
	out := *c
	if out.Commitment == "" {
		out.Commitment = DefaultCommitment
	}
	if out.ConfirmTimeout <= 0 {
		out.ConfirmTimeout = DefaultConfirmTimeout
	}
	if out.PollInterval <= 0 {
		out.PollInterval = DefaultPollInterval
	}
	if out.BlockhashTTL <= 0 {
		out.BlockhashTTL = DefaultBlockhashTTL
	}
	if out.RequestsPerSecond < 0 {
		out.RequestsPerSecond = 0
	}
	return &out
}

package anchor

import (
	"os"
	"strings"
	"time"

	"github.com/LumeraProtocol/docanchor/pkg/ledger"
)

// Environment variables consulted when the explicit Config leaves a field empty.
const (
	EnvRPCURL     = "SOLANA_RPC_URL"
	EnvPrivateKey = "SOLANA_PRIVATE_KEY"
	EnvNetwork    = "SOLANA_NETWORK"
)

const (
	DefaultRPCURL          = "https://api.devnet.solana.com"
	DefaultNetwork         = "devnet"
	DefaultExplorerBaseURL = "https://solscan.io/tx/"

	// SimulatedTxPrefix starts every transaction id issued in simulated mode.
	SimulatedTxPrefix = "mock-tx-"
)

// Config carries the explicit overrides for a Service. Empty fields fall back
// to the environment, then to the defaults above.
type Config struct {
	RPCURL string
	// PrivateKey is a Base58 ed25519 keypair. Empty selects simulated mode.
	PrivateKey      string
	Network         string
	ExplorerBaseURL string

	ConfirmTimeout time.Duration
	// RequestsPerSecond caps outbound RPC calls; zero picks the default,
	// a negative value disables the limit.
	RequestsPerSecond int
	SkipPreflight     bool
}

// NetworkFor returns the explorer cluster matching rpcURL when it names a
// public cluster, and DefaultNetwork otherwise.
func NetworkFor(rpcURL string) string {
	if name, ok := ledger.ClusterName(rpcURL); ok {
		return name
	}
	return DefaultNetwork
}

// LookupEnv matches os.LookupEnv.
type LookupEnv func(key string) (string, bool)

func (c Config) resolve(lookup LookupEnv) Config {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	pick := func(explicit, env, def string) string {
		if v := strings.TrimSpace(explicit); v != "" {
			return v
		}
		if v, ok := lookup(env); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	out := c
	out.RPCURL = pick(c.RPCURL, EnvRPCURL, DefaultRPCURL)
	out.PrivateKey = pick(c.PrivateKey, EnvPrivateKey, "")
	out.Network = pick(c.Network, EnvNetwork, NetworkFor(out.RPCURL))
	if strings.TrimSpace(out.ExplorerBaseURL) == "" {
		out.ExplorerBaseURL = DefaultExplorerBaseURL
	}
	if out.ConfirmTimeout <= 0 {
		out.ConfirmTimeout = ledger.DefaultConfirmTimeout
	}
	if out.RequestsPerSecond == 0 {
		out.RequestsPerSecond = ledger.DefaultRequestsPerSecond
	}
	return out
}

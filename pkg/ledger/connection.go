package ledger

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/gagliardetto/solana-go/rpc"
)

var clusterEndpoints = map[string]string{
	"devnet":       rpc.DevNet_RPC,
	"testnet":      rpc.TestNet_RPC,
	"mainnet":      rpc.MainNetBeta_RPC,
	"mainnet-beta": rpc.MainNetBeta_RPC,
	"localnet":     rpc.LocalNet_RPC,
	"localhost":    rpc.LocalNet_RPC,
}

// NormaliseEndpoint turns the configured endpoint into an RPC URL.
//
// Accepts all of these:
//
//	devnet                            → https://api.devnet.solana.com
//	https://api.devnet.solana.com     → unchanged
//	http://127.0.0.1:8899             → unchanged
//	rpc.example.com                   → https://rpc.example.com
//	rpc.example.com:8899              → https://rpc.example.com:8899
func NormaliseEndpoint(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty ledger endpoint")
	}
	if ep, ok := clusterEndpoints[strings.ToLower(raw)]; ok {
		return ep, nil
	}

	// If scheme present, parse as URL first.
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("parse endpoint %q: %w", raw, err)
		}
		switch u.Scheme {
		case "https", "http":
		default:
			return "", fmt.Errorf("unsupported scheme %q in %q", u.Scheme, raw)
		}
		if u.Host == "" {
			return "", fmt.Errorf("missing host in %q", raw)
		}
		return u.String(), nil
	}

	// No scheme: host[:port], always over TLS.
	host := raw
	if h, p, err := net.SplitHostPort(raw); err == nil {
		host = net.JoinHostPort(h, p)
	}
	return "https://" + host, nil
}

// ClusterName reports which public cluster endpoint addresses, whether it is
// given as a cluster name or as that cluster's public RPC URL.
func ClusterName(endpoint string) (string, bool) {
	ep, err := NormaliseEndpoint(endpoint)
	if err != nil {
		return "", false
	}
	switch strings.TrimRight(ep, "/") {
	case rpc.DevNet_RPC:
		return "devnet", true
	case rpc.TestNet_RPC:
		return "testnet", true
	case rpc.MainNetBeta_RPC:
		return "mainnet-beta", true
	}
	return "", false
}

func newRPCClient(endpoint string) *rpc.Client {
	return rpc.New(endpoint)
}

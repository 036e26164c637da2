package ledger

import (
	"testing"
)

func TestNormaliseEndpoint(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "cluster name", input: "devnet", want: "https://api.devnet.solana.com"},
		{name: "cluster name case", input: " Mainnet-Beta ", want: "https://api.mainnet-beta.solana.com"},
		{name: "https url", input: "https://api.devnet.solana.com", want: "https://api.devnet.solana.com"},
		{name: "http url with port", input: "http://127.0.0.1:8899", want: "http://127.0.0.1:8899"},
		{name: "no scheme no port", input: "rpc.example.com", want: "https://rpc.example.com"},
		{name: "no scheme with port", input: "rpc.example.com:8899", want: "https://rpc.example.com:8899"},
		{name: "unknown scheme", input: "ftp://invalid.com", wantErr: true},
		{name: "missing host", input: "https://", wantErr: true},
		{name: "empty", input: "  ", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormaliseEndpoint(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("NormaliseEndpoint(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestClusterName(t *testing.T) {
	tests := []struct {
		endpoint string
		want     string
		ok       bool
	}{
		{"devnet", "devnet", true},
		{"mainnet", "mainnet-beta", true},
		{"mainnet-beta", "mainnet-beta", true},
		{"https://api.testnet.solana.com", "testnet", true},
		{"https://api.mainnet-beta.solana.com/", "mainnet-beta", true},
		{"localnet", "", false},
		{"https://rpc.example.com", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ClusterName(tt.endpoint)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ClusterName(%q) = %q, %v; want %q, %v", tt.endpoint, got, ok, tt.want, tt.ok)
		}
	}
}

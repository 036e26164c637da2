//go:generate mockgen -destination=mocks/client_mock.go -package=ledgermocks -source=interface.go

// Package ledger submits memo transactions to a Solana cluster over JSON-RPC.
package ledger

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// Client writes memos to the ledger on behalf of a single signer.
type Client interface {
	// SendMemo submits one transaction whose only instruction writes memo as
	// UTF-8 memo content, waits for the configured commitment and returns the
	// transaction signature in base58. Failures reported by the RPC layer are
	// returned as *SubmitError.
	SendMemo(ctx context.Context, memo string) (string, error)

	// PublicKey returns the fee payer / signer address.
	PublicKey() solana.PublicKey

	// Close releases the underlying RPC transport.
	Close() error
}

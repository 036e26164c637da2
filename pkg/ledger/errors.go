package ledger

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

// Stage names the RPC interaction that failed.
type Stage string

const (
	StageBlockhash Stage = "blockhash"
	StageSend      Stage = "send"
	StageConfirm   Stage = "confirm"
)

// SubmitError is a failure reported by the ledger or the network while
// submitting a memo transaction.
type SubmitError struct {
	Stage Stage
	// Signature is set once the transaction was accepted for processing.
	Signature string
	Err       error
}

func (e *SubmitError) Error() string {
	if e.Signature != "" {
		return fmt.Sprintf("ledger %s failed for %s: %v", e.Stage, e.Signature, e.Err)
	}
	return fmt.Sprintf("ledger %s failed: %v", e.Stage, e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// TransactionFailedError carries the on-chain error of a processed transaction.
type TransactionFailedError struct {
	Detail interface{}
}

func (e *TransactionFailedError) Error() string {
	return fmt.Sprintf("transaction failed on chain: %v", e.Detail)
}

// RPCErrorCode extracts the JSON-RPC error code from err, if any.
func RPCErrorCode(err error) (int, bool) {
	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr.Code, true
	}
	return 0, false
}

package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/LumeraProtocol/docanchor/pkg/logtrace"
	"github.com/cenkalti/backoff/v4"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

var errNotYetCommitted = errors.New("signature not yet at requested commitment")

func commitmentRank(level string) int {
	switch level {
	case string(rpc.ConfirmationStatusProcessed):
		return 1
	case string(rpc.ConfirmationStatusConfirmed):
		return 2
	case string(rpc.ConfirmationStatusFinalized):
		return 3
	default:
		return 0
	}
}

// waitForCommitment polls the signature status until it reaches the
// configured commitment, the transaction fails on chain, or ConfirmTimeout
// elapses. Only the status query is repeated; the transaction is never resent.
func (c *ledgerClient) waitForCommitment(ctx context.Context, sig solana.Signature, fields logtrace.Fields) error {
	want := commitmentRank(string(c.cfg.Commitment))

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.PollInterval
	b.MaxInterval = DefaultMaxPollInterval
	if b.MaxInterval < b.InitialInterval {
		b.MaxInterval = b.InitialInterval
	}
	b.MaxElapsedTime = c.cfg.ConfirmTimeout
	b.Reset()

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		if err := c.take(ctx); err != nil {
			return backoff.Permanent(err)
		}
		res, err := c.rpc.GetSignatureStatuses(ctx, false, sig)
		if err != nil {
			return err
		}
		if res == nil || len(res.Value) == 0 || res.Value[0] == nil {
			logtrace.Debug(ctx, "signature status pending", logtrace.WithFields(fields, logtrace.Fields{
				logtrace.FieldAttempt: attempt,
			}))
			return errNotYetCommitted
		}

		status := res.Value[0]
		logtrace.Debug(ctx, "signature status", logtrace.WithFields(fields, logtrace.Fields{
			logtrace.FieldAttempt: attempt,
			logtrace.FieldStatus:  string(status.ConfirmationStatus),
		}))
		if status.Err != nil {
			return backoff.Permanent(&TransactionFailedError{Detail: status.Err})
		}
		if commitmentRank(string(status.ConfirmationStatus)) < want {
			return errNotYetCommitted
		}
		return nil
	}, backoff.WithContext(b, ctx))

	if errors.Is(err, errNotYetCommitted) {
		return fmt.Errorf("no %s status within %s: %w", c.cfg.Commitment, c.cfg.ConfirmTimeout, err)
	}
	return err
}

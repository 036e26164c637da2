package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/LumeraProtocol/docanchor/pkg/errors"
	"github.com/LumeraProtocol/docanchor/pkg/logtrace"
	"github.com/cenkalti/backoff/v4"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/patrickmn/go-cache"
	"go.uber.org/ratelimit"
)

const latestBlockhashKey = "latest"

var errBlockhashNotAdvanced = errors.New("latest blockhash has already signed this memo")

// recentBlockhash is a cached blockhash and the memos already signed with it.
// Signing is deterministic, so a memo signed twice over the same blockhash
// yields the same transaction.
type recentBlockhash struct {
	hash  solana.Hash
	memos map[string]struct{}
}

func (r *recentBlockhash) signed(memo string) bool {
	_, ok := r.memos[memo]
	return ok
}

// rpcAPI is the subset of *rpc.Client used for memo submission.
type rpcAPI interface {
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SendTransactionWithOpts(ctx context.Context, transaction *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
	GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, transactionSignatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error)
	Close() error
}

type ledgerClient struct {
	cfg      *Config
	endpoint string
	rpc      rpcAPI
	limiter  ratelimit.Limiter

	blockhashes *cache.Cache

	// one blockhash/send/confirm cycle in flight per signer
	mu sync.Mutex
}

// NewClient creates a ledger client for cfg.Endpoint signing with cfg.Signer.
// No network call is made until the first SendMemo.
func NewClient(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.New("ledger config is required")
	}
	if len(cfg.Signer) == 0 {
		return nil, errors.New("ledger signer is required")
	}

	endpoint, err := NormaliseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "invalid ledger endpoint")
	}

	return newClient(newRPCClient(endpoint), endpoint, cfg), nil
}

func newClient(api rpcAPI, endpoint string, cfg *Config) *ledgerClient {
	cfg = cfg.withDefaults()

	limiter := ratelimit.NewUnlimited()
	if cfg.RequestsPerSecond > 0 {
		limiter = ratelimit.New(cfg.RequestsPerSecond)
	}

	return &ledgerClient{
		cfg:         cfg,
		endpoint:    endpoint,
		rpc:         api,
		limiter:     limiter,
		blockhashes: cache.New(cfg.BlockhashTTL, 2*cfg.BlockhashTTL),
	}
}

func (c *ledgerClient) PublicKey() solana.PublicKey {
	return c.cfg.Signer.PublicKey()
}

func (c *ledgerClient) Close() error {
	if c.rpc != nil {
		return c.rpc.Close()
	}
	return nil
}

func (c *ledgerClient) SendMemo(ctx context.Context, memo string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fields := logtrace.Fields{
		logtrace.FieldModule:     logtrace.ValueLedger,
		logtrace.FieldMethod:     "SendMemo",
		logtrace.FieldEndpoint:   c.endpoint,
		logtrace.FieldPublicKey:  c.PublicKey().String(),
		logtrace.FieldCommitment: string(c.cfg.Commitment),
	}

	recent, err := c.blockhashFor(ctx, memo)
	if err != nil {
		return "", &SubmitError{Stage: StageBlockhash, Err: err}
	}

	tx, err := buildMemoTransaction(memo, recent.hash, c.cfg.Signer)
	if err != nil {
		return "", err
	}
	logtrace.Debug(ctx, "memo transaction signed", fields)

	if err := c.take(ctx); err != nil {
		return "", &SubmitError{Stage: StageSend, Err: err}
	}
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       c.cfg.SkipPreflight,
		PreflightCommitment: c.cfg.Commitment,
	})
	if err != nil {
		// a rejected blockhash must not be reused by the next submission
		c.blockhashes.Delete(latestBlockhashKey)
		if code, ok := RPCErrorCode(err); ok {
			fields["rpc_code"] = code
		}
		fields[logtrace.FieldError] = err.Error()
		logtrace.Warn(ctx, "memo transaction rejected", fields)
		return "", &SubmitError{Stage: StageSend, Err: err}
	}

	recent.memos[memo] = struct{}{}

	txid := sig.String()
	fields[logtrace.FieldTxHash] = txid
	logtrace.Info(ctx, "memo transaction submitted", fields)

	start := time.Now()
	if err := c.waitForCommitment(ctx, sig, fields); err != nil {
		fields[logtrace.FieldError] = err.Error()
		logtrace.Warn(ctx, "memo transaction not confirmed", fields)
		return "", &SubmitError{Stage: StageConfirm, Signature: txid, Err: err}
	}
	fields["confirm_ms"] = time.Since(start).Milliseconds()
	logtrace.Info(ctx, "memo transaction confirmed", fields)

	return txid, nil
}

// take waits for a rate-limit slot and reports a caller that gave up meanwhile.
func (c *ledgerClient) take(ctx context.Context) error {
	c.limiter.Take()
	return ctx.Err()
}

// blockhashFor returns a recent blockhash that has not yet signed memo. The
// cached one is reused while it is valid; otherwise a fresh one is fetched,
// waiting up to ConfirmTimeout for the chain to advance past a hash that
// already signed memo.
func (c *ledgerClient) blockhashFor(ctx context.Context, memo string) (*recentBlockhash, error) {
	var used *recentBlockhash
	if v, ok := c.blockhashes.Get(latestBlockhashKey); ok {
		used = v.(*recentBlockhash)
		if !used.signed(memo) {
			return used, nil
		}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.PollInterval
	b.MaxInterval = DefaultMaxPollInterval
	if b.MaxInterval < b.InitialInterval {
		b.MaxInterval = b.InitialInterval
	}
	b.MaxElapsedTime = c.cfg.ConfirmTimeout
	b.Reset()

	var fresh *recentBlockhash
	err := backoff.Retry(func() error {
		hash, err := c.fetchBlockhash(ctx)
		if err != nil {
			return backoff.Permanent(err)
		}
		if used != nil && hash == used.hash {
			return errBlockhashNotAdvanced
		}
		fresh = &recentBlockhash{hash: hash, memos: map[string]struct{}{}}
		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, err
	}

	c.blockhashes.Set(latestBlockhashKey, fresh, cache.DefaultExpiration)
	return fresh, nil
}

func (c *ledgerClient) fetchBlockhash(ctx context.Context) (solana.Hash, error) {
	if err := c.take(ctx); err != nil {
		return solana.Hash{}, err
	}
	res, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, err
	}
	if res == nil || res.Value == nil {
		return solana.Hash{}, errors.New("empty latest blockhash response")
	}
	return res.Value.Blockhash, nil
}

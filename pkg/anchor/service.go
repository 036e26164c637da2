// Package anchor commits digests to a public ledger as memo transactions.
//
// A Service runs in one of two modes chosen at construction. With a signing
// credential it submits real transactions; without one it provisions an
// ephemeral identity and issues simulated receipts, so the receipt contract
// holds offline and in tests.
package anchor

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/LumeraProtocol/docanchor/pkg/errors"
	"github.com/LumeraProtocol/docanchor/pkg/keyring"
	"github.com/LumeraProtocol/docanchor/pkg/ledger"
	"github.com/LumeraProtocol/docanchor/pkg/logtrace"
	"github.com/gagliardetto/solana-go"
)

// Service anchors digests. Its configuration is immutable after New and it is
// safe for concurrent use.
type Service struct {
	mode         Mode
	endpoint     string
	network      string
	explorerBase string

	signer solana.PrivateKey
	ledger ledger.Client // nil in ModeSimulated

	now func() time.Time
}

type options struct {
	lookup LookupEnv
	now    func() time.Time
	ledger ledger.Client
}

// Option customises construction.
type Option func(*options)

// WithLookupEnv replaces os.LookupEnv as the environment source.
func WithLookupEnv(fn LookupEnv) Option {
	return func(o *options) { o.lookup = fn }
}

// WithClock replaces time.Now for simulated transaction ids.
func WithClock(fn func() time.Time) Option {
	return func(o *options) { o.now = fn }
}

// WithLedgerClient supplies the client used in real mode instead of dialing
// the configured endpoint.
func WithLedgerClient(c ledger.Client) Option {
	return func(o *options) { o.ledger = c }
}

// New resolves cfg against the environment and builds a Service. A missing
// credential selects ModeSimulated; a credential that cannot be decoded fails
// here with *UnexpectedError.
func New(ctx context.Context, cfg Config, opts ...Option) (*Service, error) {
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	resolved := cfg.resolve(o.lookup)
	s := &Service{
		endpoint:     resolved.RPCURL,
		network:      resolved.Network,
		explorerBase: resolved.ExplorerBaseURL,
		now:          o.now,
	}

	fields := logtrace.Fields{
		logtrace.FieldModule:   logtrace.ValueAnchor,
		logtrace.FieldMethod:   "New",
		logtrace.FieldEndpoint: s.endpoint,
		logtrace.FieldNetwork:  s.network,
	}

	if resolved.PrivateKey == "" {
		signer, err := keyring.NewEphemeral()
		if err != nil {
			return nil, &UnexpectedError{Op: "provision ephemeral identity", Err: err}
		}
		s.signer = signer
		s.mode = ModeSimulated

		fields[logtrace.FieldMode] = s.mode.String()
		fields[logtrace.FieldPublicKey] = keyring.Fingerprint(signer)
		logtrace.Warn(ctx, "no signing credential configured, anchoring is simulated", fields)
		return s, nil
	}

	signer, err := keyring.DecodeBase58(resolved.PrivateKey)
	if err != nil {
		return nil, &UnexpectedError{Op: "decode signing credential", Err: err}
	}
	s.signer = signer
	s.mode = ModeReal

	s.ledger = o.ledger
	if s.ledger == nil {
		s.ledger, err = ledger.NewClient(&ledger.Config{
			Endpoint:          resolved.RPCURL,
			Signer:            signer,
			Commitment:        ledger.DefaultCommitment,
			ConfirmTimeout:    resolved.ConfirmTimeout,
			RequestsPerSecond: resolved.RequestsPerSecond,
			SkipPreflight:     resolved.SkipPreflight,
		})
		if err != nil {
			return nil, &UnexpectedError{Op: "create ledger client", Err: err}
		}
	}

	fields[logtrace.FieldMode] = s.mode.String()
	fields[logtrace.FieldPublicKey] = keyring.Fingerprint(signer)
	logtrace.Info(ctx, "ledger anchoring enabled", fields)
	return s, nil
}

func (s *Service) Mode() Mode       { return s.mode }
func (s *Service) Endpoint() string { return s.endpoint }
func (s *Service) Network() string  { return s.network }

// PublicKey returns the address of the signing identity.
func (s *Service) PublicKey() string { return keyring.Fingerprint(s.signer) }

// ExplorerURL returns the public explorer link for txid.
func (s *Service) ExplorerURL(txid string) string {
	return s.explorerBase + txid + "?cluster=" + url.QueryEscape(s.network)
}

// Anchor writes digestHex verbatim as memo content. The value is not
// validated. In ModeReal the call blocks until the transaction reaches the
// confirmed commitment or fails; failures are never retried.
func (s *Service) Anchor(ctx context.Context, digestHex string) (*Receipt, error) {
	fields := logtrace.Fields{
		logtrace.FieldModule:  logtrace.ValueAnchor,
		logtrace.FieldMethod:  "Anchor",
		logtrace.FieldMode:    s.mode.String(),
		logtrace.FieldHashHex: digestHex,
	}

	var (
		txid string
		err  error
	)
	switch s.mode {
	case ModeSimulated:
		txid = SimulatedTxPrefix + strconv.FormatInt(s.now().UnixMilli(), 10)
	case ModeReal:
		txid, err = s.submit(ctx, digestHex)
	default:
		err = &UnexpectedError{Op: "anchor", Err: errors.Errorf("service mode %d is not initialised", s.mode)}
	}
	if err != nil {
		fields[logtrace.FieldError] = err.Error()
		var txErr *TransactionError
		if errors.As(err, &txErr) {
			fields[logtrace.FieldStage] = txErr.Stage
		}
		logtrace.Error(ctx, "anchoring failed", fields)
		return nil, err
	}

	receipt := &Receipt{TransactionID: txid, ExplorerURL: s.ExplorerURL(txid), Mode: s.mode}
	fields[logtrace.FieldTxHash] = txid
	logtrace.Info(ctx, "digest anchored", fields)
	return receipt, nil
}

func (s *Service) submit(ctx context.Context, digestHex string) (txid string, err error) {
	defer func() {
		if r := recover(); r != nil {
			txid = ""
			err = &UnexpectedError{Op: "submit memo transaction", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	txid, err = s.ledger.SendMemo(ctx, digestHex)
	if err == nil {
		if txid == "" {
			return "", &TransactionError{Stage: string(ledger.StageSend), Err: errors.New("ledger returned an empty transaction id")}
		}
		return txid, nil
	}

	var se *ledger.SubmitError
	if errors.As(err, &se) {
		return "", &TransactionError{Stage: string(se.Stage), Signature: se.Signature, Err: se.Err}
	}
	return "", &UnexpectedError{Op: "submit memo transaction", Err: err}
}

// Close releases the ledger transport, if any.
func (s *Service) Close() error {
	if s.ledger != nil {
		return s.ledger.Close()
	}
	return nil
}

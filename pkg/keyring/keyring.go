// Package keyring decodes the pre-provisioned ledger signing credential and
// provisions throwaway identities for simulated operation.
package keyring

import (
	"bytes"
	"crypto/ed25519"
	"strings"

	"github.com/LumeraProtocol/docanchor/pkg/errors"
	"github.com/btcsuite/btcutil/base58"
	"github.com/gagliardetto/solana-go"
)

var (
	// ErrEmptyCredential is returned when the credential string is blank.
	ErrEmptyCredential = errors.New("empty signing credential")
	// ErrInvalidEncoding is returned when the credential is not Base58.
	ErrInvalidEncoding = errors.New("signing credential is not valid base58")
)

// DecodeBase58 decodes a Base58 ed25519 keypair (64 bytes: seed followed by
// public key) into a solana.PrivateKey. The public half must match the seed.
func DecodeBase58(credential string) (solana.PrivateKey, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, ErrEmptyCredential
	}

	raw := base58.Decode(credential)
	if len(raw) == 0 {
		return nil, ErrInvalidEncoding
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.Errorf("signing credential has %d bytes, want %d", len(raw), ed25519.PrivateKeySize)
	}

	derived := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], raw[ed25519.SeedSize:]) {
		return nil, errors.New("signing credential public key does not match its seed")
	}

	return solana.PrivateKey(raw), nil
}

// EncodeBase58 renders a keypair in the form DecodeBase58 accepts.
func EncodeBase58(key solana.PrivateKey) string {
	return base58.Encode(key)
}

// NewEphemeral returns a freshly generated, unfunded keypair.
func NewEphemeral() (solana.PrivateKey, error) {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, errors.Errorf("generate ephemeral keypair: %w", err)
	}
	return key, nil
}

// Fingerprint returns the public address of key, safe for logging.
func Fingerprint(key solana.PrivateKey) string {
	if len(key) != ed25519.PrivateKeySize {
		return ""
	}
	return key.PublicKey().String()
}

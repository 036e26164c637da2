package digest

import (
	"context"
	"encoding/hex"
	"hash"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/LumeraProtocol/docanchor/pkg/errors"
	"github.com/LumeraProtocol/docanchor/pkg/logtrace"
	"github.com/LumeraProtocol/docanchor/pkg/utils"
)

const (
	// Delimiter separates the document bytes from the identity seed.
	Delimiter byte = '|'
	// HexPrefix prefixes every rendered digest.
	HexPrefix = "0x"
	// DigestHexLen is the length of a rendered 256-bit digest including the prefix.
	DigestHexLen = len(HexPrefix) + 64
)

// Algorithm names the hash function used for binding.
type Algorithm string

const (
	SHA256 Algorithm = "sha256"
	BLAKE3 Algorithm = "blake3"
)

// ParseAlgorithm maps a user-supplied name onto an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(name))) {
	case "", SHA256:
		return SHA256, nil
	case BLAKE3:
		return BLAKE3, nil
	default:
		return "", errors.Errorf("unsupported digest algorithm %q", name)
	}
}

// Service computes identity-bound digests. It holds no mutable state and is
// safe for concurrent use.
type Service struct {
	algorithm Algorithm
	newHash   func() hash.Hash
}

// Option configures a Service.
type Option func(*Service)

// WithAlgorithm selects the hash function. SHA256 is the default.
func WithAlgorithm(a Algorithm) Option {
	return func(s *Service) {
		switch a {
		case BLAKE3:
			s.algorithm, s.newHash = BLAKE3, utils.NewBLAKE3
		default:
			s.algorithm, s.newHash = SHA256, utils.NewSHA256
		}
	}
}

// New returns a Service using SHA-256 unless overridden.
func New(opts ...Option) *Service {
	s := &Service{algorithm: SHA256, newHash: utils.NewSHA256}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Algorithm returns the configured hash function.
func (s *Service) Algorithm() Algorithm { return s.algorithm }

// Bind computes the digest of document bound to identitySeed.
// It fails only with *EncodingError when the seed is not valid UTF-8.
func (s *Service) Bind(document []byte, identitySeed string) (*Record, error) {
	if err := checkSeed(identitySeed); err != nil {
		return nil, err
	}

	h := s.newHash()
	h.Write(document)
	return s.finish(h, identitySeed, int64(len(document))), nil
}

// BindReader streams r and binds its content to identitySeed. The result is
// identical to Bind over the same bytes.
func (s *Service) BindReader(ctx context.Context, r io.Reader, identitySeed string) (*Record, error) {
	return s.bindReader(ctx, r, identitySeed, 0)
}

// BindFile binds the content of the file at path to identitySeed.
func (s *Service) BindFile(ctx context.Context, path string, identitySeed string) (*Record, error) {
	if err := checkSeed(identitySeed); err != nil {
		return nil, err
	}

	h := s.newHash()
	n, err := utils.HashFile(ctx, h, path)
	if err != nil {
		return nil, errors.Errorf("hash document %s: %w", path, err)
	}
	rec := s.finish(h, identitySeed, n)

	logtrace.Debug(ctx, "document bound", logtrace.Fields{
		logtrace.FieldModule:       logtrace.ValueDigest,
		logtrace.FieldMethod:       "BindFile",
		logtrace.FieldHashHex:      rec.DigestHex,
		logtrace.FieldIdentitySeed: rec.IdentitySeed,
		logtrace.FieldInputSize:    rec.InputSize,
		logtrace.FieldAlgorithm:    string(rec.Algorithm),
		"path":                     path,
	})
	return rec, nil
}

func (s *Service) bindReader(ctx context.Context, r io.Reader, identitySeed string, sizeHint int64) (*Record, error) {
	if err := checkSeed(identitySeed); err != nil {
		return nil, err
	}

	h := s.newHash()
	n, err := utils.HashReader(ctx, h, r, sizeHint)
	if err != nil {
		return nil, errors.Errorf("read document: %w", err)
	}
	return s.finish(h, identitySeed, n), nil
}

func (s *Service) finish(h hash.Hash, identitySeed string, size int64) *Record {
	h.Write([]byte{Delimiter})
	io.WriteString(h, identitySeed)

	return &Record{
		DigestHex:    HexPrefix + hex.EncodeToString(h.Sum(nil)),
		IdentitySeed: identitySeed,
		InputSize:    size,
		Algorithm:    s.algorithm,
	}
}

func checkSeed(seed string) error {
	if utf8.ValidString(seed) {
		return nil
	}
	for i, r := range seed {
		if r == utf8.RuneError {
			if _, width := utf8.DecodeRuneInString(seed[i:]); width <= 1 {
				return &EncodingError{Offset: i}
			}
		}
	}
	return &EncodingError{Offset: 0}
}

// ValidDigestHex reports whether s has the rendered digest shape:
// "0x" followed by exactly 64 lowercase hex digits.
func ValidDigestHex(s string) bool {
	if len(s) != DigestHexLen || !strings.HasPrefix(s, HexPrefix) {
		return false
	}
	for _, c := range s[len(HexPrefix):] {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}

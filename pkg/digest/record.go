package digest

import (
	json "github.com/json-iterator/go"
)

// Record is the result of binding a document to an identity seed.
type Record struct {
	// DigestHex is "0x" + 64 lowercase hex digits.
	DigestHex string `json:"hash" yaml:"hash"`
	// IdentitySeed is echoed verbatim from the request.
	IdentitySeed string `json:"userSeed" yaml:"userSeed"`
	// InputSize is the length of the document in bytes.
	InputSize int64 `json:"size" yaml:"size"`

	Algorithm Algorithm `json:"-" yaml:"-"`
}

// JSON renders the record as {"hash", "userSeed", "size"}.
func (r *Record) JSON() ([]byte, error) {
	return json.Marshal(r)
}

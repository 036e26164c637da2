package logtrace

// Fields is a type alias for structured log fields
type Fields map[string]interface{}

// WithFields returns a copy of base with extra fields merged in.
func WithFields(base Fields, extra Fields) Fields {
	fields := Fields{}
	for key, value := range base {
		fields[key] = value
	}
	for key, value := range extra {
		fields[key] = value
	}
	return fields
}

const (
	FieldCorrelationID = "correlation_id"
	FieldOrigin        = "origin"
	FieldMethod        = "method"
	FieldModule        = "module"
	FieldError         = "error"
	FieldStackTrace    = "stack_trace"
	FieldStatus        = "status"
	FieldTxHash        = "tx_hash"
	FieldHashHex       = "hash_hex"
	FieldIdentitySeed  = "identity_seed"
	FieldInputSize     = "input_size"
	FieldAlgorithm     = "algorithm"
	FieldMode          = "mode"
	FieldEndpoint      = "endpoint"
	FieldNetwork       = "network"
	FieldPublicKey     = "public_key"
	FieldCommitment    = "commitment"
	FieldStage         = "stage"
	FieldAttempt       = "attempt"
)

const (
	ValueDigest = "digest"
	ValueAnchor = "anchor"
	ValueLedger = "ledger"
	ValueCLI    = "cli"
)

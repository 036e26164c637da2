package anchor

// Mode is fixed when a Service is constructed and never changes.
type Mode int

const (
	// ModeReal submits memo transactions to the ledger.
	ModeReal Mode = iota + 1
	// ModeSimulated issues synthetic receipts without network access.
	ModeSimulated
)

func (m Mode) String() string {
	switch m {
	case ModeReal:
		return "real"
	case ModeSimulated:
		return "simulated"
	default:
		return "unknown"
	}
}

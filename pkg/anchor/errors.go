package anchor

import "fmt"

// TransactionError reports that the ledger rejected the submission or could
// not be reached. The digest was not anchored, or its state is unknown.
type TransactionError struct {
	Stage string
	// Signature is set when the ledger accepted the transaction but it never
	// reached the requested commitment.
	Signature string
	Err       error
}

func (e *TransactionError) Error() string {
	if e.Signature != "" {
		return fmt.Sprintf("anchor transaction %s failed at %s: %v", e.Signature, e.Stage, e.Err)
	}
	return fmt.Sprintf("anchor transaction failed at %s: %v", e.Stage, e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }

// UnexpectedError reports any other fault, including a signing credential
// that cannot be decoded at construction time.
type UnexpectedError struct {
	Op  string
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error during %s: %v", e.Op, e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

package ledger

import (
	"github.com/LumeraProtocol/docanchor/pkg/errors"
	"github.com/gagliardetto/solana-go"
)

// buildMemoTransaction assembles and signs a transaction carrying text as its
// only instruction. The signer is also the fee payer. Any text is accepted,
// including the empty string.
func buildMemoTransaction(text string, blockhash solana.Hash, signer solana.PrivateKey) (*solana.Transaction, error) {
	payer := signer.PublicKey()

	inst := solana.NewInstruction(
		solana.MemoProgramID,
		solana.AccountMetaSlice{solana.Meta(payer).SIGNER()},
		[]byte(text),
	)

	tx, err := solana.NewTransaction(
		[]solana.Instruction{inst},
		blockhash,
		solana.TransactionPayer(payer),
	)
	if err != nil {
		return nil, errors.Errorf("assemble memo transaction: %w", err)
	}

	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(payer) {
			return &signer
		}
		return nil
	}); err != nil {
		return nil, errors.Errorf("sign memo transaction: %w", err)
	}

	return tx, nil
}

package cmd

import (
	"github.com/LumeraProtocol/docanchor/pkg/anchor"
	"github.com/LumeraProtocol/docanchor/pkg/digest"
	"github.com/spf13/cobra"
)

var stampSeed string

type stampResult struct {
	Digest  *digest.Record  `json:"digest" yaml:"digest"`
	Receipt *anchor.Receipt `json:"anchor" yaml:"anchor"`
}

// stampCmd represents the stamp command
var stampCmd = &cobra.Command{
	Use:   "stamp <file>",
	Short: "Hash a document and anchor the resulting digest",
	Long: `Compute the digest binding a document to an identity seed, then record it
on the ledger. Prints both the digest record and the anchor receipt.

Example:
  docanchor stamp contract.pdf --seed user-42 -o yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := bindDocument(cmd, args[0], stampSeed)
		if err != nil {
			return err
		}

		svc, err := newAnchorService(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.Close()

		receipt, err := svc.Anchor(cmd.Context(), record.DigestHex)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), outputFormat, &stampResult{Digest: record, Receipt: receipt})
	},
}

func init() {
	rootCmd.AddCommand(stampCmd)
	stampCmd.Flags().StringVarP(&stampSeed, "seed", "s", "", "identity seed bound into the digest")
}

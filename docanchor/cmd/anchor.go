package cmd

import (
	"context"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/LumeraProtocol/docanchor/pkg/anchor"
	"github.com/LumeraProtocol/docanchor/pkg/digest"
	"github.com/LumeraProtocol/docanchor/pkg/logtrace"
	"github.com/spf13/cobra"
)

var promptKey bool

// promptCredential asks for the signing key without echoing it.
var promptCredential = func() (string, error) {
	var key string
	prompt := &survey.Password{
		Message: "Enter the Base58 Solana signing key:",
	}
	if err := survey.AskOne(prompt, &key, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}

// anchorCmd represents the anchor command
var anchorCmd = &cobra.Command{
	Use:   "anchor <digest>",
	Short: "Record a digest on the ledger as a memo transaction",
	Long: `Record a digest on the Solana ledger as a memo transaction and print
{"txid","explorer"}. The signing key is read from SOLANA_PRIVATE_KEY or the
config file; without one the transaction is simulated.

Example:
  docanchor anchor 0x4c9c7d83ea720b531fd9800280495ada6029bb6cb5ba9b7b7e0b090e612e02ba
  docanchor anchor <digest> --prompt-key`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newAnchorService(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.Close()

		if !digest.ValidDigestHex(args[0]) {
			logtrace.Warn(cmd.Context(), "memo content is not a digest, anchoring verbatim", logtrace.Fields{
				logtrace.FieldModule:  logtrace.ValueCLI,
				logtrace.FieldHashHex: args[0],
			})
		}

		receipt, err := svc.Anchor(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), outputFormat, receipt)
	},
}

func newAnchorService(ctx context.Context) (*anchor.Service, error) {
	cfg := appConfig.AnchorConfig()
	if promptKey {
		key, err := promptCredential()
		if err != nil {
			return nil, err
		}
		cfg.PrivateKey = key
	}
	return anchor.New(ctx, cfg)
}

func init() {
	rootCmd.AddCommand(anchorCmd)
}

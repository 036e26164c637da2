package cmd

import (
	"github.com/LumeraProtocol/docanchor/pkg/digest"
	"github.com/spf13/cobra"
)

var hashSeed string

// hashCmd represents the hash command
var hashCmd = &cobra.Command{
	Use:   "hash <file>",
	Short: "Compute the digest binding a document to an identity seed",
	Long: `Compute the digest of a document bound to an identity seed and print
{"hash","userSeed","size"}. Use "-" to read the document from stdin.

Example:
  docanchor hash contract.pdf --seed user-42`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := bindDocument(cmd, args[0], hashSeed)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), outputFormat, record)
	},
}

func newDigestService() (*digest.Service, error) {
	alg, err := digest.ParseAlgorithm(appConfig.Digest.Algorithm)
	if err != nil {
		return nil, err
	}
	return digest.New(digest.WithAlgorithm(alg)), nil
}

func bindDocument(cmd *cobra.Command, path, seed string) (*digest.Record, error) {
	svc, err := newDigestService()
	if err != nil {
		return nil, err
	}
	if path == "-" {
		return svc.BindReader(cmd.Context(), cmd.InOrStdin(), seed)
	}
	return svc.BindFile(cmd.Context(), path, seed)
}

func init() {
	rootCmd.AddCommand(hashCmd)
	hashCmd.Flags().StringVarP(&hashSeed, "seed", "s", "", "identity seed bound into the digest")
}

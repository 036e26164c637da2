package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/LumeraProtocol/docanchor/docanchor/config"
	"github.com/LumeraProtocol/docanchor/pkg/anchor"
	"github.com/LumeraProtocol/docanchor/pkg/digest"
	"github.com/LumeraProtocol/docanchor/pkg/errors"
	"github.com/LumeraProtocol/docanchor/pkg/logtrace"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const serviceName = "docanchor"

// Exit codes returned by Execute.
const (
	exitFailure     = 1
	exitInvalidData = 2
	exitTransaction = 3
)

var (
	cfgFile      string
	outputFormat string

	// appConfig is resolved once per invocation in PersistentPreRunE.
	appConfig *config.Config
)

// flagBindings maps persistent flags onto config keys.
var flagBindings = map[string]string{
	"rpc-url":   "solana.rpc_url",
	"network":   "solana.network",
	"timeout":   "solana.confirm_timeout",
	"log-level": "log.level",
	"algorithm": "digest.algorithm",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docanchor",
	Short: "Bind documents to identities and anchor their digests on Solana",
	Long: `docanchor computes a SHA-256 digest binding a document to an identity seed
and records that digest on the Solana ledger as a memo transaction.

Without a signing key the ledger step is simulated and returns mock receipts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logtrace.Setup(serviceName)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = logtrace.CtxWithCorrelationID(ctx, uuid.NewString())
		ctx = logtrace.CtxWithOrigin(ctx, logtrace.ValueCLI)
		cmd.SetContext(ctx)
		cmd.Root().SetContext(ctx)

		v := config.NewViper()
		if err := bindFlags(v, cmd.Root().PersistentFlags()); err != nil {
			return err
		}
		cfg, err := config.Load(ctx, v, cfgFile)
		if err != nil {
			return err
		}
		if err := logtrace.SetLevel(cfg.Log.Level); err != nil {
			return err
		}
		appConfig = cfg

		logtrace.Debug(ctx, "command started", logtrace.Fields{
			logtrace.FieldModule: logtrace.ValueCLI,
			logtrace.FieldMethod: cmd.CommandPath(),
		})
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		reportError(rootCmd.Context(), err)
	}
	logtrace.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "optional YAML config file")
	pf.StringVarP(&outputFormat, "output", "o", formatJSON, "output format (json|yaml)")
	pf.String("rpc-url", "", "Solana RPC endpoint or cluster name (env SOLANA_RPC_URL)")
	pf.String("network", "", "explorer cluster name (env SOLANA_NETWORK)")
	pf.Duration("timeout", 0, "how long to wait for transaction confirmation")
	pf.String("log-level", "", "log level (debug|info|warn|error)")
	pf.String("algorithm", "", "digest algorithm (sha256|blake3)")
	pf.BoolVar(&promptKey, "prompt-key", false, "prompt for the signing key instead of reading env/config")
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagBindings {
		f := flags.Lookup(name)
		if f == nil {
			return errors.Errorf("flag %q is not defined", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrap(err, "bind flag "+name)
		}
	}
	return nil
}

// reportError logs a failed command. Unexpected faults carry their stack.
func reportError(ctx context.Context, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	fields := logtrace.Fields{
		logtrace.FieldModule: logtrace.ValueCLI,
		logtrace.FieldError:  err.Error(),
	}
	var unexpected *anchor.UnexpectedError
	if errors.As(err, &unexpected) {
		fields[logtrace.FieldStackTrace] = errors.ErrorStack(unexpected.Err)
	}
	logtrace.Error(ctx, "command failed", fields)
}

func exitCode(err error) int {
	var (
		encErr *digest.EncodingError
		txErr  *anchor.TransactionError
	)
	switch {
	case errors.As(err, &encErr):
		return exitInvalidData
	case errors.As(err, &txErr):
		return exitTransaction
	default:
		return exitFailure
	}
}

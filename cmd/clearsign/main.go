package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "clearsign",
		Short:        "Lido staking call-data decoder and confirmation screen resolver",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	decodeCmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode transaction records into confirmation screens",
		RunE:  runDecode,
	}

	decodeCmd.Flags().String("in", "", "input transaction records JSONL")
	decodeCmd.Flags().String("out", "./data/decoded_calls.jsonl", "output decoded calls JSONL")
	decodeCmd.Flags().String("errors", "./data/decode_errors.jsonl", "decode errors JSONL")
	decodeCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for decoded calls")
	decodeCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(decodeCmd)

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan blocks for staking contract calls and decode them",
		RunE:  runScan,
	}

	scanCmd.Flags().String("rpc", "", "Ethereum RPC URL")
	scanCmd.Flags().Uint64("from", 0, "start block (inclusive)")
	scanCmd.Flags().Uint64("to", 0, "end block (inclusive), 0 means latest")
	scanCmd.Flags().StringSlice("contract", nil, "contract addresses (comma-separated)")
	scanCmd.Flags().Uint64("batch-size", 100, "blocks per batch")
	scanCmd.Flags().String("out", "./data/decoded_calls.jsonl", "output decoded calls JSONL, empty disables")
	scanCmd.Flags().String("errors", "./data/decode_errors.jsonl", "decode errors JSONL, empty disables")
	scanCmd.Flags().String("pg-dsn", "", "optional Postgres DSN")
	scanCmd.Flags().String("state-name", "scan", "checkpoint name in scanner_state when Postgres is used")
	scanCmd.Flags().String("checkpoint", "./data/checkpoint.json", "checkpoint file path")
	scanCmd.Flags().Bool("checkpoint-enabled", true, "enable checkpointing")
	scanCmd.Flags().Int("max-retries", 5, "maximum retry attempts")
	scanCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	scanCmd.Flags().String("metrics-addr", "", "address for the Prometheus metrics endpoint, empty disables")
	scanCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(scanCmd)

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Decode a single transaction and print its confirmation screens",
		RunE:  runInspect,
	}

	inspectCmd.Flags().String("rpc", "", "Ethereum RPC URL, required with --tx")
	inspectCmd.Flags().String("tx", "", "transaction hash to fetch")
	inspectCmd.Flags().String("input", "", "raw call data (0x-prefixed hex)")
	inspectCmd.Flags().String("value", "0", "native value in wei for raw call data")
	inspectCmd.Flags().String("to", "", "destination contract for raw call data")
	inspectCmd.Flags().Bool("json", false, "print the decoded call as JSON")
	inspectCmd.Flags().String("log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(inspectCmd)

	selectorsCmd := &cobra.Command{
		Use:   "selectors",
		Short: "List supported selectors and their decoder configuration",
		RunE:  runSelectors,
	}

	root.AddCommand(selectorsCmd)

	return root
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

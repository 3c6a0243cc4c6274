package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"lidoClearSign/internal/chain"
	"lidoClearSign/internal/clearsign"
	"lidoClearSign/internal/config"
	"lidoClearSign/internal/model"
	"lidoClearSign/internal/scanner"
)

func runInspect(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadInspect(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var record model.TxRecord
	switch {
	case cfg.TxHash != "":
		record, err = fetchRecord(ctx, cfg)
		if err != nil {
			return err
		}
	case cfg.Input != "":
		record = model.TxRecord{To: cfg.To, Value: cfg.Value, Input: cfg.Input}
	default:
		return fmt.Errorf("either --tx or --input is required")
	}

	call, err := clearsign.NewSession(logger, nil).Decode(record)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(call)
	}
	printCall(cmd.OutOrStdout(), call)
	return nil
}

func fetchRecord(ctx context.Context, cfg config.InspectConfig) (model.TxRecord, error) {
	if cfg.RPCURL == "" {
		return model.TxRecord{}, fmt.Errorf("rpc url is required with --tx")
	}
	hash, err := scanner.ParseTxHash(cfg.TxHash)
	if err != nil {
		return model.TxRecord{}, err
	}

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return model.TxRecord{}, fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	chainID, err := chainClient.GetChainID(ctx)
	if err != nil {
		return model.TxRecord{}, fmt.Errorf("get chain id: %w", err)
	}
	if !chainID.IsUint64() {
		return model.TxRecord{}, fmt.Errorf("chain id does not fit in uint64: %s", chainID)
	}

	tx, err := chainClient.Transaction(ctx, hash)
	if err != nil {
		return model.TxRecord{}, fmt.Errorf("fetch transaction: %w", err)
	}
	return scanner.BuildTxRecord(chainID.Uint64(), tx.BlockNumber, tx.TxIndex, tx.Timestamp, tx.Tx), nil
}

func printCall(w io.Writer, call *model.DecodedCall) {
	fmt.Fprintf(w, "method:   %s (%s)\n", call.Method, call.Selector)
	if call.TxHash != "" {
		fmt.Fprintf(w, "tx:       %s (block %d)\n", call.TxHash, call.BlockNumber)
	}
	fmt.Fprintf(w, "chunks:   consumed=%d skipped=%d deferred=%d\n", call.Chunks.Consumed, call.Chunks.Skipped, call.Chunks.Deferred)

	if len(call.Screens) == 0 {
		fmt.Fprintln(w, "screens:  none")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Title", "Body"})
	table.SetAutoWrapText(false)
	for _, screen := range call.Screens {
		table.Append([]string{strconv.Itoa(int(screen.Index)), screen.Title, screen.Body})
	}
	table.Render()
}

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"lidoClearSign/internal/lido"
)

func runSelectors(cmd *cobra.Command, _ []string) error {
	return printSelectors(cmd.OutOrStdout())
}

func printSelectors(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Method", "ID", "Family", "First field", "Skip", "Gate", "Unit", "Screens"})
	table.SetAutoWrapText(false)

	for _, sel := range lido.Selectors {
		id, err := sel.ID()
		if err != nil {
			return fmt.Errorf("selector %s: %w", sel, err)
		}
		cfg, ok := lido.InitConfigFor(sel)
		if !ok {
			return fmt.Errorf("selector %s has no init config", sel)
		}

		gate := "-"
		if cfg.GateOffset != 0 {
			gate = fmt.Sprintf("%d+%d", cfg.GateCheckpoint, cfg.GateOffset)
		}
		unit := "-"
		if cfg.Ticker != "" {
			unit = fmt.Sprintf("%s/%d", cfg.Ticker, cfg.Decimals)
		}

		table.Append([]string{
			sel.MethodName(),
			hexutil.Encode(id[:]),
			sel.Family().String(),
			cfg.NextField.String(),
			strconv.Itoa(int(cfg.Skip)),
			gate,
			unit,
			strconv.Itoa(int(lido.ScreenCount(sel))),
		})
	}

	table.Render()
	return nil
}

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"narrator/internal/api"
	"narrator/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent conversions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}
			store, err := ctx.historyStore()
			if err != nil {
				return err
			}
			records, err := api.NewHistoryService(store).List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, records)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No conversions recorded")
				return nil
			}
			columns := []tableColumn{
				{Header: "When"},
				{Header: "Via"},
				{Header: "Source", MaxWidth: 40},
				{Header: "N", Align: alignRight},
				{Header: "ON", Align: alignRight},
				{Header: "Dropped", Align: alignRight},
				{Header: "Output", MaxWidth: 50},
			}
			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				target := rec.Target
				if target == "" {
					target = "-"
				}
				rows = append(rows, []string{
					formatRecordTime(rec.CreatedAt),
					rec.Adapter,
					rec.Source,
					strconv.Itoa(rec.Stats.NarrationCues),
					strconv.Itoa(rec.Stats.OnScreenCues),
					strconv.Itoa(rec.Stats.DroppedLines),
					target,
				})
			}
			fmt.Fprintln(out, renderTable(columns, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultListLimit, "Maximum number of conversions to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func formatRecordTime(value string) string {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return value
	}
	return parsed.Local().Format("2006-01-02 15:04:05")
}

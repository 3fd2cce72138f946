package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"narrator/internal/api"
	"narrator/internal/history"
	"narrator/internal/manuscript"
)

type cueRow struct {
	Index  int    `json:"index"`
	Number string `json:"number,omitempty"`
	Marker string `json:"marker,omitempty"`
	Text   string `json:"text"`
}

func newCuesCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "cues <input|->",
		Short: "List the cues of a converted transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.conversionService(true)
			if err != nil {
				return err
			}
			raw, source, _, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			conv, err := svc.Convert(cmd.Context(), api.ConvertRequest{
				Adapter: history.AdapterCLI,
				Source:  source,
				Raw:     raw,
			})
			if err != nil {
				return err
			}

			rows := cueRows(manuscript.ParseCues(conv.Result.Text))
			if asJSON {
				return writeJSON(cmd, rows)
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No cues found")
				return nil
			}
			columns := []tableColumn{
				{Header: "#", Align: alignRight},
				{Header: "Cue"},
				{Header: "Type"},
				{Header: "Text", MaxWidth: 60},
			}
			table := make([][]string, 0, len(rows))
			for _, row := range rows {
				table = append(table, []string{strconv.Itoa(row.Index), row.Number, markerLabel(row.Marker), row.Text})
			}
			fmt.Fprintln(out, renderTable(columns, table))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func cueRows(cues []manuscript.Cue) []cueRow {
	rows := make([]cueRow, 0, len(cues))
	for i, cue := range cues {
		rows = append(rows, cueRow{
			Index:  i + 1,
			Number: cue.Number,
			Marker: string(cue.Marker),
			Text:   cue.Text(),
		})
	}
	return rows
}

func markerLabel(marker string) string {
	switch manuscript.Marker(marker) {
	case manuscript.MarkerNarration:
		return "narration"
	case manuscript.MarkerOnScreen:
		return "on-screen"
	default:
		return "-"
	}
}

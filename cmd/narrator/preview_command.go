package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"narrator/internal/api"
	"narrator/internal/history"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var colorMode string

	cmd := &cobra.Command{
		Use:   "preview <input|->",
		Short: "Print the manuscript with on-screen cues highlighted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize, err := shouldColorize(out, colorMode)
			if err != nil {
				return err
			}
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

			if err := renderManuscript(out, conv.Result.Text, cfg.Cuesheet.HighlightColor, colorize); err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", source, summarizeStats(conv.Result.Stats))
			return nil
		},
	}

	cmd.Flags().StringVar(&colorMode, "color", colorAuto, "Highlight on-screen cues: auto, always, or never")
	return cmd
}

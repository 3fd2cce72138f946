package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"narrator/internal/api"
	"narrator/internal/config"
	"narrator/internal/cuesheet"
	"narrator/internal/fileutil"
	"narrator/internal/history"
	"narrator/internal/manuscript"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var toStdout bool
	var overwrite bool
	var cuesheetPath string
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "convert <input|->",
		Short: "Convert a transcript export into a narration manuscript",
		Long: `Convert a transcript export into a narration manuscript.

The manuscript is written next to the input (or into paths.output_dir) as
<name><convert.output_suffix>.txt. Pass "-" to read from stdin; stdin input
is written to stdout unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			svc, err := ctx.conversionService(noHistory)
			if err != nil {
				return err
			}

			raw, source, inputPath, err := readInput(cmd, args[0])
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

			out := cmd.OutOrStdout()
			target := ""
			if toStdout || (inputPath == "" && strings.TrimSpace(outputPath) == "") {
				if _, err := io.WriteString(out, conv.Result.Text); err != nil {
					return err
				}
				if !strings.HasSuffix(conv.Result.Text, "\n") {
					fmt.Fprintln(out)
				}
			} else {
				target, err = resolveOutputPath(cfg, outputPath, inputPath, source)
				if err != nil {
					return err
				}
				if err := writeOutput(target, []byte(conv.Result.Text), overwrite || cfg.Convert.Overwrite); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s (%s)\n", target, summarizeStats(conv.Result.Stats))
			}

			if path := strings.TrimSpace(cuesheetPath); path != "" {
				written, err := writeCuesheet(cfg, path, conv, overwrite || cfg.Convert.Overwrite)
				if err != nil {
					return err
				}
				if target != "" {
					fmt.Fprintf(out, "Wrote cue sheet %s\n", written)
				} else {
					fmt.Fprintf(cmd.ErrOrStderr(), "Wrote cue sheet %s\n", written)
				}
			}

			svc.Record(cmd.Context(), conv, target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the manuscript to this path")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Write the manuscript to stdout instead of a file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing output file")
	cmd.Flags().StringVar(&cuesheetPath, "cuesheet", "", "Also export an .xlsx cue sheet to this path")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this conversion in history")
	return cmd
}

func resolveOutputPath(cfg *config.Config, explicit, inputPath, source string) (string, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return config.ExpandPath(explicit)
	}
	dir := cfg.Paths.OutputDir
	if dir == "" && inputPath != "" {
		dir = filepath.Dir(inputPath)
	}
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, manuscript.OutputName(source, cfg.Convert.OutputSuffix)), nil
}

func writeOutput(path string, data []byte, overwrite bool) error {
	if err := fileutil.WriteFileAtomic(path, data, 0o644, overwrite); err != nil {
		if errors.Is(err, fileutil.ErrExists) {
			return fmt.Errorf("%w (use --overwrite to replace it)", err)
		}
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeCuesheet(cfg *config.Config, path string, conv *api.Conversion, overwrite bool) (string, error) {
	target, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve cue sheet path: %w", err)
	}
	var buf bytes.Buffer
	opts := cuesheet.Options{
		FontFamily:     cfg.Cuesheet.FontFamily,
		FontSize:       cfg.Cuesheet.FontSize,
		HighlightColor: cfg.Cuesheet.HighlightColor,
	}
	if err := cuesheet.Write(&buf, manuscript.ParseCues(conv.Result.Text), opts); err != nil {
		return "", fmt.Errorf("build cue sheet: %w", err)
	}
	if err := writeOutput(target, buf.Bytes(), overwrite); err != nil {
		return "", err
	}
	return target, nil
}

func summarizeStats(stats manuscript.Stats) string {
	return fmt.Sprintf("%d narration, %d on-screen, %d dropped", stats.NarrationCues, stats.OnScreenCues, stats.DroppedLines)
}

// Package cuesheet exports parsed manuscript cues as an xlsx workbook.
package cuesheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"narrator/internal/manuscript"
)

// SheetName is the worksheet that holds the cue table.
const SheetName = "Cues"

// ContentType is the MIME type of the written workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Options controls workbook styling.
type Options struct {
	FontFamily     string
	FontSize       float64
	HighlightColor string
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.FontFamily) == "" {
		o.FontFamily = "Hiragino Maru Gothic Pro"
	}
	if o.FontSize <= 0 {
		o.FontSize = 10.5
	}
	if strings.TrimSpace(o.HighlightColor) == "" {
		o.HighlightColor = "#808080"
	}
	return o
}

var headers = []string{"#", "Cue", "Marker", "Text"}

// Write renders cues to w. On-screen cues get the highlight fill.
func Write(w io.Writer, cues []manuscript.Cue, opts Options) error {
	opts = opts.withDefaults()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	styles, err := newStyles(f, opts)
	if err != nil {
		return err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := f.SetCellStyle(SheetName, "A1", "D1", styles.header); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, cue := range cues {
		row := i + 2
		values := []any{i + 1, cue.Number, string(cue.Marker), cue.Text()}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
		style := styles.body
		if cue.Marker == manuscript.MarkerOnScreen {
			style = styles.onScreen
		}
		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(len(headers), row)
		if err := f.SetCellStyle(SheetName, first, last, style); err != nil {
			return fmt.Errorf("style row %d: %w", row, err)
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 6)
	_ = f.SetColWidth(SheetName, "B", "B", 10)
	_ = f.SetColWidth(SheetName, "C", "C", 8)
	_ = f.SetColWidth(SheetName, "D", "D", 80)
	_ = f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

type styleSet struct {
	header   int
	body     int
	onScreen int
}

func newStyles(f *excelize.File, opts Options) (styleSet, error) {
	font := func(bold bool) *excelize.Font {
		return &excelize.Font{Family: opts.FontFamily, Size: opts.FontSize, Bold: bold}
	}
	align := &excelize.Alignment{Vertical: "top", WrapText: true}

	var (
		set styleSet
		err error
	)
	if set.header, err = f.NewStyle(&excelize.Style{Font: font(true), Alignment: align}); err != nil {
		return styleSet{}, fmt.Errorf("header style: %w", err)
	}
	if set.body, err = f.NewStyle(&excelize.Style{Font: font(false), Alignment: align}); err != nil {
		return styleSet{}, fmt.Errorf("body style: %w", err)
	}
	set.onScreen, err = f.NewStyle(&excelize.Style{
		Font:      font(false),
		Alignment: align,
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{opts.HighlightColor}},
	})
	if err != nil {
		return styleSet{}, fmt.Errorf("highlight style: %w", err)
	}
	return set, nil
}

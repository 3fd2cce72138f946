package api

import (
	"narrator/internal/history"
	"narrator/internal/manuscript"
)

// FromStats converts pipeline statistics to their API representation.
func FromStats(stats manuscript.Stats) StatsSummary {
	return StatsSummary{
		InputLines:         stats.InputLines,
		OutputLines:        stats.OutputLines,
		NarrationCues:      stats.NarrationCues,
		OnScreenCues:       stats.OnScreenCues,
		RepeatedNumbers:    stats.RepeatedNumbers,
		DroppedLines:       stats.DroppedLines,
		CollapsedBlankRuns: stats.CollapsedBlankRuns,
	}
}

// FromEntry converts a history entry to its API representation.
func FromEntry(entry history.Entry) ConversionRecord {
	dto := ConversionRecord{
		ID:          entry.ID,
		Adapter:     entry.Adapter,
		Source:      entry.Source,
		Target:      entry.Target,
		InputBytes:  entry.InputBytes,
		OutputBytes: entry.OutputBytes,
		Stats:       FromStats(entry.Stats),
	}
	if !entry.CreatedAt.IsZero() {
		dto.CreatedAt = entry.CreatedAt.UTC().Format(dateTimeFormat)
	}
	return dto
}

// FromEntries converts a slice of history entries into API DTOs. The result
// is never nil so it encodes as an empty JSON array.
func FromEntries(entries []history.Entry) []ConversionRecord {
	out := make([]ConversionRecord, 0, len(entries))
	for _, entry := range entries {
		out = append(out, FromEntry(entry))
	}
	return out
}

// NewConvertResponse builds the JSON reply for a finished conversion.
func NewConvertResponse(conv *Conversion) ConvertResponse {
	highlights := manuscript.Highlights(conv.Result.Text)
	if highlights == nil {
		highlights = []manuscript.HighlightSpan{}
	}
	return ConvertResponse{
		ID:         conv.ID,
		Source:     conv.Source,
		Manuscript: conv.Result.Text,
		Stats:      FromStats(conv.Result.Stats),
		Highlights: highlights,
	}
}

package api

import "narrator/internal/manuscript"

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// StatsSummary mirrors manuscript.Stats in a transport-friendly format.
type StatsSummary struct {
	InputLines         int `json:"inputLines"`
	OutputLines        int `json:"outputLines"`
	NarrationCues      int `json:"narrationCues"`
	OnScreenCues       int `json:"onScreenCues"`
	RepeatedNumbers    int `json:"repeatedNumbers"`
	DroppedLines       int `json:"droppedLines"`
	CollapsedBlankRuns int `json:"collapsedBlankRuns"`
}

// ConversionRecord describes a recorded conversion.
type ConversionRecord struct {
	ID          string       `json:"id"`
	Adapter     string       `json:"adapter"`
	Source      string       `json:"source"`
	Target      string       `json:"target,omitempty"`
	InputBytes  int64        `json:"inputBytes"`
	OutputBytes int64        `json:"outputBytes"`
	Stats       StatsSummary `json:"stats"`
	CreatedAt   string       `json:"createdAt,omitempty"`
}

// ConvertResponse is returned by POST /api/convert?format=json.
type ConvertResponse struct {
	ID         string                     `json:"id"`
	Source     string                     `json:"source"`
	Manuscript string                     `json:"manuscript"`
	Stats      StatsSummary               `json:"stats"`
	Highlights []manuscript.HighlightSpan `json:"highlights"`
}

// HistoryResponse wraps a page of recorded conversions.
type HistoryResponse struct {
	Conversions []ConversionRecord `json:"conversions"`
}

// ServerStatus reports runtime information about the upload server.
type ServerStatus struct {
	Version           string `json:"version"`
	StartedAt         string `json:"startedAt"`
	UptimeSeconds     int64  `json:"uptimeSeconds"`
	ConversionsServed int64  `json:"conversionsServed"`
	HistoryEnabled    bool   `json:"historyEnabled"`
	HistoryPath       string `json:"historyPath,omitempty"`
	LockFilePath      string `json:"lockFilePath"`
	MaxUploadBytes    int64  `json:"maxUploadBytes"`
}

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

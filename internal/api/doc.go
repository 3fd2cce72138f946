// Package api defines wire-format types and the conversion facade shared by
// the CLI and the HTTP server.
//
// # Key Types
//
// ConversionService: decodes a transcript, runs the manuscript pipeline, logs
// the outcome, and appends it to the history ledger when one is configured.
//
// HistoryService: read-only access to recorded conversions as DTOs.
//
// ConversionRecord, ConvertResponse, HistoryResponse, ServerStatus: transport
// payloads for the HTTP API and the CLI's --json output.
//
// # Design Notes
//
// DTOs use camelCase JSON tags for JavaScript consumers. Timestamps use RFC3339
// with milliseconds. History failures never fail a conversion; they are logged
// as warnings.
package api

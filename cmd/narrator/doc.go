// Package main hosts the narrator CLI entrypoint and command graph.
//
// The Cobra command tree turns transcript exports into narration manuscripts
// from files or stdin, renders previews and cue tables in the terminal, runs
// the HTTP upload server, and scaffolds configuration. Conversion itself lives
// in internal/manuscript behind api.ConversionService so every command and
// the server share one code path.
package main

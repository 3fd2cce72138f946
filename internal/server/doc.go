// Package server exposes the manuscript pipeline over HTTP.
//
// POST /api/convert accepts a transcript either as the multipart field "file"
// or as the raw request body and answers with plain text, a JSON document, or
// an xlsx cue sheet depending on ?format. GET /api/history and GET /api/status
// report recorded conversions and runtime state.
//
// A running server holds an exclusive flock on paths.state_dir/serve.lock so
// two servers never share a history database. When server.token is set every
// endpoint requires "Authorization: Bearer <token>".
package server

// Package textutil provides filename helpers shared by the CLI and the upload
// server.
package textutil

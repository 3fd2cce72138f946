package history

import (
	"time"

	"narrator/internal/manuscript"
)

// Adapters that record conversions.
const (
	AdapterCLI  = "cli"
	AdapterHTTP = "http"
)

// Entry is one recorded conversion.
type Entry struct {
	ID          string           `json:"id"`
	Adapter     string           `json:"adapter"`
	Source      string           `json:"source"`
	Target      string           `json:"target,omitempty"`
	InputBytes  int64            `json:"input_bytes"`
	OutputBytes int64            `json:"output_bytes"`
	Stats       manuscript.Stats `json:"stats"`
	CreatedAt   time.Time        `json:"created_at"`
}

package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"narrator/internal/history"
	"narrator/internal/logging"
	"narrator/internal/manuscript"
)

// Recorder persists finished conversions.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) (history.Entry, error)
}

// ConversionService runs the manuscript pipeline for every adapter.
type ConversionService struct {
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewConversionService constructs a ConversionService. A nil recorder
// disables history.
func NewConversionService(recorder Recorder, logger *slog.Logger) *ConversionService {
	return &ConversionService{
		recorder: recorder,
		logger:   logging.NewComponentLogger(logger, "convert"),
		now:      time.Now,
	}
}

// ConvertRequest is one transcript to convert.
type ConvertRequest struct {
	Adapter string
	Source  string
	Raw     []byte
}

// Conversion is a finished pipeline run.
type Conversion struct {
	ID         string
	Adapter    string
	Source     string
	InputBytes int64
	Result     manuscript.Result
	Elapsed    time.Duration
}

// Convert decodes and converts the request. Decoding failures wrap
// manuscript.ErrInvalidEncoding.
func (s *ConversionService) Convert(ctx context.Context, req ConvertRequest) (*Conversion, error) {
	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = "transcript"
	}
	conv := &Conversion{
		ID:         uuid.NewString(),
		Adapter:    req.Adapter,
		Source:     source,
		InputBytes: int64(len(req.Raw)),
	}
	ctx = logging.WithConversionID(logging.WithAdapter(ctx, req.Adapter), conv.ID)
	logger := logging.WithContext(ctx, s.logger)

	start := s.now()
	result, err := manuscript.ConvertBytes(req.Raw)
	if err != nil {
		logging.WarnWithContext(logger, "transcript rejected", "decode_failed",
			logging.String(logging.FieldSource, source),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "export the transcript as UTF-8 or UTF-16 text"),
			logging.String(logging.FieldImpact, "no manuscript produced"),
		)
		return nil, fmt.Errorf("convert %s: %w", source, err)
	}
	conv.Result = result
	conv.Elapsed = s.now().Sub(start)

	logger.Info("transcript converted",
		logging.String(logging.FieldSource, source),
		logging.Int64("input_bytes", conv.InputBytes),
		logging.Int("input_lines", result.Stats.InputLines),
		logging.Int("output_lines", result.Stats.OutputLines),
		logging.Int("narration_cues", result.Stats.NarrationCues),
		logging.Int("on_screen_cues", result.Stats.OnScreenCues),
		logging.Int("dropped_lines", result.Stats.DroppedLines),
		logging.Duration("elapsed", conv.Elapsed),
	)
	return conv, nil
}

// Record appends the conversion to history. Failures are logged and swallowed.
func (s *ConversionService) Record(ctx context.Context, conv *Conversion, target string) {
	if s.recorder == nil || conv == nil {
		return
	}
	ctx = logging.WithConversionID(logging.WithAdapter(ctx, conv.Adapter), conv.ID)
	_, err := s.recorder.Record(ctx, history.Entry{
		ID:          conv.ID,
		Adapter:     conv.Adapter,
		Source:      conv.Source,
		Target:      target,
		InputBytes:  conv.InputBytes,
		OutputBytes: int64(len(conv.Result.Text)),
		Stats:       conv.Result.Stats,
		CreatedAt:   s.now(),
	})
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, s.logger), "conversion history not recorded", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check paths.state_dir permissions or set convert.record_history = false"),
			logging.String(logging.FieldImpact, "conversion missing from narrator history"),
		)
	}
}

// HistoryEnabled reports whether conversions are being recorded.
func (s *ConversionService) HistoryEnabled() bool {
	return s != nil && s.recorder != nil
}

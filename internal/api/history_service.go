package api

import (
	"context"

	"narrator/internal/history"
)

// HistoryReader abstracts history persistence needed for API queries.
type HistoryReader interface {
	List(ctx context.Context, limit int) ([]history.Entry, error)
}

// HistoryService exposes read-only history operations returning API DTOs.
type HistoryService struct {
	store HistoryReader
}

// NewHistoryService constructs a HistoryService around the provided reader.
func NewHistoryService(store HistoryReader) *HistoryService {
	if store == nil {
		return nil
	}
	return &HistoryService{store: store}
}

// List returns the most recent conversions, newest first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]ConversionRecord, error) {
	if s == nil || s.store == nil {
		return []ConversionRecord{}, nil
	}
	entries, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	return FromEntries(entries), nil
}

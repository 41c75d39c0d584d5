package store

import (
	"context"
	"encoding/json"
	"fmt"

	"intelhub/types"
)

// StartRun creates the ledger entry for a new pipeline run. The run ID is a
// timestamp-derived token, so concurrent runs started in different seconds
// get distinct records.
func (s *Store) StartRun(ctx context.Context, mode string) (types.RunRecord, error) {
	now := s.now()
	rec := types.RunRecord{
		ID:        now.Format("20060102T150405Z"),
		StartedAt: now,
		Status:    types.RunStatusRunning,
		Mode:      mode,
		Model:     s.model,
	}
	if err := s.writeRun(ctx, rec); err != nil {
		return types.RunRecord{}, err
	}
	return rec, nil
}

// FinishRun finalizes a run record with its final status and counters. The
// record is immutable after this; the core never reads it back.
func (s *Store) FinishRun(ctx context.Context, rec types.RunRecord) error {
	rec.FinishedAt = s.now()
	return s.writeRun(ctx, rec)
}

func (s *Store) writeRun(ctx context.Context, rec types.RunRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode run record: %w", err)
	}
	if err := s.client.Set(ctx, runKeyPrefix+rec.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("run ledger write failed: %w", err)
	}
	return nil
}

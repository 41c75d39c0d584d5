package store

import (
	"context"
	"encoding/json"
	"fmt"

	"intelhub/types"

	"github.com/redis/go-redis/v9"
)

// DigestDocID builds the deterministic document ID for a (date, department)
// pair. Composing the same pair twice always targets the same key.
func DigestDocID(dateLabel, department string) string {
	return SanitizeDocID(dateLabel + "__" + department)
}

// SaveDigest persists a digest under its deterministic key, overwriting any
// prior document for the same (date, department). The per-department index
// makes "latest digest for department" a cheap query.
func (s *Store) SaveDigest(ctx context.Context, d types.Digest) error {
	if d.ID == "" {
		d.ID = DigestDocID(d.Date, d.Department)
	}

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode digest: %w", err)
	}

	if err := s.client.Set(ctx, newsletterKeyPrefix+d.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("digest write failed: %w", err)
	}
	if err := s.client.ZAdd(ctx, newslettersByDept+SanitizeDocID(d.Department), redis.Z{
		Score:  timeScore(d.CreatedAt),
		Member: d.ID,
	}).Err(); err != nil {
		return fmt.Errorf("digest index update failed: %w", err)
	}
	return nil
}

// LatestDigestForDepartment returns the most recently created digest for the
// department, or nil when none exists.
func (s *Store) LatestDigestForDepartment(ctx context.Context, department string) (*types.Digest, error) {
	ids, err := s.client.ZRevRange(ctx, newslettersByDept+SanitizeDocID(department), 0, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("digest index query failed: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	raw, err := s.client.Get(ctx, newsletterKeyPrefix+ids[0]).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("digest load failed: %w", err)
	}

	var d types.Digest
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, fmt.Errorf("failed to decode digest %s: %w", ids[0], err)
	}
	return &d, nil
}

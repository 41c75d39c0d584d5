package store

import (
	"context"
	"encoding/json"
	"fmt"

	"intelhub/config"
	"intelhub/types"
)

// SaveSource creates or updates a feed source descriptor. Sources are
// configuration, owned outside the pipeline; the core only reads them.
func (s *Store) SaveSource(ctx context.Context, src types.Source) error {
	if src.Name == "" || src.URL == "" {
		return fmt.Errorf("source requires a name and a url")
	}

	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("failed to encode source: %w", err)
	}

	key := sourceKeyPrefix + SanitizeDocID(src.Name)
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("source write failed: %w", err)
	}
	if err := s.client.SAdd(ctx, sourcesIndex, key).Err(); err != nil {
		return fmt.Errorf("source index update failed: %w", err)
	}
	return nil
}

// ListEnabledFeedSources returns every source with enabled=true and the feed
// type; everything else is ignored by the pipeline.
func (s *Store) ListEnabledFeedSources(ctx context.Context) ([]types.Source, error) {
	keys, err := s.client.SMembers(ctx, sourcesIndex).Result()
	if err != nil {
		return nil, fmt.Errorf("source index query failed: %w", err)
	}
	if len(keys) == 0 {
		return []types.Source{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("source load failed: %w", err)
	}

	sources := make([]types.Source, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var src types.Source
		if err := json.Unmarshal([]byte(raw), &src); err != nil {
			continue
		}
		if src.Enabled && src.Type == config.SourceTypeFeed && src.URL != "" {
			sources = append(sources, src)
		}
	}
	return sources, nil
}

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"intelhub/config"
	"intelhub/types"

	"github.com/redis/go-redis/v9"
)

// ArticleExists probes whether an article for this exact URL has already
// been stored. Used as a cheap pre-check before paying for an analyzer call.
func (s *Store) ArticleExists(ctx context.Context, url string) (bool, error) {
	n, err := s.client.Exists(ctx, articleKeyPrefix+types.ContentID(url)).Result()
	if err != nil {
		return false, fmt.Errorf("article existence check failed: %w", err)
	}
	return n > 0, nil
}

// UpsertArticle writes a new article keyed by content ID and returns true if
// it was inserted. The write is an atomic create-if-absent (SETNX), so a
// concurrent run racing on the same URL cannot create a second document or
// overwrite the first: the first write for a URL is authoritative.
//
// The ingestion timestamp is assigned here, at write time, not from the
// feed's publish time.
func (s *Store) UpsertArticle(ctx context.Context, item types.CandidateItem, analysis types.Analysis, sourceName string) (bool, error) {
	id := types.ContentID(item.URL)
	now := s.now()

	article := types.Article{
		ID:         id,
		Title:      analysis.ImprovedTitle,
		URL:        item.URL,
		Source:     sourceName,
		IngestedAt: now,
		Analysis: types.StoredAnalysis{
			Department:      validDepartment(analysis.Department),
			Summary:         analysis.Summary,
			SuggestedAction: analysis.SuggestedAction,
			Score:           analysis.Score,
			Topics:          truncateTopics(analysis.Topics),
			Model:           s.model,
		},
		IsRelevant: analysis.Score >= s.minScore,
	}

	data, err := json.Marshal(article)
	if err != nil {
		return false, fmt.Errorf("failed to encode article: %w", err)
	}

	inserted, err := s.client.SetNX(ctx, articleKeyPrefix+id, data, 0).Result()
	if err != nil {
		return false, fmt.Errorf("article write failed: %w", err)
	}
	if !inserted {
		// Existing document wins; no overwrite
		return false, nil
	}

	// Recency index, updated only when the document was actually created
	if err := s.client.ZAdd(ctx, articlesByIngested, redis.Z{
		Score:  timeScore(now),
		Member: id,
	}).Err(); err != nil {
		return true, fmt.Errorf("article stored but recency index update failed: %w", err)
	}
	return true, nil
}

// QueryRecentArticles returns up to limit articles, newest-ingested first.
func (s *Store) QueryRecentArticles(ctx context.Context, limit int) ([]types.Article, error) {
	if limit <= 0 {
		limit = config.DefaultRecentLimit
	}
	ids, err := s.client.ZRevRange(ctx, articlesByIngested, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("recency index query failed: %w", err)
	}
	return s.loadArticles(ctx, ids)
}

// QueryArticlesSince returns articles ingested at or after since (the
// boundary is inclusive), newest first, capped at limit.
func (s *Store) QueryArticlesSince(ctx context.Context, since time.Time, limit int) ([]types.Article, error) {
	if limit <= 0 {
		limit = config.DefaultRecentLimit
	}
	ids, err := s.client.ZRevRangeByScore(ctx, articlesByIngested, &redis.ZRangeBy{
		Min:   fmt.Sprintf("%f", timeScore(since)),
		Max:   "+inf",
		Count: int64(limit),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("window query failed: %w", err)
	}
	return s.loadArticles(ctx, ids)
}

func (s *Store) loadArticles(ctx context.Context, ids []string) ([]types.Article, error) {
	if len(ids) == 0 {
		return []types.Article{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = articleKeyPrefix + id
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("article load failed: %w", err)
	}

	articles := make([]types.Article, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry without a document; skip
			continue
		}
		var a types.Article
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			continue
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// validDepartment returns the department unchanged when it is in the allowed
// set, otherwise the fixed default. Invalid values are substituted, never
// rejected.
func validDepartment(dept string) string {
	for _, d := range config.Departments {
		if dept == d {
			return dept
		}
	}
	return config.DefaultDepartment
}

// truncateTopics keeps at most the first MaxTopics tags.
func truncateTopics(topics []string) []string {
	if len(topics) <= config.MaxTopics {
		return topics
	}
	return topics[:config.MaxTopics]
}

package systems

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ctisdesk/autopilot/internal/workflow"
	"github.com/ctisdesk/autopilot/pkg/logging"
)

const articleListKey = "kb:articles"

// RedisKnowledgeBase serves knowledge-base searches from articles stored as a
// Redis list of JSON documents, so the article set can be updated without a
// redeploy. Scoring is identical to the demo backend.
type RedisKnowledgeBase struct {
	client *redis.Client
	logger *logging.Logger
}

var _ workflow.Knowledge = (*RedisKnowledgeBase)(nil)

// NewRedisKnowledgeBase creates a Redis-backed knowledge base.
func NewRedisKnowledgeBase(client *redis.Client, logger *logging.Logger) *RedisKnowledgeBase {
	if client == nil {
		panic("systems: redis client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisKnowledgeBase{client: client, logger: logger}
}

// SeedArticles replaces the stored article set atomically.
func (r *RedisKnowledgeBase) SeedArticles(ctx context.Context, articles []Article) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, articleListKey)
	if len(articles) > 0 {
		args := make([]interface{}, len(articles))
		for i, a := range articles {
			raw, err := json.Marshal(a)
			if err != nil {
				return fmt.Errorf("systems: marshal article %q: %w", a.Title, err)
			}
			args[i] = raw
		}
		pipe.RPush(ctx, articleListKey, args...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("systems: failed to seed articles: %w", err)
	}
	r.logger.Info("knowledge base seeded", "articles", len(articles))
	return nil
}

// SeedDefaultsIfEmpty writes the default article set unless one is already stored.
func (r *RedisKnowledgeBase) SeedDefaultsIfEmpty(ctx context.Context) error {
	n, err := r.client.LLen(ctx, articleListKey).Result()
	if err != nil {
		return fmt.Errorf("systems: check article count: %w", err)
	}
	if n > 0 {
		return nil
	}
	return r.SeedArticles(ctx, DefaultArticles())
}

// SearchKnowledgeBase loads the stored articles and returns the best match.
func (r *RedisKnowledgeBase) SearchKnowledgeBase(ctx context.Context, query string) (workflow.KBHit, error) {
	raws, err := r.client.LRange(ctx, articleListKey, 0, -1).Result()
	if err != nil {
		return workflow.KBHit{}, fmt.Errorf("systems: load articles: %w", err)
	}

	articles := make([]Article, 0, len(raws))
	for _, raw := range raws {
		var a Article
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			return workflow.KBHit{}, fmt.Errorf("systems: decode stored article: %w", err)
		}
		articles = append(articles, a)
	}

	best, relevance, matched, ok := bestMatch(articles, query)
	hit := workflow.KBHit{}
	hit.Success = true
	if !ok {
		hit.Message = "knowledge base is empty"
		return hit, nil
	}
	hit.Found = true
	hit.Title = best.Title
	hit.URL = best.URL
	hit.Relevance = relevance
	hit.Message = "Knowledge base article found"
	hit.Details = map[string]any{"query": query, "matchScore": matched, "totalResults": len(articles)}
	return hit, nil
}

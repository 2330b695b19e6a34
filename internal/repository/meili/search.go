// Package meili implements SearchRepository on a Meilisearch index of catalog activities.
package meili

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/meilisearch/meilisearch-go"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
	"github.com/asyncopatedsoul/health-protocol/pkg/meili"
)

const (
	DefaultIndex = "activities"
	primaryKey   = "id"
)

// indexSettings tunes typo-tolerant matching on activity names first.
var indexSettings = meilisearch.Settings{
	SearchableAttributes: []string{"name", "description", "category", "muscleGroups", "equipment"},
	SortableAttributes:   []string{"name"},
	FilterableAttributes: []string{"category", "muscleGroups", "equipment"},
	RankingRules:         []string{"words", "typo", "proximity", "attribute", "sort", "exactness"},
}

type implRepository struct {
	client meilisearch.ServiceManager
	index  string
	l      log.Logger
	wait   time.Duration
}

// New creates a SearchRepository over index (DefaultIndex when empty).
func New(client meilisearch.ServiceManager, index string, l log.Logger) repository.SearchRepository {
	if index == "" {
		index = DefaultIndex
	}
	return &implRepository{client: client, index: index, l: l, wait: 100 * time.Millisecond}
}

func (r *implRepository) Health(ctx context.Context) bool {
	health, err := r.client.HealthWithContext(ctx)
	if err != nil {
		r.l.Warnf(ctx, "meili repository: health check failed: %v", err)
		return false
	}
	if health.Status != "available" {
		r.l.Warnf(ctx, "meili repository: status %q", health.Status)
		return false
	}
	return true
}

// searchHit is an activity document plus the score Meilisearch attaches with showRankingScore.
type searchHit struct {
	model.Activity
	RankingScore *float64 `json:"_rankingScore"`
}

func (r *implRepository) Search(ctx context.Context, query string, limit int) ([]repository.SearchHit, error) {
	resp, err := r.client.Index(r.index).SearchWithContext(ctx, query, &meilisearch.SearchRequest{
		Limit:            int64(limit),
		ShowRankingScore: true,
	})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	hits := make([]repository.SearchHit, 0, len(resp.Hits))
	for _, h := range resp.Hits {
		raw, err := json.Marshal(h)
		if err != nil {
			r.l.Warnf(ctx, "meili repository: skipping unencodable hit: %v", err)
			continue
		}
		var hit searchHit
		if err := json.Unmarshal(raw, &hit); err != nil {
			r.l.Warnf(ctx, "meili repository: skipping undecodable hit: %v", err)
			continue
		}
		var score float64
		if hit.RankingScore != nil {
			score = *hit.RankingScore
		}
		hits = append(hits, repository.SearchHit{Activity: hit.Activity, Score: score})
	}
	return hits, nil
}

func (r *implRepository) AddDocuments(ctx context.Context, activities []model.Activity) error {
	if len(activities) == 0 {
		return nil
	}
	docs := make([]model.Activity, len(activities))
	for i, a := range activities {
		a.CreatedAtMs = 0
		docs[i] = a
	}
	if _, err := r.client.Index(r.index).AddDocumentsWithContext(ctx, docs, primaryKey); err != nil {
		return fmt.Errorf("add %d documents: %w", len(docs), err)
	}
	return nil
}

func (r *implRepository) RemoveDocuments(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.client.Index(r.index).DeleteDocumentsWithContext(ctx, ids); err != nil {
		return fmt.Errorf("remove %d documents: %w", len(ids), err)
	}
	return nil
}

// ConfigureIndex creates the index if needed and applies the ranking settings, waiting for
// the settings task to finish.
func (r *implRepository) ConfigureIndex(ctx context.Context) error {
	if _, err := r.client.CreateIndexWithContext(ctx, &meilisearch.IndexConfig{Uid: r.index, PrimaryKey: primaryKey}); err != nil {
		// index_already_exists surfaces later as a failed task, which is fine.
		r.l.Debugf(ctx, "meili repository: create index: %v", err)
	}

	task, err := r.client.Index(r.index).UpdateSettingsWithContext(ctx, &indexSettings)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	if _, err := meili.WaitForTask(ctx, r.client, task.TaskUID, r.wait); err != nil {
		return fmt.Errorf("wait for settings: %w", err)
	}
	return nil
}

func (r *implRepository) DocumentCount(ctx context.Context) (int, error) {
	stats, err := r.client.Index(r.index).GetStatsWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("index stats: %w", err)
	}
	return int(stats.NumberOfDocuments), nil
}

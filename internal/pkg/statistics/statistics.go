// Package statistics serves the admin dashboard aggregates through a
// short-lived Redis cache so the dashboard does not hammer the tag
// table.
package statistics

import (
	"encoding/json"
	"log"
	"time"

	"github.com/guardtag/GuardTag/app/repository"
	"github.com/guardtag/GuardTag/internal/pkg/cache"
)

const (
	CacheKeyTagStats = "statistics:tags:stats"
	CacheExpiration  = 5 * time.Minute
)

// GetTagStats returns the dashboard aggregates, reading through the
// cache. Cache failures degrade to a direct query; they are never
// surfaced.
func GetTagStats(repo repository.TagRepository) (*repository.TagStats, error) {
	if raw, err := cache.Get(CacheKeyTagStats); err == nil {
		var stats repository.TagStats
		if err := json.Unmarshal([]byte(raw), &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := repo.GetStats()
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := cache.Set(CacheKeyTagStats, payload, CacheExpiration); err != nil {
			log.Printf("Warning: could not cache tag stats: %v", err)
		}
	}

	return stats, nil
}

// InvalidateTagStats drops the cached aggregates. Called after writes
// that change the counters (issuance, activation, subscription).
func InvalidateTagStats() {
	if err := cache.Delete(CacheKeyTagStats); err != nil {
		log.Printf("Warning: could not invalidate tag stats cache: %v", err)
	}
}

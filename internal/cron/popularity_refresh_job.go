package cron

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/velvetcrown/wigmatch-backend/pkg/logger"
)

const (
	popularityJobName    = "popularity_refresh"
	defaultPopularityTTL = 48 * time.Hour
)

// popularityStore is the slice of the redis client the refresh job needs.
type popularityStore interface {
	ScanKeys(ctx context.Context, pattern string) ([]string, error)
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	EngagementPattern(tenantID string) string
	PopularityKey(tenantID, variantID string) string
}

// PopularityRefreshJob folds raw engagement counters into the normalized
// popularity scores the scoring engine reads. Counters are written by the
// engagement consumer; this job divides each by the tenant's current maximum
// so scores stay in [0,1] as traffic grows.
type PopularityRefreshJob struct {
	store popularityStore
	logg  *logger.Logger
	ttl   time.Duration
}

// NewPopularityRefreshJob builds the refresh job.
func NewPopularityRefreshJob(store popularityStore, logg *logger.Logger, ttl time.Duration) (*PopularityRefreshJob, error) {
	if store == nil {
		return nil, fmt.Errorf("store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if ttl <= 0 {
		ttl = defaultPopularityTTL
	}
	return &PopularityRefreshJob{store: store, logg: logg, ttl: ttl}, nil
}

// Name implements Job.
func (j *PopularityRefreshJob) Name() string {
	return popularityJobName
}

// Run implements Job.
func (j *PopularityRefreshJob) Run(ctx context.Context) error {
	keys, err := j.store.ScanKeys(ctx, j.store.EngagementPattern(""))
	if err != nil {
		return fmt.Errorf("scanning engagement counters: %w", err)
	}
	if len(keys) == 0 {
		j.logg.Info(ctx, "no engagement counters to fold")
		return nil
	}

	type counter struct {
		variantID string
		count     int64
	}
	byTenant := map[string][]counter{}
	for _, key := range keys {
		tenantID, variantID, ok := splitEngagementKey(key)
		if !ok {
			continue
		}
		raw, err := j.store.Get(ctx, key)
		if err != nil {
			// Keys can expire between the scan and the read.
			continue
		}
		count, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || count < 0 {
			j.logg.Warn(j.logg.WithField(ctx, "key", key), "skipping malformed engagement counter")
			continue
		}
		byTenant[tenantID] = append(byTenant[tenantID], counter{variantID: variantID, count: count})
	}

	written := 0
	for tenantID, counters := range byTenant {
		var max int64
		for _, c := range counters {
			if c.count > max {
				max = c.count
			}
		}
		if max == 0 {
			continue
		}
		for _, c := range counters {
			score := float64(c.count) / float64(max)
			value := strconv.FormatFloat(score, 'f', 4, 64)
			if err := j.store.Set(ctx, j.store.PopularityKey(tenantID, c.variantID), value, j.ttl); err != nil {
				return fmt.Errorf("writing popularity score: %w", err)
			}
			written++
		}
	}

	j.logg.Info(j.logg.WithFields(ctx, map[string]any{
		"counters": len(keys),
		"written":  written,
	}), "popularity scores refreshed")
	return nil
}

// splitEngagementKey unpacks "<ns>:engagement:<tenant>:<variant>".
func splitEngagementKey(key string) (tenantID, variantID string, ok bool) {
	parts := strings.Split(key, ":")
	if len(parts) != 4 {
		return "", "", false
	}
	if parts[2] == "" || parts[3] == "" {
		return "", "", false
	}
	return parts[2], parts[3], true
}

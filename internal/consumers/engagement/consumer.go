package engagement

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
	"github.com/velvetcrown/wigmatch-backend/pkg/logger"
)

// defaultCounterTTL keeps engagement counters alive long enough for the
// popularity refresh job to fold them in, then lets stale tenants decay.
const defaultCounterTTL = 30 * 24 * time.Hour

// actionWeights maps engagement actions to counter increments. A purchase is
// a much stronger signal than a browse.
var actionWeights = map[enums.EngagementAction]int64{
	enums.EngagementView:     1,
	enums.EngagementFavorite: 3,
	enums.EngagementPurchase: 5,
}

type counterStore interface {
	IncrBy(ctx context.Context, key string, delta int64, ttl time.Duration) (int64, error)
	EngagementKey(tenantID, variantID string) string
}

// Event is the wire payload published whenever a shopper interacts with a
// catalog variant.
type Event struct {
	EventID    string    `json:"event_id"`
	TenantID   string    `json:"tenant_id"`
	VariantID  string    `json:"variant_id"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Consumer folds variant engagement events into per-tenant Redis counters.
// The popularity refresh job later normalizes those counters into the scores
// the ranking pipeline reads.
type Consumer struct {
	store counterStore
	logg  *logger.Logger
	ttl   time.Duration
}

// NewConsumer builds a new engagement consumer.
func NewConsumer(store counterStore, logg *logger.Logger, ttl time.Duration) (*Consumer, error) {
	if store == nil {
		return nil, fmt.Errorf("counter store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if ttl <= 0 {
		ttl = defaultCounterTTL
	}
	return &Consumer{
		store: store,
		logg:  logg,
		ttl:   ttl,
	}, nil
}

// Process decodes a raw engagement message and increments the matching
// counter. Malformed messages return an error so the caller can nack them;
// unknown actions are acked and skipped so a new event type never wedges the
// subscription.
func (c *Consumer) Process(ctx context.Context, data []byte) error {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("decode engagement event: %w", err)
	}

	tenantID, err := uuid.Parse(event.TenantID)
	if err != nil {
		return fmt.Errorf("parse tenant id: %w", err)
	}
	variantID, err := uuid.Parse(event.VariantID)
	if err != nil {
		return fmt.Errorf("parse variant id: %w", err)
	}

	logCtx := c.logg.WithFields(ctx, map[string]any{
		"event_id":   event.EventID,
		"tenant_id":  tenantID.String(),
		"variant_id": variantID.String(),
		"action":     event.Action,
	})

	action, err := enums.ParseEngagementAction(event.Action)
	if err != nil {
		c.logg.Warn(logCtx, "skipping unrecognized engagement action")
		return nil
	}

	key := c.store.EngagementKey(tenantID.String(), variantID.String())
	total, err := c.store.IncrBy(ctx, key, actionWeights[action], c.ttl)
	if err != nil {
		c.logg.Error(logCtx, "failed to increment engagement counter", err)
		return fmt.Errorf("increment engagement counter: %w", err)
	}

	c.logg.Info(c.logg.WithFields(logCtx, map[string]any{"counter": total}), "engagement recorded")
	return nil
}

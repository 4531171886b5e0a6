package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"

	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
)

const (
	eventTypeServed = "recommendation.served"

	defaultPublishTimeout = 10 * time.Second
)

// ServedEvent records one served recommendation response for downstream
// analytics and popularity aggregation.
type ServedEvent struct {
	TenantID    string            `json:"tenant_id"`
	RequestID   string            `json:"request_id,omitempty"`
	ColorFamily enums.ColorFamily `json:"color_family"`
	ResultCount int               `json:"result_count"`
	Partial     bool              `json:"partial"`
	TopScore    float64           `json:"top_score"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

type publishResult interface {
	Get(ctx context.Context) (string, error)
}

type messagePublisher interface {
	Publish(ctx context.Context, msg *pubsub.Message) publishResult
}

// Publisher emits recommendation events. A Publisher built without a backing
// Pub/Sub publisher is disabled: every publish is a silent no-op, so callers
// never branch on whether eventing is configured.
type Publisher struct {
	pub     messagePublisher
	timeout time.Duration
}

// NewPublisher wraps a Pub/Sub publisher handle. p may be nil.
func NewPublisher(p *pubsub.Publisher) *Publisher {
	return &Publisher{pub: wrapPublisher(p), timeout: defaultPublishTimeout}
}

// PublishServed emits one recommendation.served event and waits for the
// broker acknowledgement.
func (p *Publisher) PublishServed(ctx context.Context, event ServedEvent) error {
	if p == nil || p.pub == nil {
		return nil
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal served event: %w", err)
	}

	msg := &pubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"event_type":  eventTypeServed,
			"tenant_id":   event.TenantID,
			"occurred_at": event.OccurredAt.Format(time.RFC3339Nano),
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	result := p.pub.Publish(publishCtx, msg)
	if result == nil {
		return fmt.Errorf("publisher returned nil result")
	}
	if _, err := result.Get(publishCtx); err != nil {
		return fmt.Errorf("publish served event: %w", err)
	}
	return nil
}

func wrapPublisher(p *pubsub.Publisher) messagePublisher {
	if p == nil {
		return nil
	}
	return &gcpPublisher{inner: p}
}

type gcpPublisher struct {
	inner *pubsub.Publisher
}

func (g *gcpPublisher) Publish(ctx context.Context, msg *pubsub.Message) publishResult {
	return g.inner.Publish(ctx, msg)
}

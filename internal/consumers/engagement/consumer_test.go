package engagement

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/velvetcrown/wigmatch-backend/pkg/logger"
)

type fakeCounterStore struct {
	counters map[string]int64
	ttls     map[string]time.Duration
	incrErr  error
}

func newFakeCounterStore() *fakeCounterStore {
	return &fakeCounterStore{
		counters: map[string]int64{},
		ttls:     map[string]time.Duration{},
	}
}

func (f *fakeCounterStore) IncrBy(_ context.Context, key string, delta int64, ttl time.Duration) (int64, error) {
	if f.incrErr != nil {
		return 0, f.incrErr
	}
	f.counters[key] += delta
	f.ttls[key] = ttl
	return f.counters[key], nil
}

func (f *fakeCounterStore) EngagementKey(tenantID, variantID string) string {
	return "wm:engagement:" + tenantID + ":" + variantID
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "engagement-test", Output: io.Discard})
}

func mustConsumer(t *testing.T, store counterStore) *Consumer {
	t.Helper()
	consumer, err := NewConsumer(store, testLogger(), 0)
	if err != nil {
		t.Fatalf("NewConsumer() error: %v", err)
	}
	return consumer
}

func encodeEvent(t *testing.T, event Event) []byte {
	t.Helper()
	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return data
}

func TestConsumerWeightsActions(t *testing.T) {
	store := newFakeCounterStore()
	consumer := mustConsumer(t, store)

	tenantID := uuid.NewString()
	variantID := uuid.NewString()
	for _, action := range []string{"view", "favorite", "purchase"} {
		data := encodeEvent(t, Event{
			EventID:    uuid.NewString(),
			TenantID:   tenantID,
			VariantID:  variantID,
			Action:     action,
			OccurredAt: time.Now().UTC(),
		})
		if err := consumer.Process(context.Background(), data); err != nil {
			t.Fatalf("Process(%s) error: %v", action, err)
		}
	}

	key := store.EngagementKey(tenantID, variantID)
	if got := store.counters[key]; got != 9 {
		t.Fatalf("expected counter 9 (1+3+5), got %d", got)
	}
	if store.ttls[key] != defaultCounterTTL {
		t.Fatalf("expected default ttl %v, got %v", defaultCounterTTL, store.ttls[key])
	}
}

func TestConsumerSkipsUnknownAction(t *testing.T) {
	store := newFakeCounterStore()
	consumer := mustConsumer(t, store)

	data := encodeEvent(t, Event{
		EventID:   uuid.NewString(),
		TenantID:  uuid.NewString(),
		VariantID: uuid.NewString(),
		Action:    "hovered",
	})
	if err := consumer.Process(context.Background(), data); err != nil {
		t.Fatalf("unknown action should be acked, got error: %v", err)
	}
	if len(store.counters) != 0 {
		t.Fatalf("unknown action should not touch counters")
	}
}

func TestConsumerRejectsMalformedEvents(t *testing.T) {
	store := newFakeCounterStore()
	consumer := mustConsumer(t, store)

	cases := []struct {
		name string
		data []byte
	}{
		{name: "invalid json", data: []byte("{not json")},
		{name: "bad tenant id", data: encodeEvent(t, Event{TenantID: "nope", VariantID: uuid.NewString(), Action: "view"})},
		{name: "bad variant id", data: encodeEvent(t, Event{TenantID: uuid.NewString(), VariantID: "", Action: "view"})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := consumer.Process(context.Background(), tc.data); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if len(store.counters) != 0 {
		t.Fatalf("malformed events should not touch counters")
	}
}

func TestConsumerSurfacesStoreFailure(t *testing.T) {
	store := newFakeCounterStore()
	store.incrErr = errors.New("redis down")
	consumer := mustConsumer(t, store)

	data := encodeEvent(t, Event{
		EventID:   uuid.NewString(),
		TenantID:  uuid.NewString(),
		VariantID: uuid.NewString(),
		Action:    "view",
	})
	if err := consumer.Process(context.Background(), data); err == nil {
		t.Fatalf("expected store failure to surface")
	}
}

func TestNewConsumerValidatesInputs(t *testing.T) {
	if _, err := NewConsumer(nil, testLogger(), 0); err == nil {
		t.Fatalf("expected error for nil store")
	}
	if _, err := NewConsumer(newFakeCounterStore(), nil, 0); err == nil {
		t.Fatalf("expected error for nil logger")
	}
}

package catalog

import (
	"context"
	"strconv"

	"github.com/google/uuid"
)

// popularityStore is the slice of the redis client popularity lookups use.
type popularityStore interface {
	MGet(ctx context.Context, keys ...string) ([]any, error)
	PopularityKey(tenantID, variantID string) string
}

// PopularityProvider returns normalized popularity scores in [0,1] for a
// batch of variants. Variants without a stored score are simply absent from
// the result; scoring treats them as neutral.
type PopularityProvider interface {
	BulkPopularity(ctx context.Context, tenantID uuid.UUID, variantIDs []uuid.UUID) (map[uuid.UUID]float64, error)
}

type redisPopularity struct {
	store popularityStore
}

// NewPopularityProvider builds a redis-backed popularity provider.
func NewPopularityProvider(store popularityStore) PopularityProvider {
	return &redisPopularity{store: store}
}

func (p *redisPopularity) BulkPopularity(ctx context.Context, tenantID uuid.UUID, variantIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	if len(variantIDs) == 0 {
		return map[uuid.UUID]float64{}, nil
	}

	keys := make([]string, len(variantIDs))
	for i, id := range variantIDs {
		keys[i] = p.store.PopularityKey(tenantID.String(), id.String())
	}

	values, err := p.store.MGet(ctx, keys...)
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]float64, len(variantIDs))
	for i, raw := range values {
		if i >= len(variantIDs) {
			break
		}
		s, ok := raw.(string)
		if !ok {
			continue
		}
		score, err := strconv.ParseFloat(s, 64)
		if err != nil || score < 0 || score > 1 {
			continue
		}
		out[variantIDs[i]] = score
	}
	return out, nil
}

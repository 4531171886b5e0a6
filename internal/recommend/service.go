package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/velvetcrown/wigmatch-backend/internal/colorsci"
	"github.com/velvetcrown/wigmatch-backend/internal/curation"
	"github.com/velvetcrown/wigmatch-backend/internal/events"
	"github.com/velvetcrown/wigmatch-backend/internal/matchconfig"
	"github.com/velvetcrown/wigmatch-backend/internal/scoring"
	"github.com/velvetcrown/wigmatch-backend/pkg/config"
	"github.com/velvetcrown/wigmatch-backend/pkg/db/models"
	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
	pkgerrors "github.com/velvetcrown/wigmatch-backend/pkg/errors"
	"github.com/velvetcrown/wigmatch-backend/pkg/logger"
	"github.com/velvetcrown/wigmatch-backend/pkg/metrics"
)

// Retriever is the catalog retrieval contract: at most limit variants of one
// color family, inside the caller's deadline. Sold-out variants only appear
// when includeUnavailable is set.
type Retriever interface {
	Retrieve(ctx context.Context, tenantID uuid.UUID, family enums.ColorFamily, limit int, includeUnavailable bool) ([]models.Variant, error)
}

// PopularityProvider supplies normalized popularity scores for a batch of
// variants. A failing provider degrades to neutral scores, never to a
// request failure.
type PopularityProvider interface {
	BulkPopularity(ctx context.Context, tenantID uuid.UUID, variantIDs []uuid.UUID) (map[uuid.UUID]float64, error)
}

type configLoader interface {
	Load(ctx context.Context, tenantID uuid.UUID) (*matchconfig.Snapshot, error)
}

// Service runs the full recommendation pipeline: retrieve per color family,
// normalize, score, curate.
type Service interface {
	Recommend(ctx context.Context, req Request) (*Response, error)
}

type service struct {
	retriever  Retriever
	configs    configLoader
	popularity PopularityProvider
	engine     *scoring.Engine
	curator    *curation.Curator
	publisher  *events.Publisher
	pipeline   *metrics.PipelineMetrics
	logg       *logger.Logger
	cfg        config.MatchingConfig
}

// NewService wires the pipeline. publisher and pipeline metrics may be nil;
// both degrade to no-ops.
func NewService(
	retriever Retriever,
	configs matchconfig.Service,
	popularity PopularityProvider,
	publisher *events.Publisher,
	pipeline *metrics.PipelineMetrics,
	logg *logger.Logger,
	cfg config.MatchingConfig,
) (Service, error) {
	if retriever == nil {
		return nil, fmt.Errorf("retriever required")
	}
	if configs == nil {
		return nil, fmt.Errorf("config loader required")
	}
	if popularity == nil {
		return nil, fmt.Errorf("popularity provider required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}

	engine, err := scoring.NewEngine(cfg.DeltaEThreshold, cfg.SoldOutAvailabilityScore)
	if err != nil {
		return nil, fmt.Errorf("building scoring engine: %w", err)
	}
	curator, err := curation.NewCurator(cfg.TopMatchFloor)
	if err != nil {
		return nil, fmt.Errorf("building curator: %w", err)
	}

	return &service{
		retriever:  retriever,
		configs:    configs,
		popularity: popularity,
		engine:     engine,
		curator:    curator,
		publisher:  publisher,
		pipeline:   pipeline,
		logg:       logg,
		cfg:        cfg,
	}, nil
}

func (s *service) Recommend(ctx context.Context, req Request) (*Response, error) {
	if req.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if !req.Profile.ColorFamily.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown profile color family %q", req.Profile.ColorFamily))
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	start := time.Now()
	tenant := req.TenantID.String()
	defer func() {
		s.pipeline.ObserveDuration(tenant, time.Since(start))
	}()

	ctx = s.logg.WithTenantID(ctx, tenant)
	ctx = s.logg.WithColorFamily(ctx, string(req.Profile.ColorFamily))

	// Configuration is loaded once and frozen; a concurrent config change can
	// never be observed mid-request.
	snap, err := s.configs.Load(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	variants, partial := s.retrievePartitions(ctx, req, snap.Families())

	resp := &Response{
		Results:        []RankedResult{},
		Partial:        partial,
		WeightsVersion: snap.Weights().Version,
	}
	if partial {
		s.pipeline.IncPartial(tenant)
		resp.Diagnostics = append(resp.Diagnostics, "some catalog partitions missed the retrieval deadline; results may be incomplete")
	}
	if len(variants) == 0 {
		s.pipeline.IncEmptyPool(tenant)
		resp.Diagnostics = append(resp.Diagnostics, "no catalog candidates were available for this request")
		s.publishServed(ctx, req, resp)
		return resp, nil
	}

	popularity := s.lookupPopularity(ctx, req.TenantID, variants)

	scored := make([]scoring.MatchCandidate, 0, len(variants))
	dropped := 0
	for _, v := range variants {
		cand := buildCandidate(v, popularity)
		mc, err := s.engine.Score(req.Profile, snap, cand)
		switch {
		case err == nil:
			scored = append(scored, mc)
		case errors.Is(err, scoring.ErrFamilyExcluded):
			dropped++
		case errors.Is(err, colorsci.ErrUnclassifiable):
			dropped++
			s.logg.Warn(s.logg.WithField(ctx, "variant_id", v.ID.String()), "candidate vetoed by every color family, dropping")
		default:
			return nil, err
		}
	}
	s.pipeline.AddScored(tenant, len(scored))
	s.pipeline.AddDropped(tenant, dropped)

	if len(scored) == 0 {
		s.pipeline.IncEmptyPool(tenant)
		resp.Diagnostics = append(resp.Diagnostics, "no catalog candidates matched your color profile")
		s.publishServed(ctx, req, resp)
		return resp, nil
	}

	curated := s.curator.Curate(scored, limit)
	resp.Results = make([]RankedResult, len(curated))
	for i, mc := range curated {
		resp.Results[i] = toRankedResult(mc)
	}

	s.publishServed(ctx, req, resp)
	return resp, nil
}

type partitionResult struct {
	family enums.ColorFamily
	rows   []models.Variant
	err    error
}

// retrievePartitions fans out one retrieval call per configured color family
// under a bounded worker pool and a hard deadline. Partitions that fail or
// time out are skipped; the run is annotated partial instead of blocking.
func (s *service) retrievePartitions(ctx context.Context, req Request, families []enums.ColorFamily) ([]models.Variant, bool) {
	retrieveCtx, cancel := context.WithTimeout(ctx, s.cfg.RetrievalTimeout)
	defer cancel()

	workers := s.cfg.MaxPartitionWorkers
	if workers > len(families) {
		workers = len(families)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan enums.ColorFamily)
	results := make(chan partitionResult, len(families))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for family := range jobs {
				rows, err := s.retriever.Retrieve(retrieveCtx, req.TenantID, family, s.cfg.PartitionLimit, req.IncludeUnavailable)
				results <- partitionResult{family: family, rows: rows, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, family := range families {
			select {
			case jobs <- family:
			case <-retrieveCtx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	byFamily := make(map[enums.ColorFamily][]models.Variant, len(families))
	completed := 0
	for res := range results {
		if res.err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "color_family", string(res.family)), "partition retrieval failed")
			continue
		}
		byFamily[res.family] = res.rows
		completed++
	}

	// merge in canonical family order so the scored pool is deterministic
	var merged []models.Variant
	for _, family := range families {
		merged = append(merged, byFamily[family]...)
	}
	return merged, completed < len(families)
}

// lookupPopularity batches the popularity reads. Degraded popularity lowers
// explanation quality, never availability of the endpoint.
func (s *service) lookupPopularity(ctx context.Context, tenantID uuid.UUID, variants []models.Variant) map[uuid.UUID]float64 {
	ids := make([]uuid.UUID, len(variants))
	for i, v := range variants {
		ids[i] = v.ID
	}
	scores, err := s.popularity.BulkPopularity(ctx, tenantID, ids)
	if err != nil {
		s.logg.Warn(ctx, "popularity lookup failed, scoring with neutral popularity")
		return map[uuid.UUID]float64{}
	}
	return scores
}

func (s *service) publishServed(ctx context.Context, req Request, resp *Response) {
	topScore := 0.0
	if len(resp.Results) > 0 {
		topScore = resp.Results[0].Scores.Total
	}
	event := events.ServedEvent{
		TenantID:    req.TenantID.String(),
		RequestID:   req.RequestID,
		ColorFamily: req.Profile.ColorFamily,
		ResultCount: len(resp.Results),
		Partial:     resp.Partial,
		TopScore:    topScore,
	}
	if err := s.publisher.PublishServed(ctx, event); err != nil {
		s.logg.Warn(ctx, "failed to publish recommendation.served event")
	}
}

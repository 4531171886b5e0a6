package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics records the health of the matching pipeline per tenant.
type PipelineMetrics struct {
	duration   *prometheus.HistogramVec
	scored     *prometheus.CounterVec
	dropped    *prometheus.CounterVec
	partial    *prometheus.CounterVec
	emptyPools *prometheus.CounterVec
}

// NewPipelineMetrics registers the pipeline metrics on the provided registerer.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		return &PipelineMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "match_pipeline_duration_seconds",
		Help:    "Duration of the recommendation pipeline in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"tenant"})
	scored := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "match_candidates_scored_total",
		Help: "Candidates scored by the matching engine.",
	}, []string{"tenant"})
	dropped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "match_candidates_dropped_total",
		Help: "Candidates dropped because no color family could be assigned.",
	}, []string{"tenant"})
	partial := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "match_partial_retrievals_total",
		Help: "Requests served from an incomplete retrieval fan-out.",
	}, []string{"tenant"})
	emptyPools := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "match_empty_pools_total",
		Help: "Requests whose candidate pool came back empty.",
	}, []string{"tenant"})
	reg.MustRegister(duration, scored, dropped, partial, emptyPools)
	return &PipelineMetrics{
		duration:   duration,
		scored:     scored,
		dropped:    dropped,
		partial:    partial,
		emptyPools: emptyPools,
	}
}

// ObserveDuration records the pipeline duration for the tenant.
func (p *PipelineMetrics) ObserveDuration(tenant string, duration time.Duration) {
	if p == nil || p.duration == nil {
		return
	}
	p.duration.WithLabelValues(normalizeLabel(tenant)).Observe(duration.Seconds())
}

// AddScored increments the scored-candidate counter.
func (p *PipelineMetrics) AddScored(tenant string, count int) {
	if p == nil || p.scored == nil || count <= 0 {
		return
	}
	p.scored.WithLabelValues(normalizeLabel(tenant)).Add(float64(count))
}

// AddDropped increments the dropped-candidate counter.
func (p *PipelineMetrics) AddDropped(tenant string, count int) {
	if p == nil || p.dropped == nil || count <= 0 {
		return
	}
	p.dropped.WithLabelValues(normalizeLabel(tenant)).Add(float64(count))
}

// IncPartial increments the partial retrieval counter.
func (p *PipelineMetrics) IncPartial(tenant string) {
	if p == nil || p.partial == nil {
		return
	}
	p.partial.WithLabelValues(normalizeLabel(tenant)).Inc()
}

// IncEmptyPool increments the empty pool counter.
func (p *PipelineMetrics) IncEmptyPool(tenant string) {
	if p == nil || p.emptyPools == nil {
		return
	}
	p.emptyPools.WithLabelValues(normalizeLabel(tenant)).Inc()
}

func normalizeLabel(tenant string) string {
	if tenant == "" {
		return "unknown"
	}
	return tenant
}

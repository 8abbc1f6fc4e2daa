// Package metrics provides Prometheus metrics for the media resolver service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics emitted by the resolver core.
type Metrics struct {
	// CacheLookupsTotal counts lookups against the in-memory caches,
	// labeled by cache ("association", "prompt") and result ("hit", "miss").
	CacheLookupsTotal *prometheus.CounterVec

	// UpstreamRequestsTotal counts calls to the chat platform API,
	// labeled by operation and status ("ok", "error").
	UpstreamRequestsTotal *prometheus.CounterVec

	// PromptResolutionsTotal counts finished prompt searches,
	// labeled by outcome ("found", "not_found").
	PromptResolutionsTotal *prometheus.CounterVec

	// FilesDeletedTotal counts file deletions, labeled by status.
	FilesDeletedTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics against the given registerer.
// Passing a fresh registry keeps tests isolated from the default one.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{}

	m.CacheLookupsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediadeck_cache_lookups_total",
			Help: "Total number of resolver cache lookups",
		},
		[]string{"cache", "result"},
	)

	m.UpstreamRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediadeck_upstream_requests_total",
			Help: "Total number of requests to the chat platform API",
		},
		[]string{"operation", "status"},
	)

	m.PromptResolutionsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediadeck_prompt_resolutions_total",
			Help: "Total number of completed prompt searches",
		},
		[]string{"outcome"},
	)

	m.FilesDeletedTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediadeck_files_deleted_total",
			Help: "Total number of file delete attempts",
		},
		[]string{"status"},
	)

	return m
}

// Cache lookup helper labels.
const (
	CacheAssociation = "association"
	CachePrompt      = "prompt"
	ResultHit        = "hit"
	ResultMiss       = "miss"
)

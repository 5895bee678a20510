package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PostsFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_posts_fetched_total",
		Help: "The total number of posts fetched from the source",
	}, []string{"source"})

	PostsFiltered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_posts_filtered_total",
		Help: "The total number of posts dropped by the keyword filter, by reason",
	}, []string{"reason"})

	LeadsScored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_leads_scored_total",
		Help: "The total number of leads scored, by signal band",
	}, []string{"band"})

	LeadsWorthy = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_leads_worthy_total",
		Help: "The total number of worthiness verdicts, by outcome",
	}, []string{"verdict"})

	DraftsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_drafts_generated_total",
		Help: "The total number of drafts generated, by kind",
	}, []string{"kind"})

	SinkWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_sink_writes_total",
		Help: "The total number of sink write attempts, by sink and status",
	}, []string{"sink", "status"})

	SeenSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scout_seen_skipped_total",
		Help: "The total number of posts skipped because an earlier run processed them",
	})

	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_runs_total",
		Help: "The total number of scout runs, by status",
	}, []string{"status"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scout_run_duration_seconds",
		Help:    "Duration in seconds of a full scout run",
		Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 120, 300, 600},
	})

	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scout_llm_request_duration_seconds",
		Help:    "Duration of LLM requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"task"})
)

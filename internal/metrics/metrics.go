package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_submissions_total",
			Help: "Total number of analyze form submissions by outcome",
		},
		[]string{"outcome"},
	)

	AnalysesCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "resume_analyses_completed_total",
			Help: "Total number of analyses completed by the worker",
		},
	)

	AnalysesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_analyses_failed_total",
			Help: "Total number of analyses that failed by stage",
		},
		[]string{"stage"},
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resume_analysis_duration_seconds",
			Help:    "Duration of analysis processing in seconds",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	WorkersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "resume_analysis_workers_active",
			Help: "Number of analyses currently being processed",
		},
	)

	SampleRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "resume_sample_jd_requests_total",
			Help: "Total number of sample job description requests",
		},
	)
)

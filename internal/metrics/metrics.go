package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Worker Metrics
var (
	WorkerJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWorkerJobs,
			Help: HelpTextWorkerJobs,
		},
		[]string{LabelResult},
	)

	WorkerQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameWorkerQueueDepth,
			Help: HelpTextWorkerQueueDepth,
		},
	)
)

// Security Metrics
var (
	AuthFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAuthFailures,
			Help: HelpTextAuthFailures,
		},
	)
)

// Garden Metrics
var (
	Waterings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWaterings,
			Help: HelpTextWaterings,
		},
	)

	HarmonyBonuses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameHarmonyBonuses,
			Help: HelpTextHarmonyBonuses,
		},
	)

	StreakRewards = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStreakRewards,
			Help: HelpTextStreakRewards,
		},
	)

	Revivals = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRevivals,
			Help: HelpTextRevivals,
		},
	)

	ItemsPlaced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsPlaced,
			Help: HelpTextItemsPlaced,
		},
		[]string{LabelItemType},
	)

	ItemsRemoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsRemoved,
			Help: HelpTextItemsRemoved,
		},
		[]string{LabelScope},
	)

	GardensPunished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGardensPunished,
			Help: HelpTextGardensPunished,
		},
	)

	GoldPaidOut = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGoldPaidOut,
			Help: HelpTextGoldPaidOut,
		},
	)

	GoldSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGoldSpent,
			Help: HelpTextGoldSpent,
		},
	)

	CollisionsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCollisionsRejected,
			Help: HelpTextCollisionsRejected,
		},
	)

	RevisionConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRevisionConflicts,
			Help: HelpTextRevisionConflicts,
		},
	)
)

package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Worker metric names
const (
	MetricNameWorkerJobs       = "worker_jobs_total"
	MetricNameWorkerQueueDepth = "worker_queue_depth"
)

// Security metric names
const (
	MetricNameAuthFailures = "auth_failures_total"
)

// Garden metric names
const (
	MetricNameWaterings          = "garden_waterings_total"
	MetricNameHarmonyBonuses     = "garden_harmony_bonuses_total"
	MetricNameStreakRewards      = "garden_streak_rewards_total"
	MetricNameRevivals           = "garden_revivals_total"
	MetricNameItemsPlaced        = "garden_items_placed_total"
	MetricNameItemsRemoved       = "garden_items_removed_total"
	MetricNameGardensPunished    = "gardens_punished_total"
	MetricNameCollisionsRejected = "garden_collisions_rejected_total"
	MetricNameRevisionConflicts  = "garden_revision_conflicts_total"
	MetricNameGoldPaidOut        = "garden_gold_paid_out_total"
	MetricNameGoldSpent          = "garden_gold_spent_total"
)

// ============================================================================
// Metric Labels
// ============================================================================

const (
	LabelResult   = "result"
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelItemType = "item_type"
	LabelScope    = "scope"
	LabelReason   = "reason"
)

// ============================================================================
// Help Texts
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request duration in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"
	HelpTextEventsPublished      = "Total number of events published on the internal bus"
	HelpTextEventHandlerErrors   = "Total number of event handler errors"
	HelpTextWorkerJobs           = "Total number of worker pool jobs processed, by result"
	HelpTextWorkerQueueDepth     = "Number of jobs currently waiting in the worker pool queue"
	HelpTextAuthFailures         = "Total number of rejected API key authentications"
	HelpTextWaterings            = "Total number of successful waterings"
	HelpTextHarmonyBonuses       = "Total number of harmony bonuses paid"
	HelpTextStreakRewards        = "Total number of streak rewards paid"
	HelpTextRevivals             = "Total number of paid garden revivals"
	HelpTextItemsPlaced          = "Total number of items placed, by item type"
	HelpTextItemsRemoved         = "Total number of items removed, by removal scope"
	HelpTextGardensPunished      = "Total number of neglect punishments applied"
	HelpTextCollisionsRejected   = "Total number of placements rejected by collision validation"
	HelpTextRevisionConflicts    = "Total number of optimistic-concurrency conflicts on garden writes"
	HelpTextGoldPaidOut          = "Total gold paid out by garden rewards and refunds"
	HelpTextGoldSpent            = "Total gold spent on revivals"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgMetricsRecorded = "Metrics recorded for event"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

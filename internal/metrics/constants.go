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

// Business metric names
const (
	MetricNameQuestsCompleted      = "quests_completed_total"
	MetricNameCheckIns             = "checkins_total"
	MetricNameInspirationEarned    = "inspiration_earned_total"
	MetricNameYCEarned             = "yc_earned_total"
	MetricNameYCSpent              = "yc_spent_total"
	MetricNameAscensions           = "level_ascensions_total"
	MetricNameItemsRedeemed        = "items_redeemed_total"
	MetricNameVerificationOutcomes = "verification_outcomes_total"
	MetricNameLogins               = "logins_total"
	MetricNameRegistrations        = "registrations_total"
	MetricNameLoginLimitRejections = "login_limit_rejections_total"
	MetricNameLoginCountersPurged  = "login_counters_purged_total"
	MetricNameCatalogChanges       = "catalog_changes_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextQuestsCompleted      = "Total number of credited quest completions"
	HelpTextCheckIns             = "Total number of workshop check-ins"
	HelpTextInspirationEarned    = "Total inspiration points awarded"
	HelpTextYCEarned             = "Total YC awarded by quests"
	HelpTextYCSpent              = "Total YC spent in the shop"
	HelpTextAscensions           = "Total number of level ascensions"
	HelpTextItemsRedeemed        = "Total number of shop redemptions"
	HelpTextVerificationOutcomes = "Verification artifacts reaching a terminal state"
	HelpTextLogins               = "Successful logins by path"
	HelpTextRegistrations        = "Accounts created by path"
	HelpTextLoginLimitRejections = "Logins refused by the daily limit"
	HelpTextLoginCountersPurged  = "Login counter rows removed by the daily reset"
	HelpTextCatalogChanges       = "Catalog edits by entity and action"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelCategory = "category"
	LabelLevel    = "level"
	LabelItem     = "item"
	LabelKind     = "kind"
	LabelLoginVia = "login_path"
	LabelEntity   = "entity"
	LabelAction   = "action"
)

// unmatchedRoute labels requests no chi route claimed
const unmatchedRoute = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets ranges from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgUnexpectedPayload = "Event payload could not be decoded for metrics"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
	LogMsgHandlerFailed     = "Event handler returned an error"
)

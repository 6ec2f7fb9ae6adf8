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

// Quest and progression metrics
var (
	QuestsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuestsCompleted,
			Help: HelpTextQuestsCompleted,
		},
		[]string{LabelCategory},
	)

	CheckIns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCheckIns,
			Help: HelpTextCheckIns,
		},
	)

	InspirationEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameInspirationEarned,
			Help: HelpTextInspirationEarned,
		},
	)

	YCEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameYCEarned,
			Help: HelpTextYCEarned,
		},
	)

	Ascensions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAscensions,
			Help: HelpTextAscensions,
		},
		[]string{LabelLevel},
	)
)

// Shop metrics
var (
	ItemsRedeemed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsRedeemed,
			Help: HelpTextItemsRedeemed,
		},
		[]string{LabelItem},
	)

	YCSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameYCSpent,
			Help: HelpTextYCSpent,
		},
	)
)

// Verification metrics
var VerificationOutcomes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: MetricNameVerificationOutcomes,
		Help: HelpTextVerificationOutcomes,
	},
	[]string{LabelKind, LabelStatus},
)

// Auth metrics
var (
	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLogins,
			Help: HelpTextLogins,
		},
		[]string{LabelLoginVia},
	)

	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRegistrations,
			Help: HelpTextRegistrations,
		},
		[]string{LabelLoginVia},
	)

	LoginLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLoginLimitRejections,
			Help: HelpTextLoginLimitRejections,
		},
	)

	LoginCountersPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLoginCountersPurged,
			Help: HelpTextLoginCountersPurged,
		},
	)
)

// CatalogChanges counts admin and sync edits
var CatalogChanges = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: MetricNameCatalogChanges,
		Help: HelpTextCatalogChanges,
	},
	[]string{LabelEntity, LabelAction},
)

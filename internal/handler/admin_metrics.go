package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/osse101/DreamJournal_Go/internal/metrics"
)

// AdminMetricsResponse contains JSON-formatted metrics for the admin dashboard
type AdminMetricsResponse struct {
	HTTP     HTTPMetrics     `json:"http"`
	Events   EventMetrics    `json:"events"`
	Business BusinessMetrics `json:"business"`
	SSE      SSEMetrics      `json:"sse"`
}

type HTTPMetrics struct {
	RequestsTotalByStatus map[string]float64 `json:"requests_total_by_status"`
	AvgLatencyMs          float64            `json:"avg_latency_ms"`
	P95LatencyMs          float64            `json:"p95_latency_ms"`
	InFlight              float64            `json:"in_flight"`
}

type EventMetrics struct {
	PublishedTotalByType map[string]float64 `json:"published_total_by_type"`
	HandlerErrorsByType  map[string]float64 `json:"handler_errors_by_type"`
}

type BusinessMetrics struct {
	QuestsByCategory   map[string]float64 `json:"quests_by_category"`
	ItemsRedeemed      map[string]float64 `json:"items_redeemed"`
	LoginsByPath       map[string]float64 `json:"logins_by_path"`
	CheckIns           float64            `json:"checkins"`
	YCEarned           float64            `json:"yc_earned"`
	YCSpent            float64            `json:"yc_spent"`
	LoginLimitRejected float64            `json:"login_limit_rejected"`
}

type SSEMetrics struct {
	ClientCount int   `json:"client_count"`
	Dropped     int64 `json:"dropped"`
}

// ClientCounter is implemented by sse.Hub
type ClientCounter interface {
	ClientCount() int
	Dropped() int64
}

// AdminMetricsHandler summarises the Prometheus registry as JSON
type AdminMetricsHandler struct {
	gatherer prometheus.Gatherer
	clients  ClientCounter
}

// NewAdminMetricsHandler creates a new admin metrics handler
func NewAdminMetricsHandler(gatherer prometheus.Gatherer, clients ClientCounter) *AdminMetricsHandler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &AdminMetricsHandler{gatherer: gatherer, clients: clients}
}

// HandleGetMetrics returns JSON-formatted metrics
// @Summary Metrics summary
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} AdminMetricsResponse
// @Router /api/v1/admin/metrics [get]
func (h *AdminMetricsHandler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	resp, err := summarise(h.gatherer)
	if err != nil {
		respondServiceError(w, r, "Gather metrics", err)
		return
	}
	if h.clients != nil {
		resp.SSE.ClientCount = h.clients.ClientCount()
		resp.SSE.Dropped = h.clients.Dropped()
	}
	respondJSON(w, http.StatusOK, resp)
}

func summarise(g prometheus.Gatherer) (*AdminMetricsResponse, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	resp := &AdminMetricsResponse{
		HTTP: HTTPMetrics{RequestsTotalByStatus: make(map[string]float64)},
		Events: EventMetrics{
			PublishedTotalByType: make(map[string]float64),
			HandlerErrorsByType:  make(map[string]float64),
		},
		Business: BusinessMetrics{
			QuestsByCategory: make(map[string]float64),
			ItemsRedeemed:    make(map[string]float64),
			LoginsByPath:     make(map[string]float64),
		},
	}

	for _, mf := range families {
		switch mf.GetName() {
		case metrics.MetricNameHTTPRequestsTotal:
			sumByLabel(mf, metrics.LabelStatus, resp.HTTP.RequestsTotalByStatus)
		case metrics.MetricNameHTTPRequestDuration:
			var merged dto.Histogram
			for _, m := range mf.GetMetric() {
				mergeHistogram(&merged, m.GetHistogram())
			}
			if n := merged.GetSampleCount(); n > 0 {
				resp.HTTP.AvgLatencyMs = merged.GetSampleSum() / float64(n) * 1000
			}
			resp.HTTP.P95LatencyMs = estimateQuantile(&merged, 0.95) * 1000
		case metrics.MetricNameHTTPRequestsInFlight:
			resp.HTTP.InFlight = total(mf)
		case metrics.MetricNameEventsPublished:
			sumByLabel(mf, metrics.LabelType, resp.Events.PublishedTotalByType)
		case metrics.MetricNameEventHandlerErrors:
			sumByLabel(mf, metrics.LabelType, resp.Events.HandlerErrorsByType)
		case metrics.MetricNameQuestsCompleted:
			sumByLabel(mf, metrics.LabelCategory, resp.Business.QuestsByCategory)
		case metrics.MetricNameItemsRedeemed:
			sumByLabel(mf, metrics.LabelItem, resp.Business.ItemsRedeemed)
		case metrics.MetricNameLogins:
			sumByLabel(mf, metrics.LabelLoginVia, resp.Business.LoginsByPath)
		case metrics.MetricNameCheckIns:
			resp.Business.CheckIns = total(mf)
		case metrics.MetricNameYCEarned:
			resp.Business.YCEarned = total(mf)
		case metrics.MetricNameYCSpent:
			resp.Business.YCSpent = total(mf)
		case metrics.MetricNameLoginLimitRejections:
			resp.Business.LoginLimitRejected = total(mf)
		}
	}

	return resp, nil
}

func value(m *dto.Metric) float64 {
	switch {
	case m.GetCounter() != nil:
		return m.GetCounter().GetValue()
	case m.GetGauge() != nil:
		return m.GetGauge().GetValue()
	}
	return 0
}

func total(mf *dto.MetricFamily) float64 {
	var sum float64
	for _, m := range mf.GetMetric() {
		sum += value(m)
	}
	return sum
}

func sumByLabel(mf *dto.MetricFamily, label string, into map[string]float64) {
	for _, m := range mf.GetMetric() {
		if v := labelValue(m, label); v != "" {
			into[v] += value(m)
		}
	}
}

func labelValue(m *dto.Metric, name string) string {
	for _, l := range m.GetLabel() {
		if l.GetName() == name {
			return l.GetValue()
		}
	}
	return ""
}

// mergeHistogram folds src into dst; all series share the same bucket layout
func mergeHistogram(dst, src *dto.Histogram) {
	if src == nil {
		return
	}
	count := dst.GetSampleCount() + src.GetSampleCount()
	sum := dst.GetSampleSum() + src.GetSampleSum()
	dst.SampleCount = &count
	dst.SampleSum = &sum

	if len(dst.Bucket) == 0 {
		for _, b := range src.GetBucket() {
			c, ub := b.GetCumulativeCount(), b.GetUpperBound()
			dst.Bucket = append(dst.Bucket, &dto.Bucket{CumulativeCount: &c, UpperBound: &ub})
		}
		return
	}
	for i, b := range src.GetBucket() {
		if i >= len(dst.Bucket) {
			break
		}
		c := dst.Bucket[i].GetCumulativeCount() + b.GetCumulativeCount()
		dst.Bucket[i].CumulativeCount = &c
	}
}

// estimateQuantile returns the upper bound of the bucket holding the quantile
func estimateQuantile(hist *dto.Histogram, quantile float64) float64 {
	totalCount := hist.GetSampleCount()
	if totalCount == 0 {
		return 0
	}

	target := float64(totalCount) * quantile
	buckets := hist.GetBucket()
	for _, b := range buckets {
		if float64(b.GetCumulativeCount()) >= target {
			return b.GetUpperBound()
		}
	}
	if len(buckets) > 0 {
		return buckets[len(buckets)-1].GetUpperBound()
	}
	return 0
}

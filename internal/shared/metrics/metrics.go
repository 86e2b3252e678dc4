package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	analyzeRequestsTotal    atomic.Uint64
	analyzeSucceededTotal   atomic.Uint64
	analyzeRateLimitedTotal atomic.Uint64
	analyzeFailedTotal      atomic.Uint64
	reportsGeneratedTotal   atomic.Uint64

	analyzeDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncAnalyzeRequests increments the relay request counter.
func IncAnalyzeRequests() {
	analyzeRequestsTotal.Add(1)
}

// IncAnalyzeSucceeded increments the relay success counter.
func IncAnalyzeSucceeded() {
	analyzeSucceededTotal.Add(1)
}

// IncAnalyzeRateLimited increments the counter of relay calls answered with the busy payload.
func IncAnalyzeRateLimited() {
	analyzeRateLimitedTotal.Add(1)
}

// IncAnalyzeFailed increments the relay failure counter.
func IncAnalyzeFailed() {
	analyzeFailedTotal.Add(1)
}

// IncReportsGenerated increments the PDF report counter.
func IncReportsGenerated() {
	reportsGeneratedTotal.Add(1)
}

// ObserveAnalyzeDurationMs records a provider round trip in milliseconds.
func ObserveAnalyzeDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analyzeDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "analyze_requests_total", "Total analyze requests accepted by the relay", analyzeRequestsTotal.Load())
	writeCounter(&buf, "analyze_succeeded_total", "Total analyze requests answered with model output", analyzeSucceededTotal.Load())
	writeCounter(&buf, "analyze_rate_limited_total", "Total analyze requests answered with the busy payload", analyzeRateLimitedTotal.Load())
	writeCounter(&buf, "analyze_failed_total", "Total analyze requests answered with the error payload", analyzeFailedTotal.Load())
	writeCounter(&buf, "reports_generated_total", "Total PDF reports generated", reportsGeneratedTotal.Load())
	writeHistogram(&buf, "analyze_duration_ms", "Provider round trip in milliseconds", analyzeDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

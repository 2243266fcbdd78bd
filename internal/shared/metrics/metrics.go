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
	leadsCreatedTotal      atomic.Uint64
	leadStatusUpdatesTotal atomic.Uint64
	emailsSentTotal        atomic.Uint64
	emailsFailedTotal      atomic.Uint64
	loginsTotal            atomic.Uint64
	loginFailuresTotal     atomic.Uint64

	emailSendDuration = newHistogram([]float64{50, 100, 250, 500, 1000, 2000, 5000, 10000})
)

// IncLeadCreated increments the created-leads counter.
func IncLeadCreated() {
	leadsCreatedTotal.Add(1)
}

// IncLeadStatusUpdate increments the status-update counter.
func IncLeadStatusUpdate() {
	leadStatusUpdatesTotal.Add(1)
}

// IncEmailSent increments the delivered-notification counter.
func IncEmailSent() {
	emailsSentTotal.Add(1)
}

// IncEmailFailed increments the failed-notification counter.
func IncEmailFailed() {
	emailsFailedTotal.Add(1)
}

// IncLogin increments the successful-login counter.
func IncLogin() {
	loginsTotal.Add(1)
}

// IncLoginFailure increments the failed-login counter.
func IncLoginFailure() {
	loginFailuresTotal.Add(1)
}

// ObserveEmailSendDurationMs records an outbound email attempt duration.
func ObserveEmailSendDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	emailSendDuration.Observe(value)
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
	writeCounter(&buf, "leads_created_total", "Total leads created", leadsCreatedTotal.Load())
	writeCounter(&buf, "lead_status_updates_total", "Total lead status updates", leadStatusUpdatesTotal.Load())
	writeCounter(&buf, "notification_emails_sent_total", "Total notification emails sent", emailsSentTotal.Load())
	writeCounter(&buf, "notification_emails_failed_total", "Total notification emails failed", emailsFailedTotal.Load())
	writeCounter(&buf, "logins_total", "Total successful logins", loginsTotal.Load())
	writeCounter(&buf, "login_failures_total", "Total failed logins", loginFailuresTotal.Load())
	writeHistogram(&buf, "notification_email_duration_ms", "Outbound email attempt duration in milliseconds", emailSendDuration.Snapshot())
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
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
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

package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ComparisonsComputed counts diffs produced by the compare endpoint.
	ComparisonsComputed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "comparisons_computed_total",
			Help: "Total number of file comparisons computed",
		},
	)

	// BackupRuns counts database backup runs by status (ok, error).
	BackupRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_backup_runs_total",
			Help: "Total number of database backup runs by status",
		},
		[]string{"status"},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, ComparisonsComputed, BackupRuns)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /api/comparison/123 -> /api/comparison/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncComparisonsComputed increments the computed-comparison counter.
func IncComparisonsComputed() {
	ComparisonsComputed.Inc()
}

// IncBackupRuns increments the backup counter for the given status (ok, error).
func IncBackupRuns(status string) {
	BackupRuns.WithLabelValues(status).Inc()
}

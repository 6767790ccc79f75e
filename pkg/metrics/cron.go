package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CronJobMetrics records outcomes of background jobs such as message dispatch.
type CronJobMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	lastOK   *prometheus.GaugeVec
}

// NewCronJobMetrics registers the cron job metrics on the provided registerer.
func NewCronJobMetrics(reg prometheus.Registerer) *CronJobMetrics {
	if reg == nil {
		return &CronJobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vault_cron_job_duration_seconds",
		Help:    "Duration of background job runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vault_cron_job_success_total",
		Help: "Background job runs that returned no error.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vault_cron_job_failure_total",
		Help: "Background job runs that returned an error.",
	}, []string{"job"})
	lastOK := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vault_cron_job_last_success_timestamp_seconds",
		Help: "Unix time of the last background job run that returned no error.",
	}, []string{"job"})
	reg.MustRegister(duration, success, failure, lastOK)
	return &CronJobMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		lastOK:   lastOK,
	}
}

// ObserveDuration records the duration for the named job.
func (c *CronJobMetrics) ObserveDuration(job string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

// IncSuccess counts a clean run and stamps the last-success gauge, which an
// alert can compare against the dispatch interval.
func (c *CronJobMetrics) IncSuccess(job string) {
	if c == nil || c.success == nil {
		return
	}
	label := normalizeLabel(job)
	c.success.WithLabelValues(label).Inc()
	c.lastOK.WithLabelValues(label).SetToCurrentTime()
}

// IncFailure increments the failure counter for the named job.
func (c *CronJobMetrics) IncFailure(job string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(job)).Inc()
}

func normalizeLabel(job string) string {
	if job == "" {
		return "unknown"
	}
	return job
}

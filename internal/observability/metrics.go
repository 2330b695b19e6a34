// Package observability holds the Prometheus metrics exported on /metrics.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "health_protocol"

var (
	notesImported = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "importer",
		Name:      "notes_processed_total",
		Help:      "Notes run through the importer, by outcome.",
	}, []string{"outcome"})

	activityResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "importer",
		Name:      "activities_total",
		Help:      "Parsed activities handled by the importer, by result (created, skipped, failed).",
	}, []string{"result"})

	lastImportGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "importer",
		Name:      "last_import_timestamp_seconds",
		Help:      "Unix timestamp of the most recent completed note import.",
	})

	resolveResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "resolver",
		Name:      "resolutions_total",
		Help:      "Activity name resolutions, by path (search, substring) and outcome (matched, created).",
	}, []string{"path", "outcome"})

	searchAvailable = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "resolver",
		Name:      "search_available",
		Help:      "1 when the last health check of the search index succeeded.",
	})

	plannedActivities = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "scheduler",
		Name:      "planned_activities_total",
		Help:      "Planned activities produced by the program scheduler.",
	})

	planDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "scheduler",
		Name:      "plan_duration_seconds",
		Help:      "Time spent planning a program for a user.",
		Buckets:   prometheus.DefBuckets,
	})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by route and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func init() {
	prometheus.MustRegister(
		notesImported,
		activityResults,
		lastImportGauge,
		resolveResults,
		searchAvailable,
		plannedActivities,
		planDuration,
		httpRequests,
		httpDuration,
	)
}

// RecordNoteImported counts one note import. Failed imports do not move the watermark.
func RecordNoteImported(ts time.Time, err error) {
	if err != nil {
		notesImported.WithLabelValues("error").Inc()
		return
	}
	notesImported.WithLabelValues("ok").Inc()
	if !ts.IsZero() {
		lastImportGauge.Set(float64(ts.Unix()))
	}
}

// RecordActivityResults adds per-activity outcome counts for one note.
func RecordActivityResults(created, skipped, failed int) {
	activityResults.WithLabelValues("created").Add(float64(created))
	activityResults.WithLabelValues("skipped").Add(float64(skipped))
	activityResults.WithLabelValues("failed").Add(float64(failed))
}

// RecordResolution counts one resolver decision.
func RecordResolution(viaSearch, created bool) {
	path := "substring"
	if viaSearch {
		path = "search"
	}
	outcome := "matched"
	if created {
		outcome = "created"
	}
	resolveResults.WithLabelValues(path, outcome).Inc()
}

// RecordSearchAvailability tracks the last search health check.
func RecordSearchAvailability(ok bool) {
	if ok {
		searchAvailable.Set(1)
		return
	}
	searchAvailable.Set(0)
}

// RecordPlan records one scheduler run.
func RecordPlan(count int, elapsed time.Duration) {
	plannedActivities.Add(float64(count))
	planDuration.Observe(elapsed.Seconds())
}

// RecordHTTPRequest records one served request. Unmatched routes share the "unmatched" label.
func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

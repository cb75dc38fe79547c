package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tgclasses_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tgclasses_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	classOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tgclasses_class_operations_total",
		Help: "Class mutations by operation and result",
	}, []string{"operation", "result"})

	rsvpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tgclasses_rsvps_total",
		Help: "RSVP upserts by status",
	}, []string{"status"})

	usersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tgclasses_users_created_total",
		Help: "Users created on first reference by telegram id",
	})

	identityRaceRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tgclasses_identity_race_retries_total",
		Help: "User creations that hit the unique telegram id and were re-fetched",
	})

	listCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tgclasses_list_cache_lookups_total",
		Help: "Class list cache lookups by result",
	}, []string{"result"})

	classesPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tgclasses_classes_purged_total",
		Help: "Classes removed by the retention job",
	})
)

// ObserveHTTPRequest записывает метрики HTTP-запроса
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// ObserveClassOperation считает create/update/delete с результатом ok, not_found, forbidden или error
func ObserveClassOperation(operation, result string) {
	classOperations.WithLabelValues(operation, result).Inc()
}

func ObserveRSVP(status string) {
	rsvpsTotal.WithLabelValues(status).Inc()
}

func IncUsersCreated() {
	usersCreated.Inc()
}

func IncIdentityRaceRetry() {
	identityRaceRetries.Inc()
}

// ObserveCacheLookup записывает hit или miss
func ObserveCacheLookup(hit bool) {
	if hit {
		listCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	listCacheLookups.WithLabelValues("miss").Inc()
}

func AddClassesPurged(n int64) {
	classesPurged.Add(float64(n))
}

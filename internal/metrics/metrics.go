package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "code"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "code"},
	)

	// Timezone lookups
	timezoneLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timezone_lookups_total",
			Help: "Total number of timezone offset lookups by outcome.",
		},
		[]string{"status"},
	)
	timezoneLookupDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "timezone_lookup_duration_seconds",
			Help:    "Timezone offset lookup duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Business
	calculations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "itinerary_calculations_total",
			Help: "Total number of itinerary calculations by outcome.",
		},
		[]string{"result"},
	)
	calculationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "itinerary_calculation_duration_seconds",
			Help:    "End-to-end itinerary calculation duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
	itineraryLegs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "itinerary_legs",
			Help:    "Distribution of legs per calculated itinerary.",
			Buckets: []float64{1, 2, 3, 4, 6, 8, 10, 15, 20},
		},
	)
	airportsLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "airports_loaded",
			Help: "Current number of airports in the directory.",
		},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			httpDuration,

			timezoneLookups,
			timezoneLookupDuration,

			calculations,
			calculationDuration,
			itineraryLegs,
			airportsLoaded,
		)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// --- HTTP ---
func ObserveHTTPRequest(method, route, code string, d time.Duration) {
	httpRequests.WithLabelValues(method, route, code).Inc()
	httpDuration.WithLabelValues(method, route, code).Observe(d.Seconds())
}

// --- Timezone lookups ---
func ObserveTimezoneLookup(status string, d time.Duration) {
	timezoneLookups.WithLabelValues(status).Inc()
	timezoneLookupDuration.Observe(d.Seconds())
}

// --- Business ---
func ObserveCalculation(result string, legs int, d time.Duration) {
	calculations.WithLabelValues(result).Inc()
	calculationDuration.Observe(d.Seconds())
	itineraryLegs.Observe(float64(legs))
}

func SetAirportsLoaded(count int) {
	if count < 0 {
		count = 0
	}
	airportsLoaded.Set(float64(count))
}

func fmtCode(code int) string {
	return strconv.Itoa(code)
}

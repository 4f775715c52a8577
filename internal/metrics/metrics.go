package metrics

import (
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tweetkit_cache_hits_total",
		Help: "Records hydrated from the local cache",
	}, []string{"kind"})
	CacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tweetkit_cache_misses_total",
		Help: "Records absent from the local cache",
	}, []string{"kind"})
	LiveFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tweetkit_live_fetches_total",
		Help: "Records fetched from the remote API",
	}, []string{"kind"})
	APIRetries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tweetkit_api_retries_total",
		Help: "Total API retry attempts",
	}, []string{"endpoint"})
	CommandRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tweetkit_command_runs_total",
		Help: "CLI command invocations",
	}, []string{"command"})
	CommandErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tweetkit_command_errors_total",
		Help: "CLI command failures",
	}, []string{"command"})
)

func init() {
	prometheus.MustRegister(CacheHits, CacheMisses, LiveFetches, APIRetries, CommandRuns, CommandErrors)
}

// StartServer starts a metrics HTTP server on addr (e.g., ":9090").
// With an empty addr it falls back to METRICS_ADDR, and does nothing
// when that is unset too.
func StartServer(addr string) {
	if addr == "" {
		addr = os.Getenv("METRICS_ADDR")
	}
	if addr == "" {
		return
	}
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	go func() { _ = http.ListenAndServe(addr, nil) }()
}

// IncAPIRetry increments the retry counter for an endpoint.
func IncAPIRetry(endpoint string) { APIRetries.WithLabelValues(endpoint).Inc() }

// IncCacheHit counts one cache hit for a storage area.
func IncCacheHit(kind string) { CacheHits.WithLabelValues(kind).Inc() }

// IncCacheMiss counts one cache miss for a storage area.
func IncCacheMiss(kind string) { CacheMisses.WithLabelValues(kind).Inc() }

// IncLiveFetch counts one remote fetch for a storage area.
func IncLiveFetch(kind string) { LiveFetches.WithLabelValues(kind).Inc() }

// IncCommandRun counts one CLI command invocation.
func IncCommandRun(cmd string) { CommandRuns.WithLabelValues(cmd).Inc() }

// IncCommandError counts one CLI command failure.
func IncCommandError(cmd string) { CommandErrors.WithLabelValues(cmd).Inc() }

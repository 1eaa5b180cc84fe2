// ABOUTME: Prometheus metrics for feed builds and the supplementary provider
// ABOUTME: Registers counters and histograms and exposes the scrape handler

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records feed-build metrics on a Prometheus registry.
type Collector struct {
	registry *prometheus.Registry

	buildsTotal     *prometheus.CounterVec
	buildDuration   prometheus.Histogram
	cacheHitsTotal  prometheus.Counter
	supplementFail  prometheus.Counter
	itemsServed     prometheus.Counter
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		buildsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "microfeed_builds_total",
			Help: "Number of public feed builds by mode (feed/item).",
		}, []string{"mode"}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "microfeed_build_duration_seconds",
			Help:    "Time spent building the public feed document.",
			Buckets: prometheus.DefBuckets,
		}),
		cacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "microfeed_feed_cache_hits_total",
			Help: "Number of feed responses served from cache.",
		}),
		supplementFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "microfeed_supplementary_failures_total",
			Help: "Number of failed supplementary content fetches.",
		}),
		itemsServed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "microfeed_items_served_total",
			Help: "Number of items emitted in public feed documents.",
		}),
	}

	c.registry.MustRegister(
		c.buildsTotal,
		c.buildDuration,
		c.cacheHitsTotal,
		c.supplementFail,
		c.itemsServed,
	)
	return c
}

// RecordBuild records one completed build.
func (c *Collector) RecordBuild(mode string, duration time.Duration, items int) {
	c.buildsTotal.WithLabelValues(mode).Inc()
	c.buildDuration.Observe(duration.Seconds())
	c.itemsServed.Add(float64(items))
}

// RecordCacheHit records a feed response served from cache.
func (c *Collector) RecordCacheHit() {
	c.cacheHitsTotal.Inc()
}

// RecordSupplementaryFailure records a failed supplementary fetch.
func (c *Collector) RecordSupplementaryFailure() {
	c.supplementFail.Inc()
}

// Handler returns the scrape handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

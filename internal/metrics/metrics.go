package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "s3previewer"

// Recorder exports preview and HTTP metrics to Prometheus. A nil *Recorder
// is valid and records nothing.
type Recorder struct {
	previews        *prometheus.CounterVec
	strategies      *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewRecorder registers the collectors with reg, or the default registerer
// when reg is nil.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &Recorder{
		previews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "previews_total",
			Help:      "Preview resolutions by URL mode and outcome.",
		}, []string{"mode", "outcome"}),
		strategies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preview_strategy_total",
			Help:      "Successful previews by render strategy.",
		}, []string{"strategy"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "metadata_cache_lookups_total",
			Help:      "Metadata cache lookups by result.",
		}, []string{"result"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}

	if err := register(reg, &r.previews); err != nil {
		return nil, err
	}
	if err := register(reg, &r.strategies); err != nil {
		return nil, err
	}
	if err := register(reg, &r.cacheLookups); err != nil {
		return nil, err
	}
	if err := register(reg, &r.requestDuration); err != nil {
		return nil, err
	}
	return r, nil
}

// register adopts an already registered collector of the same shape so the
// recorder can be built more than once per process.
func register[C prometheus.Collector](reg prometheus.Registerer, c *C) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				*c = existing
				return nil
			}
		}
		return fmt.Errorf("register metric: %w", err)
	}
	return nil
}

func (r *Recorder) RecordPreview(mode, outcome string) {
	if r == nil {
		return
	}
	r.previews.WithLabelValues(mode, outcome).Inc()
}

func (r *Recorder) RecordStrategy(strategy string) {
	if r == nil {
		return
	}
	r.strategies.WithLabelValues(strategy).Inc()
}

func (r *Recorder) RecordCacheLookup(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

func (r *Recorder) ObserveRequest(route, method string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.requestDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(d.Seconds())
}

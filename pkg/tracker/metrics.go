package tracker

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Collector holds the tracker's prometheus metrics on its own registry. The
// kind label is "live" or "pnr".
type Collector struct {
	reg *prometheus.Registry

	Polls         *prometheus.CounterVec
	PollFailures  *prometheus.CounterVec
	EventsEmitted *prometheus.CounterVec

	TickDuration *prometheus.HistogramVec

	TrackedTrips prometheus.Gauge
	WatchedPNRs  prometheus.Gauge

	LiveRefreshInterval prometheus.Gauge
	PNRRefreshInterval  prometheus.Gauge
}

func NewCollector(liveRefreshInterval time.Duration, pnrRefreshInterval time.Duration) *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "railtrack_tracker_polls_total",
			Help: "Total backend polls made.",
		}, []string{"kind"}),
		PollFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "railtrack_tracker_poll_failures_total",
			Help: "Total backend polls that failed.",
		}, []string{"kind"}),
		EventsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "railtrack_tracker_events_emitted_total",
			Help: "Total events published.",
		}, []string{"type"}),
		TickDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "railtrack_tracker_tick_duration_seconds",
			Help:    "Duration of a full refresh of every tracked item.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"kind"}),
		TrackedTrips: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "railtrack_tracker_tracked_trips",
			Help: "Number of trips currently tracked.",
		}),
		WatchedPNRs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "railtrack_tracker_watched_pnrs",
			Help: "Number of PNRs currently watched.",
		}),
		LiveRefreshInterval: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "railtrack_tracker_live_refresh_interval_seconds",
			Help: "Live status refresh interval in seconds.",
		}),
		PNRRefreshInterval: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "railtrack_tracker_pnr_refresh_interval_seconds",
			Help: "PNR status refresh interval in seconds.",
		}),
	}

	reg.MustRegister(
		c.Polls, c.PollFailures, c.EventsEmitted,
		c.TickDuration,
		c.TrackedTrips, c.WatchedPNRs,
		c.LiveRefreshInterval, c.PNRRefreshInterval,
	)

	c.LiveRefreshInterval.Set(liveRefreshInterval.Seconds())
	c.PNRRefreshInterval.Set(pnrRefreshInterval.Seconds())

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on addr.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Str("addr", addr).Msg("Metrics server failed")
		}
	}()
	log.Info().Str("addr", addr).Msg("Metrics listening")
	return srv
}

func (c *Collector) poll(kind string, failed bool) {
	if c == nil {
		return
	}

	c.Polls.WithLabelValues(kind).Inc()
	if failed {
		c.PollFailures.WithLabelValues(kind).Inc()
	}
}

func (c *Collector) event(eventType string) {
	if c == nil {
		return
	}

	c.EventsEmitted.WithLabelValues(eventType).Inc()
}

func (c *Collector) tick(kind string, duration time.Duration) {
	if c == nil {
		return
	}

	c.TickDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

func (c *Collector) setTracked(trips int, pnrs int) {
	if c == nil {
		return
	}

	if trips >= 0 {
		c.TrackedTrips.Set(float64(trips))
	}
	if pnrs >= 0 {
		c.WatchedPNRs.Set(float64(pnrs))
	}
}

package web

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Joseda-hg/dailytodo/internal/tracker"
)

type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
}

// newMetrics uses a private registry so several servers can coexist in one
// process.
func newMetrics(t *tracker.Tracker, logger *zap.Logger) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dailytodo",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
	}
	m.registry.MustRegister(m.requests, newProgressCollector(t, logger))
	return m
}

// progressCollector reads the stored tasks on every scrape, so the gauges
// follow changes made by any front end sharing the database.
type progressCollector struct {
	tracker *tracker.Tracker
	log     *zap.Logger

	totalPercent   *prometheus.Desc
	completedToday *prometheus.Desc
	tasks          *prometheus.Desc
}

func newProgressCollector(t *tracker.Tracker, logger *zap.Logger) *progressCollector {
	return &progressCollector{
		tracker:        t,
		log:            logger,
		totalPercent:   prometheus.NewDesc("dailytodo_total_progress_percent", "Overall progress across counted tasks.", nil, nil),
		completedToday: prometheus.NewDesc("dailytodo_tasks_completed_today", "Tasks updated today.", nil, nil),
		tasks:          prometheus.NewDesc("dailytodo_tasks", "Tasks in the collection.", nil, nil),
	}
}

func (c *progressCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalPercent
	ch <- c.completedToday
	ch <- c.tasks
}

func (c *progressCollector) Collect(ch chan<- prometheus.Metric) {
	state, err := c.tracker.Load(context.Background())
	if err != nil {
		c.log.Error("collect progress metrics", zap.Error(err))
		ch <- prometheus.NewInvalidMetric(c.tasks, err)
		return
	}
	stats := state.Stats(c.tracker.Today())
	ch <- prometheus.MustNewConstMetric(c.totalPercent, prometheus.GaugeValue, float64(state.Totals().Percentage))
	ch <- prometheus.MustNewConstMetric(c.completedToday, prometheus.GaugeValue, float64(stats.CompletedToday))
	ch <- prometheus.MustNewConstMetric(c.tasks, prometheus.GaugeValue, float64(stats.Total))
}

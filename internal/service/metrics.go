package service

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metricsUseCaseObserver struct {
	calls            *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	sessionsRecorded prometheus.Counter
	sessionSeconds   prometheus.Histogram
}

// NewMetricsUseCaseObserver registers use-case metrics with reg and returns
// an observer that updates them.
func NewMetricsUseCaseObserver(reg prometheus.Registerer) UseCaseObserver {
	factory := promauto.With(reg)
	return &metricsUseCaseObserver{
		calls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "era_use_case_total",
			Help: "Service use case executions by name and outcome",
		}, []string{"use_case", "success"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "era_use_case_duration_seconds",
			Help:    "Service use case latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		}, []string{"use_case"}),
		sessionsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "era_sessions_recorded_total",
			Help: "Completed breathing sessions written to the store",
		}),
		sessionSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "era_session_duration_seconds",
			Help:    "Length of recorded breathing sessions",
			Buckets: []float64{5, 10, 15, 20, 30, 60, 120},
		}),
	}
}

func (o *metricsUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.calls.WithLabelValues(event.Name, strconv.FormatBool(event.Success)).Inc()
	o.duration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())

	if event.Name != UseCaseRecordSession || !event.Success {
		return
	}
	o.sessionsRecorded.Inc()
	if sec, ok := event.Fields["duration_sec"].(float64); ok {
		o.sessionSeconds.Observe(sec)
	}
}

// Package metrics exposes Prometheus collectors for flattening activity.
package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const subsystem = "parser"

// Metrics tracks parsed messages, emitted args and failures.
type Metrics struct {
	mu         sync.Mutex
	registerer prometheus.Registerer
	registered bool

	messagesTotal *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	argsTotal     *prometheus.CounterVec
	argsPerMsg    *prometheus.HistogramVec
	duration      *prometheus.HistogramVec
}

func newCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func newHistogramVec(namespace, name, help string, buckets []float64, labels []string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}

// New creates the collectors under namespace. A nil registerer means
// prometheus.DefaultRegisterer.
func New(namespace string, registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &Metrics{
		registerer:    registerer,
		messagesTotal: newCounterVec(namespace, "messages_total", "Number of messages flattened", []string{"type_name", "status"}),
		errorsTotal:   newCounterVec(namespace, "errors_total", "Number of failed flatten calls by error kind", []string{"type_name", "kind"}),
		argsTotal:     newCounterVec(namespace, "args_total", "Number of args emitted by value type", []string{"value_type"}),
		argsPerMsg:    newHistogramVec(namespace, "args_per_message", "Args emitted per flattened message", prometheus.ExponentialBuckets(1, 2, 12), []string{"type_name"}),
		duration:      newHistogramVec(namespace, "duration_seconds", "Time spent flattening one message", prometheus.DefBuckets, []string{"type_name"}),
	}
}

// Register registers the collectors. Safe to call multiple times.
func (m *Metrics) Register() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.registered {
		return nil
	}

	var err error
	if m.messagesTotal, err = registerOrExisting(m.registerer, m.messagesTotal); err != nil {
		return err
	}
	if m.errorsTotal, err = registerOrExisting(m.registerer, m.errorsTotal); err != nil {
		return err
	}
	if m.argsTotal, err = registerOrExisting(m.registerer, m.argsTotal); err != nil {
		return err
	}
	if m.argsPerMsg, err = registerOrExisting(m.registerer, m.argsPerMsg); err != nil {
		return err
	}
	if m.duration, err = registerOrExisting(m.registerer, m.duration); err != nil {
		return err
	}

	m.registered = true
	return nil
}

// registerOrExisting registers c, or returns the collector already
// registered under the same descriptor so observations land in it.
func registerOrExisting[T prometheus.Collector](r prometheus.Registerer, c T) (T, error) {
	err := r.Register(c)
	if err == nil {
		return c, nil
	}
	var already prometheus.AlreadyRegisteredError
	if !errors.As(err, &already) {
		return c, err
	}
	existing, ok := already.ExistingCollector.(T)
	if !ok {
		return c, err
	}
	return existing, nil
}

// ObserveArg counts one emitted value.
func (m *Metrics) ObserveArg(valueType string) {
	m.argsTotal.WithLabelValues(valueType).Inc()
}

// ObserveMessage records the outcome of one flatten call. errKind is empty
// on success.
func (m *Metrics) ObserveMessage(typeName string, args int, elapsed time.Duration, errKind string) {
	status := "ok"
	if errKind != "" {
		status = "error"
		m.errorsTotal.WithLabelValues(typeName, errKind).Inc()
	} else {
		m.argsPerMsg.WithLabelValues(typeName).Observe(float64(args))
	}
	m.messagesTotal.WithLabelValues(typeName, status).Inc()
	m.duration.WithLabelValues(typeName).Observe(elapsed.Seconds())
}

// Package metrics counts nanotodo activity in a prometheus registry.
// The CLI can dump the registry in the textfile format for node_exporter.
package metrics

import (
	"github.com/arthur-debert/nanotodo/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder owns a private registry so several instances can coexist
type Recorder struct {
	registry *prometheus.Registry

	actionsTotal        *prometheus.CounterVec
	noopActionsTotal    *prometheus.CounterVec
	persistenceOpsTotal *prometheus.CounterVec
	persistenceFailures *prometheus.CounterVec
	todos               *prometheus.GaugeVec
	categories          prometheus.Gauge
}

// NewRecorder creates a recorder with all collectors registered
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		actionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nanotodo_actions_total",
				Help: "Total number of dispatched actions",
			},
			[]string{"kind"},
		),
		noopActionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nanotodo_noop_actions_total",
				Help: "Dispatched actions that left the state unchanged",
			},
			[]string{"kind"},
		),
		persistenceOpsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nanotodo_persistence_operations_total",
				Help: "Successful persistence operations",
			},
			[]string{"op"}, // save, load, clear
		),
		persistenceFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nanotodo_persistence_failures_total",
				Help: "Persistence operations that failed and were swallowed",
			},
			[]string{"op"},
		),
		todos: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "nanotodo_todos",
				Help: "Current number of todos",
			},
			[]string{"status"}, // open, completed
		),
		categories: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "nanotodo_categories",
				Help: "Current number of categories",
			},
		),
	}
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ActionApplied counts one dispatch
func (r *Recorder) ActionApplied(kind string, changed bool) {
	r.actionsTotal.WithLabelValues(kind).Inc()
	if !changed {
		r.noopActionsTotal.WithLabelValues(kind).Inc()
	}
}

// ObserveState updates the gauges from a state snapshot
func (r *Recorder) ObserveState(state types.State) {
	open, completed := 0, 0
	for _, t := range state.Todos {
		if t.Completed {
			completed++
		} else {
			open++
		}
	}
	r.todos.WithLabelValues("open").Set(float64(open))
	r.todos.WithLabelValues("completed").Set(float64(completed))
	r.categories.Set(float64(len(state.Categories)))
}

// PersistSucceeded implements storage.Observer
func (r *Recorder) PersistSucceeded(op string) {
	r.persistenceOpsTotal.WithLabelValues(op).Inc()
}

// PersistFailed implements storage.Observer
func (r *Recorder) PersistFailed(op string, _ error) {
	r.persistenceFailures.WithLabelValues(op).Inc()
}

// WriteTextfile writes the current metrics to path in the text exposition
// format, replacing the file atomically
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

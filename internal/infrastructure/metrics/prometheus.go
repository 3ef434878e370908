package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/doeshing/calc-go/internal/ports"
)

// Recorder counts calculations and history writes on a private registry, so
// several recorders can coexist in one process (tests, subcommands).
type Recorder struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	persistence  *prometheus.CounterVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calc",
			Name:      "calculations_total",
			Help:      "Calculations evaluated, by operation and outcome.",
		}, []string{"operation", "outcome"}),
		persistence: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calc",
			Name:      "history_operations_total",
			Help:      "History store operations, by action and result.",
		}, []string{"action", "result"}),
	}
	r.registry.MustRegister(r.calculations, r.persistence)
	return r
}

// ObserveCalculation implements ports.Metrics.
func (r *Recorder) ObserveCalculation(op string, outcome string) {
	r.calculations.WithLabelValues(op, outcome).Inc()
}

// ObservePersistence implements ports.Metrics.
func (r *Recorder) ObservePersistence(action string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.persistence.WithLabelValues(action, result).Inc()
}

// Gatherer exposes the registry for export.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile dumps the counters in the node_exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

var _ ports.Metrics = (*Recorder)(nil)

// Package metrics exposes yearly summaries as Prometheus gauges.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/etnz/household"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "household"

// Exporter is a household.Sink setting one gauge per summary field, labelled
// by run and year.
type Exporter struct {
	run      string
	registry *prometheus.Registry
	fields   *prometheus.GaugeVec
	years    prometheus.Counter
}

// NewExporter returns an exporter with its own registry.
func NewExporter(run string) *Exporter {
	e := &Exporter{
		run:      run,
		registry: prometheus.NewRegistry(),
		fields: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "summary_value",
			Help:      "Value of a yearly summary field.",
		}, []string{"run", "year", "field"}),
		years: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "years_simulated_total",
			Help:        "Number of simulated years.",
			ConstLabels: prometheus.Labels{"run": run},
		}),
	}
	e.registry.MustRegister(e.fields, e.years)
	return e
}

// Registry returns the registry holding the exporter's metrics.
func (e *Exporter) Registry() *prometheus.Registry { return e.registry }

// Gauge returns the gauge of a field for a year.
func (e *Exporter) Gauge(year int, field string) prometheus.Gauge {
	return e.fields.WithLabelValues(e.run, strconv.Itoa(year), field)
}

func (e *Exporter) Append(s household.YearSummary) error {
	for _, f := range s.Fields() {
		if f.Name == "year" {
			continue
		}
		e.Gauge(s.Year, f.Name).Set(f.Value)
	}
	e.years.Inc()
	return nil
}

// WriteTextfile writes the metrics in the text format of the node exporter
// textfile collector.
func (e *Exporter) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return fmt.Errorf("writing metrics to %q: %w", path, err)
	}
	return nil
}

package report

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "socleaner"

// WriteMetrics stores the run summary at path in the Prometheus text format,
// for pickup by the node_exporter textfile collector.
func WriteMetrics(path string, s *Summary) error {
	reg := prometheus.NewRegistry()

	loaded := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rows_loaded",
		Help:      "Rows read from the input file.",
	})
	malformed := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "malformed_lines",
		Help:      "Input lines skipped or reshaped because of an irregular field count.",
	})
	removed := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rows_removed",
		Help:      "Rows removed by each filter stage.",
	}, []string{"stage"})
	written := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rows_written",
		Help:      "Rows written to the cleaned file.",
	})
	meanLength := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mean_length_chars",
		Help:      "Mean character length of each text field after cleaning.",
	}, []string{"field"})
	lastSuccess := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last successful run.",
	})

	reg.MustRegister(loaded, malformed, removed, written, meanLength, lastSuccess)

	loaded.Set(float64(s.Loaded))
	malformed.Set(float64(s.Malformed))
	written.Set(float64(s.Stats.Total))

	for _, st := range s.Stages {
		removed.WithLabelValues(st.Name).Set(float64(st.Removed))
	}

	for _, m := range s.Stats.Means {
		meanLength.WithLabelValues(m.Field).Set(m.Mean)
	}

	lastSuccess.Set(float64(time.Now().Unix()))

	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}

	return nil
}

// Package pipeline runs one cleaning pass: load, filter, write, report.
package pipeline

import (
	"time"

	"github.com/google/uuid"

	"socleaner/internal/config"
	"socleaner/internal/dataset"
	"socleaner/internal/logger"
	"socleaner/internal/normalizer"
	"socleaner/internal/report"
	"socleaner/pkg/metadata"
)

// Pipeline wires the loader, processor and writer for a configuration.
type Pipeline struct {
	cfg *config.Config
	log *logger.Logger
}

// New creates a pipeline. cfg must already be validated.
func New(cfg *config.Config, log *logger.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, log: log}
}

// Run executes the whole pipeline. Nothing is written unless loading and
// processing succeed. Once the output is in place, fingerprint and metrics
// failures are logged but do not fail the run.
func (p *Pipeline) Run() (*report.Summary, error) {
	start := time.Now()
	runID := uuid.New().String()
	log := p.log.With("run_id", runID)

	log.Info("reading dataset", "path", p.cfg.Input.Path, "encoding", p.cfg.Input.Encoding)

	loaded, err := dataset.NewLoader(p.cfg.LoaderOptions(), log).Load(p.cfg.Input.Path)
	if err != nil {
		return nil, err
	}

	log.Info("dataset loaded",
		"rows", loaded.Table.Len(),
		"strategy", loaded.Strategy,
		"malformed_lines", loaded.Malformed)

	result, err := normalizer.NewProcessor(p.cfg.FilterOptions(), log).Process(loaded.Table)
	if err != nil {
		return nil, err
	}

	if err := dataset.NewWriter(p.cfg.WriterOptions(), log).Write(p.cfg.Output.Path, result.Table); err != nil {
		return nil, err
	}

	meta := fingerprint(p.cfg.Output.Path, log)

	summary := &report.Summary{
		RunID:      runID,
		InputPath:  p.cfg.Input.Path,
		OutputPath: p.cfg.Output.Path,
		Strategy:   loaded.Strategy,
		Loaded:     result.Input,
		Malformed:  loaded.Malformed,
		Stages:     result.Stages,
		Output:     meta,
		Stats:      report.Compute(result.Table, p.cfg.ReportOptions()),
		Duration:   time.Since(start),
	}

	if path := p.cfg.Report.MetricsFile; path != "" {
		if err := report.WriteMetrics(path, summary); err != nil {
			log.Warn("metrics not written", "path", path, "error", err)
		} else {
			log.Debug("metrics written", "path", path)
		}
	}

	log.Info("run complete",
		"rows_in", summary.Loaded,
		"rows_out", summary.Stats.Total,
		"removed", summary.Removed(),
		"sha256", meta.ShortHash(),
		"duration", summary.Duration)

	return summary, nil
}

// fingerprint hashes the written output. It returns nil if the file cannot be read.
func fingerprint(path string, log *logger.Logger) *metadata.Metadata {
	meta, err := metadata.FromFile(path)
	if err != nil {
		log.Warn("output fingerprint unavailable", "path", path, "error", err)
		return nil
	}

	return meta
}

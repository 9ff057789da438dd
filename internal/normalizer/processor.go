package normalizer

import (
	"fmt"

	"socleaner/internal/logger"
	"socleaner/internal/models"
)

// Stage names, in execution order.
const (
	StageMissingFields = "missing_fields"
	StageErrorMarker   = "error_marker"
	StageNormalize     = "normalize"
	StageDuplicates    = "duplicates"
	StageShortAnswers  = "short_answers"
)

// StageResult records what one stage of the chain removed.
type StageResult struct {
	Name      string
	Removed   int
	Remaining int
}

// Result is the outcome of running the filter chain.
type Result struct {
	Table  *models.Table
	Input  int
	Stages []StageResult
}

// Removed returns the total number of records dropped by all stages.
func (r *Result) Removed() int {
	total := 0
	for _, s := range r.Stages {
		total += s.Removed
	}

	return total
}

// Processor runs the ordered filter chain over a table.
type Processor struct {
	opts        Options
	validator   *Validator
	transformer *Transformer
	log         *logger.Logger
}

// NewProcessor creates a new processor instance.
func NewProcessor(opts Options, log *logger.Logger) *Processor {
	return &Processor{
		opts:        opts,
		validator:   NewValidator(opts),
		transformer: NewTransformer(opts.TextFields),
		log:         log,
	}
}

type stage struct {
	name  string
	quiet bool // only worth an info line when something was removed
	run   func(*models.Table) int
}

// Process filters and normalizes table in place. Each record is removed by at
// most one stage: the first whose condition it matches. The surviving records
// are renumbered from 0.
func (p *Processor) Process(table *models.Table) (*Result, error) {
	if err := table.RequireColumns(p.opts.columns()...); err != nil {
		return nil, fmt.Errorf("cannot process table: %w", err)
	}

	stages := []stage{
		{name: StageMissingFields, run: func(t *models.Table) int {
			return t.Filter(func(i int) bool { return p.validator.HasRequiredFields(t, i) })
		}},
		{name: StageErrorMarker, quiet: true, run: func(t *models.Table) int {
			return t.Filter(func(i int) bool { return !p.validator.HasErrorMarker(t, i) })
		}},
		{name: StageNormalize, quiet: true, run: func(t *models.Table) int {
			changed := p.transformer.Transform(t)
			p.log.Debug("text fields normalized", "cells_changed", changed)

			return 0
		}},
		{name: StageDuplicates, quiet: true, run: func(t *models.Table) int {
			return Deduplicate(t, p.opts.DedupKey)
		}},
		{name: StageShortAnswers, run: func(t *models.Table) int {
			return t.Filter(func(i int) bool { return p.validator.MeetsMinLength(t, i) })
		}},
	}

	result := &Result{Table: table, Input: table.Len()}

	for _, s := range stages {
		removed := s.run(table)
		result.Stages = append(result.Stages, StageResult{Name: s.name, Removed: removed, Remaining: table.Len()})

		args := []any{"stage", s.name, "removed", removed, "remaining", table.Len()}
		if s.name == StageShortAnswers {
			args = append(args, "min_length", p.opts.MinLength)
		}

		if s.quiet && removed == 0 {
			p.log.Debug("stage complete", args...)
		} else {
			p.log.Info("stage complete", args...)
		}
	}

	table.ResetIndex()

	return result, nil
}

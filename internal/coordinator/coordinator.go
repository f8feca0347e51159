package coordinator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"coinextractor/internal/extractor"
)

// Record is one line of coordinator output
type Record struct {
	Job    extractor.MarketRangeRequest `json:"job"`
	Result *extractor.ExtractionResult  `json:"result"`
}

// Report summarizes a run
type Report struct {
	Succeeded int
	Failed    []extractor.MarketRangeRequest
}

// Coordinator drives an extractor over a list of jobs, one at a time, and
// writes each successful result as a JSON line
type Coordinator struct {
	extractor extractor.Extractor
	out       io.Writer
	logger    *zap.Logger
}

// New creates a new Coordinator writing results to out
func New(ext extractor.Extractor, out io.Writer, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		extractor: ext,
		out:       out,
		logger:    logger,
	}
}

// Run executes every job in order. A failed job is recorded in the report and
// does not stop the run; cancellation of ctx does, between jobs.
func (c *Coordinator) Run(ctx context.Context, jobs []extractor.MarketRangeRequest) (*Report, error) {
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no jobs configured")
	}

	if !c.extractor.ValidateParameters() {
		return nil, fmt.Errorf("extractor configuration is invalid")
	}

	enc := json.NewEncoder(c.out)
	report := &Report{}

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("run interrupted after %d of %d jobs: %w", i, len(jobs), err)
		}

		result := c.extractor.ExtractDataFromSource(ctx, job)
		if result == nil {
			c.logger.Warn("job failed", zap.Stringer("job", job))
			report.Failed = append(report.Failed, job)
			continue
		}

		if err := enc.Encode(Record{Job: job, Result: result}); err != nil {
			return report, fmt.Errorf("failed to write result for %s: %w", job, err)
		}
		report.Succeeded++
	}

	c.logger.Info("run completed",
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", len(report.Failed)))

	return report, nil
}

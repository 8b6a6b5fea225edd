package cleanup

import (
	"context"
	"errors"
	"fmt"
	"golang.org/x/sync/errgroup"
	"job-traveler/internal/service/traveler"
	"job-traveler/internal/storage"
	"strings"
)

type TravelerReader interface {
	GetJobTraveler(ctx context.Context, jobNumber string) (*storage.Report, error)
}

type JobCleanup struct {
	JobNumber  string                    `json:"jobNumber"`
	Customer   string                    `json:"customer"`
	Operations []storage.OperationReport `json:"operations"`
}

type Result struct {
	Jobs     []JobCleanup `json:"jobs"`
	NotFound []string     `json:"notFound"`
}

// Sweep builds the traveler of several jobs and keeps the setup operations
// flagged for cleanup.
type Sweep struct {
	reader      TravelerReader
	concurrency int
}

func NewSweep(reader TravelerReader, concurrency int) *Sweep {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Sweep{reader: reader, concurrency: concurrency}
}

// Run keeps the input order of jobs in the result. Duplicate and blank job
// numbers are dropped. Unknown jobs are reported in NotFound; any other
// failure aborts the whole sweep.
func (s *Sweep) Run(ctx context.Context, jobNumbers []string) (*Result, error) {
	const op = "service.cleanup.Run"

	jobs := dedupe(jobNumbers)
	reports := make([]*storage.Report, len(jobs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			report, err := s.reader.GetJobTraveler(gCtx, job)
			if err != nil {
				if errors.Is(err, traveler.ErrJobNotFound) {
					return nil
				}
				return fmt.Errorf("job %s: %w", job, err)
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &Result{Jobs: []JobCleanup{}, NotFound: []string{}}
	for i, report := range reports {
		if report == nil {
			result.NotFound = append(result.NotFound, jobs[i])
			continue
		}

		var ops []storage.OperationReport
		for _, o := range report.Operations {
			if o.ActionNeeded == traveler.ActionCleanup {
				ops = append(ops, o)
			}
		}
		if len(ops) == 0 {
			continue
		}

		result.Jobs = append(result.Jobs, JobCleanup{
			JobNumber:  report.Job.JobNumber,
			Customer:   report.Job.Customer,
			Operations: ops,
		})
	}

	return result, nil
}

func dedupe(jobNumbers []string) []string {
	seen := make(map[string]struct{}, len(jobNumbers))
	out := make([]string, 0, len(jobNumbers))

	for _, j := range jobNumbers {
		j = strings.TrimSpace(j)
		if j == "" {
			continue
		}
		if _, ok := seen[j]; ok {
			continue
		}
		seen[j] = struct{}{}
		out = append(out, j)
	}

	return out
}

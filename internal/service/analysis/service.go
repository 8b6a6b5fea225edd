package analysis

import (
	"context"
	"fmt"
	"job-traveler/internal/clock"
	"job-traveler/internal/storage"
	"time"
)

type TravelerReader interface {
	GetJobTraveler(ctx context.Context, jobNumber string) (*storage.Report, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, report *storage.Report) (string, error)
}

type JobAnalysis struct {
	JobNumber    string          `json:"jobNumber"`
	Analysis     string          `json:"analysis"`
	TravelerData *storage.Report `json:"travelerData"`
	Timestamp    time.Time       `json:"timestamp"`
}

type Service struct {
	reader   TravelerReader
	analyzer Analyzer
	clock    clock.Clock
}

func NewService(reader TravelerReader, analyzer Analyzer, clk clock.Clock) *Service {
	return &Service{reader: reader, analyzer: analyzer, clock: clk}
}

// AnalyzeJob runs the traveler read path and forwards the report to the
// analyzer. Errors from either step are returned as is.
func (s *Service) AnalyzeJob(ctx context.Context, jobNumber string) (*JobAnalysis, error) {
	const op = "service.analysis.AnalyzeJob"

	report, err := s.reader.GetJobTraveler(ctx, jobNumber)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	narrative, err := s.analyzer.Analyze(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("%s: job %s: %w", op, report.Job.JobNumber, err)
	}

	return &JobAnalysis{
		JobNumber:    report.Job.JobNumber,
		Analysis:     narrative,
		TravelerData: report,
		Timestamp:    s.clock.Now().UTC(),
	}, nil
}

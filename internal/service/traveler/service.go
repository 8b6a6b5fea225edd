package traveler

import (
	"context"
	"errors"
	"fmt"
	"job-traveler/internal/clock"
	"job-traveler/internal/storage"
	"strings"
	"time"
)

var (
	ErrJobNotFound  = errors.New("job not found")
	ErrMalformedRow = errors.New("malformed traveler row")
	ErrUpstream     = errors.New("upstream failure")
)

type RowFetcher interface {
	GetTravelerRows(ctx context.Context, jobNumber string, since time.Time) ([]storage.TravelerRow, error)
}

// TravelerService is the read path: fetch the job's rows, then build the report.
// Nothing is cached between calls.
type TravelerService struct {
	fetcher RowFetcher
	builder *Builder
	clock   clock.Clock
}

func NewTravelerService(fetcher RowFetcher, builder *Builder, clk clock.Clock) *TravelerService {
	return &TravelerService{
		fetcher: fetcher,
		builder: builder,
		clock:   clk,
	}
}

func (s *TravelerService) GetJobTraveler(ctx context.Context, jobNumber string) (*storage.Report, error) {
	const op = "service.traveler.GetJobTraveler"

	jobNumber = strings.TrimSpace(jobNumber)
	if jobNumber == "" {
		return nil, fmt.Errorf("%s: empty job number: %w", op, ErrJobNotFound)
	}

	now := s.clock.Now()

	rows, err := s.fetcher.GetTravelerRows(ctx, jobNumber, now.Add(-s.builder.Window()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrUpstream, err)
	}

	report, err := s.builder.Build(rows, now)
	if err != nil {
		return nil, fmt.Errorf("%s: job %s: %w", op, jobNumber, err)
	}

	return report, nil
}

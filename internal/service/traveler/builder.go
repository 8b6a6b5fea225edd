package traveler

import (
	"fmt"
	"job-traveler/internal/storage"
	"sort"
	"strings"
	"time"
)

type Builder struct {
	classifier *Classifier
	window     time.Duration
}

func NewBuilder(classifier *Classifier, window time.Duration) *Builder {
	return &Builder{classifier: classifier, window: window}
}

// Window is the trailing period of time-log entries taken into account.
func (b *Builder) Window() time.Duration {
	return b.window
}

// Build turns the flat rows of one job into a traveler report. All rows are
// materialized first so every operation is classified against the full
// sibling set.
func (b *Builder) Build(rows []storage.TravelerRow, now time.Time) (*storage.Report, error) {
	const op = "service.traveler.Build"

	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrJobNotFound)
	}

	first := rows[0]
	if first.Job == nil || strings.TrimSpace(*first.Job) == "" {
		return nil, fmt.Errorf("%s: rows carry no job header: %w", op, ErrJobNotFound)
	}
	jobNumber := *first.Job

	// pass 1: validate and group entries by operation, keeping first-seen order
	var (
		operations []storage.Operation
		entries    [][]storage.TimeEntry
		index      = make(map[int64]int)
	)

	for i, row := range rows {
		if err := validateRow(row, jobNumber); err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", op, i, err)
		}

		idx, ok := index[*row.JobOperation]
		if !ok {
			idx = len(operations)
			index[*row.JobOperation] = idx
			operations = append(operations, operationFromRow(row))
			entries = append(entries, nil)
		}

		if row.Time != nil {
			entries[idx] = append(entries[idx], *row.Time)
		}
	}

	// pass 2: aggregate and classify against the materialized set
	reports := make([]storage.OperationReport, len(operations))
	for i, o := range operations {
		reports[i] = storage.OperationReport{
			Operation:      o,
			TimeAggregate:  Aggregate(entries[i], now, b.window),
			Classification: b.classifier.Classify(o, operations),
		}
	}

	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].Sequence != reports[j].Sequence {
			return reports[i].Sequence < reports[j].Sequence
		}
		return reports[i].OperationService < reports[j].OperationService
	})

	return &storage.Report{
		Job: storage.Job{
			JobNumber:  jobNumber,
			Customer:   deref(first.Customer),
			PartNumber: deref(first.PartNumber),
			Status:     deref(first.JobStatus),
			StatusDate: first.JobStatusDate,
		},
		Operations: reports,
		Summary:    b.Summarize(reports),
	}, nil
}

// Summarize counts operations per category. It is always derived from the
// operation list, never stored separately.
func (b *Builder) Summarize(ops []storage.OperationReport) storage.Summary {
	s := storage.Summary{TotalOperations: len(ops)}

	for _, o := range ops {
		if b.classifier.IsSetup(o.WorkCenter) {
			s.SetupOperations++
		} else {
			s.ProductionOperations++
		}

		switch o.StatusCode {
		case StatusComplete:
			s.CompleteOperations++
		case StatusStarted:
			s.ActiveOperations++
		case StatusOpen:
			s.OpenOperations++
		}
	}

	return s
}

func validateRow(row storage.TravelerRow, jobNumber string) error {
	switch {
	case row.Job == nil:
		return fmt.Errorf("%w: missing job", ErrMalformedRow)
	case *row.Job != jobNumber:
		return fmt.Errorf("%w: row belongs to job %q, expected %q", ErrMalformedRow, *row.Job, jobNumber)
	case row.JobOperation == nil:
		return fmt.Errorf("%w: missing job operation", ErrMalformedRow)
	case row.Sequence == nil:
		return fmt.Errorf("%w: operation %d has no sequence", ErrMalformedRow, *row.JobOperation)
	case row.WorkCenter == nil:
		return fmt.Errorf("%w: operation %d has no work center", ErrMalformedRow, *row.JobOperation)
	case row.StatusCode == nil:
		return fmt.Errorf("%w: operation %d has no status", ErrMalformedRow, *row.JobOperation)
	}

	return nil
}

func operationFromRow(row storage.TravelerRow) storage.Operation {
	return storage.Operation{
		JobOperation:     *row.JobOperation,
		Sequence:         *row.Sequence,
		WorkCenter:       *row.WorkCenter,
		OperationService: deref(row.OperationService),
		Description:      deref(row.Description),
		StatusCode:       *row.StatusCode,
		ActualStart:      row.ActualStart,
		RequiredQty:      row.RequiredQty,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"job-traveler/internal/storage"
	"time"
)

// One row per (operation, time-log entry). Operations without entries in the
// window come back once with NULL time columns.
const stmtTravelerRows = `
	SELECT
		j.Job,
		j.Customer,
		j.Part_Number,
		j.Status,
		j.Status_Date,

		jo.Job_Operation,
		jo.Sequence,
		jo.Work_Center,
		jo.Operation_Service,
		jo.Description,
		jo.Status,
		jo.Actual_Start,
		jo.Est_Required_Qty,

		jot.Job_Operation_Time,
		jot.Work_Date,
		jot.Last_Updated,
		jot.Act_Run_Hrs,
		jot.Act_Run_Qty,
		e.Employee,
		e.First_Name,
		e.Last_Name
	FROM job j
		INNER JOIN job_operation jo ON jo.Job = j.Job
		LEFT JOIN job_operation_time jot
			ON jot.Job_Operation = jo.Job_Operation
			AND jot.Work_Date >= ?
		LEFT JOIN employee e ON e.Employee = jot.Employee
	WHERE j.Job = ?
	ORDER BY jo.Sequence, jo.Operation_Service, jo.Job_Operation,
		jot.Work_Date, jot.Last_Updated, jot.Job_Operation_Time`

// GetTravelerRows returns the flat traveler rows of one job. An unknown job
// yields an empty slice and no error.
func (s *Storage) GetTravelerRows(ctx context.Context, jobNumber string, since time.Time) ([]storage.TravelerRow, error) {
	const op = "storage.mysql.GetTravelerRows"

	rows, err := s.db.QueryContext(ctx, stmtTravelerRows, since, jobNumber)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query traveler rows for job %s: %w", op, jobNumber, err)
	}
	defer rows.Close()

	result := []storage.TravelerRow{}

	for rows.Next() {
		var (
			job, customer, partNumber, jobStatus sql.NullString
			jobStatusDate                        sql.NullTime
			jobOperation                         sql.NullInt64
			sequence                             sql.NullInt32
			workCenter, opService, descr, opStat sql.NullString
			actualStart                          sql.NullTime
			requiredQty                          sql.NullFloat64
			timeID                               sql.NullInt64
			workDate, lastUpdated                sql.NullTime
			runHours, runQty                     sql.NullFloat64
			employee, firstName, lastName        sql.NullString
		)

		err := rows.Scan(
			&job, &customer, &partNumber, &jobStatus, &jobStatusDate,
			&jobOperation, &sequence, &workCenter, &opService, &descr, &opStat, &actualStart, &requiredQty,
			&timeID, &workDate, &lastUpdated, &runHours, &runQty, &employee, &firstName, &lastName,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan traveler row: %w", op, err)
		}

		row := storage.TravelerRow{
			Job:              nullString(job),
			Customer:         nullString(customer),
			PartNumber:       nullString(partNumber),
			JobStatus:        nullString(jobStatus),
			JobStatusDate:    nullTime(jobStatusDate),
			JobOperation:     nullInt64(jobOperation),
			WorkCenter:       nullString(workCenter),
			OperationService: nullString(opService),
			Description:      nullString(descr),
			StatusCode:       nullString(opStat),
			ActualStart:      nullTime(actualStart),
			RequiredQty:      nullFloat64(requiredQty),
		}
		if sequence.Valid {
			seq := int(sequence.Int32)
			row.Sequence = &seq
		}

		// A LEFT JOIN miss leaves the whole time block NULL.
		if timeID.Valid && workDate.Valid {
			row.Time = &storage.TimeEntry{
				ID:          timeID.Int64,
				WorkDate:    workDate.Time,
				LastUpdated: nullTime(lastUpdated),
				RunHours:    runHours.Float64,
				RunQty:      runQty.Float64,
				Employee:    nullString(employee),
				FirstName:   nullString(firstName),
				LastName:    nullString(lastName),
			}
		}

		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return result, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullFloat64(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

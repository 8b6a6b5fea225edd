package storage

import "time"

// TravelerRow is one flat row of the job traveler query: job header, operation
// and at most one time-log entry. Nullable columns are pointers so missing
// required values can be told apart from zero values.
type TravelerRow struct {
	Job           *string
	Customer      *string
	PartNumber    *string
	JobStatus     *string
	JobStatusDate *time.Time

	JobOperation     *int64
	Sequence         *int
	WorkCenter       *string
	OperationService *string
	Description      *string
	StatusCode       *string
	ActualStart      *time.Time
	RequiredQty      *float64

	// Time is nil when the operation has no time-log entry in the window.
	Time *TimeEntry
}

type TimeEntry struct {
	ID          int64
	WorkDate    time.Time
	LastUpdated *time.Time
	RunHours    float64
	RunQty      float64
	// Employee is nil when the entry has no matching employee record.
	Employee    *string
	FirstName   *string
	LastName    *string
}

type Job struct {
	JobNumber  string     `json:"jobNumber"`
	Customer   string     `json:"customer"`
	PartNumber string     `json:"partNumber"`
	Status     string     `json:"status"`
	StatusDate *time.Time `json:"statusDate"`
}

type Operation struct {
	JobOperation     int64      `json:"jobOperation"`
	Sequence         int        `json:"sequence"`
	WorkCenter       string     `json:"workCenter"`
	OperationService string     `json:"operationService"`
	Description      string     `json:"description"`
	StatusCode       string     `json:"statusCode"`
	ActualStart      *time.Time `json:"actualStart"`
	RequiredQty      *float64   `json:"requiredQty"`
}

type TimeAggregate struct {
	TotalHours        float64    `json:"totalHours"`
	QtyProduced       float64    `json:"qtyProduced"`
	LastWorkDate      *time.Time `json:"lastWorkDate"`
	DaysSinceLastWork *int       `json:"daysSinceLastWork"`
	LatestOperator    *string    `json:"latestOperator"`
}

type Classification struct {
	StatusMeaning string `json:"statusMeaning"`
	StatusCheck   string `json:"statusCheck"`
	ActionNeeded  string `json:"actionNeeded"`
}

// OperationReport is an operation together with its derived time and status
// annotations. The embedded structs flatten into one JSON object.
type OperationReport struct {
	Operation
	TimeAggregate
	Classification
}

type Summary struct {
	TotalOperations      int `json:"totalOperations"`
	SetupOperations      int `json:"setupOperations"`
	ProductionOperations int `json:"productionOperations"`
	CompleteOperations   int `json:"completeOperations"`
	ActiveOperations     int `json:"activeOperations"`
	OpenOperations       int `json:"openOperations"`
}

type Report struct {
	Job        Job               `json:"job"`
	Operations []OperationReport `json:"operations"`
	Summary    Summary           `json:"summary"`
}

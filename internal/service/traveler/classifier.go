package traveler

import "job-traveler/internal/storage"

const (
	DefaultSetupWorkCenter = "SM SETUPM"

	StatusOpen     = "O"
	StatusReady    = "R"
	StatusStarted  = "S"
	StatusComplete = "C"
	StatusOnHold   = "H"
)

// Status-check categories.
const (
	CheckSetupComplete      = "Setup Complete"
	CheckSetupOpen          = "Setup OPEN - Needs Closure"
	CheckProductionComplete = "Production Complete"
	CheckProductionStarted  = "Production Started"
	CheckProductionOpen     = "Production Open"
	CheckOther              = "Other Status"
)

// Action-needed recommendations.
const (
	ActionCleanup   = "CLEANUP NEEDED: Close this setup operation"
	ActionSetupOpen = "Setup still open (may be OK if production is active)"
	ActionNone      = "No action needed"
	ActionActive    = "Active operation"
)

var DefaultCompletionStatuses = []string{"C", "Complete", "Closed"}

var statusMeanings = map[string]string{
	StatusOpen:     "Open",
	StatusReady:    "Ready",
	StatusStarted:  "Started",
	StatusComplete: "Complete",
	StatusOnHold:   "On Hold",
}

// Classifier derives status annotations. Cleanup detection looks at sibling
// operations, so Classify must always get the job's full operation set.
type Classifier struct {
	setupWorkCenter string
	completion      map[string]struct{}
}

func NewClassifier(setupWorkCenter string, completionStatuses []string) *Classifier {
	if setupWorkCenter == "" {
		setupWorkCenter = DefaultSetupWorkCenter
	}
	if len(completionStatuses) == 0 {
		completionStatuses = DefaultCompletionStatuses
	}

	completion := make(map[string]struct{}, len(completionStatuses))
	for _, s := range completionStatuses {
		completion[s] = struct{}{}
	}

	return &Classifier{
		setupWorkCenter: setupWorkCenter,
		completion:      completion,
	}
}

// StatusMeaning maps a raw status code to its display string. Unknown codes are
// returned unchanged.
func StatusMeaning(code string) string {
	if m, ok := statusMeanings[code]; ok {
		return m
	}
	return code
}

func (c *Classifier) IsComplete(status string) bool {
	_, ok := c.completion[status]
	return ok
}

func (c *Classifier) IsSetup(workCenter string) bool {
	return workCenter == c.setupWorkCenter
}

func (c *Classifier) StatusCheck(op storage.Operation) string {
	setup := c.IsSetup(op.WorkCenter)
	complete := c.IsComplete(op.StatusCode)

	switch {
	case setup && complete:
		return CheckSetupComplete
	case setup:
		return CheckSetupOpen
	case complete:
		return CheckProductionComplete
	case op.StatusCode == StatusStarted:
		return CheckProductionStarted
	case op.StatusCode == StatusOpen:
		return CheckProductionOpen
	default:
		return CheckOther
	}
}

func (c *Classifier) ActionNeeded(op storage.Operation, siblings []storage.Operation) string {
	complete := c.IsComplete(op.StatusCode)

	if c.IsSetup(op.WorkCenter) && !complete {
		if c.hasCompleteProduction(siblings) {
			return ActionCleanup
		}
		return ActionSetupOpen
	}

	if complete {
		return ActionNone
	}

	return ActionActive
}

func (c *Classifier) hasCompleteProduction(ops []storage.Operation) bool {
	for _, o := range ops {
		if !c.IsSetup(o.WorkCenter) && c.IsComplete(o.StatusCode) {
			return true
		}
	}
	return false
}

// Classify annotates op given every operation of its job (op may be included).
func (c *Classifier) Classify(op storage.Operation, siblings []storage.Operation) storage.Classification {
	return storage.Classification{
		StatusMeaning: StatusMeaning(op.StatusCode),
		StatusCheck:   c.StatusCheck(op),
		ActionNeeded:  c.ActionNeeded(op, siblings),
	}
}

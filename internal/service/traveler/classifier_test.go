package traveler

import (
	"github.com/stretchr/testify/assert"
	"job-traveler/internal/storage"
	"testing"
)

func newTestClassifier() *Classifier {
	return NewClassifier(DefaultSetupWorkCenter, DefaultCompletionStatuses)
}

func setupOp(status string) storage.Operation {
	return storage.Operation{JobOperation: 1, Sequence: 0, WorkCenter: DefaultSetupWorkCenter, StatusCode: status}
}

func prodOp(status string) storage.Operation {
	return storage.Operation{JobOperation: 2, Sequence: 10, WorkCenter: "LATHE1", StatusCode: status}
}

func TestStatusMeaning(t *testing.T) {
	tests := map[string]string{
		"O":      "Open",
		"R":      "Ready",
		"S":      "Started",
		"C":      "Complete",
		"H":      "On Hold",
		"X":      "X",
		"Closed": "Closed",
		"":       "",
	}

	for code, want := range tests {
		assert.Equal(t, want, StatusMeaning(code), "code %q", code)
	}
}

func TestClassifier_StatusCheck(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		name string
		op   storage.Operation
		want string
	}{
		{"setup complete", setupOp("C"), CheckSetupComplete},
		{"setup closed spelling", setupOp("Closed"), CheckSetupComplete},
		{"setup open", setupOp("O"), CheckSetupOpen},
		{"setup started", setupOp("S"), CheckSetupOpen},
		{"production complete", prodOp("C"), CheckProductionComplete},
		{"production complete spelling", prodOp("Complete"), CheckProductionComplete},
		{"production started", prodOp("S"), CheckProductionStarted},
		{"production open", prodOp("O"), CheckProductionOpen},
		{"production ready", prodOp("R"), CheckOther},
		{"production on hold", prodOp("H"), CheckOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.StatusCheck(tt.op))
		})
	}
}

func TestClassifier_ActionNeeded(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		name     string
		op       storage.Operation
		siblings []storage.Operation
		want     string
	}{
		{
			name:     "open setup with complete production",
			op:       setupOp("O"),
			siblings: []storage.Operation{setupOp("O"), prodOp("C")},
			want:     ActionCleanup,
		},
		{
			name:     "open setup with production closed spelling",
			op:       setupOp("O"),
			siblings: []storage.Operation{setupOp("O"), prodOp("Closed")},
			want:     ActionCleanup,
		},
		{
			name:     "open setup with active production",
			op:       setupOp("O"),
			siblings: []storage.Operation{setupOp("O"), prodOp("S")},
			want:     ActionSetupOpen,
		},
		{
			name:     "open setup alone",
			op:       setupOp("O"),
			siblings: []storage.Operation{setupOp("O")},
			want:     ActionSetupOpen,
		},
		{
			name:     "complete setup sibling does not count as production",
			op:       setupOp("S"),
			siblings: []storage.Operation{setupOp("S"), setupOp("C")},
			want:     ActionSetupOpen,
		},
		{
			name:     "complete setup",
			op:       setupOp("C"),
			siblings: []storage.Operation{setupOp("C"), prodOp("C")},
			want:     ActionNone,
		},
		{
			name:     "complete production",
			op:       prodOp("Complete"),
			siblings: []storage.Operation{prodOp("Complete")},
			want:     ActionNone,
		},
		{
			name:     "started production",
			op:       prodOp("S"),
			siblings: []storage.Operation{setupOp("O"), prodOp("S")},
			want:     ActionActive,
		},
		{
			name:     "held production",
			op:       prodOp("H"),
			siblings: []storage.Operation{prodOp("H")},
			want:     ActionActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ActionNeeded(tt.op, tt.siblings))
		})
	}
}

// A setup operation left open becomes a cleanup item exactly when some
// production sibling is in a completion state.
func TestClassifier_CleanupIffProductionComplete(t *testing.T) {
	c := newTestClassifier()

	for _, prodStatus := range []string{"O", "R", "S", "C", "H", "Complete", "Closed", "Done"} {
		siblings := []storage.Operation{setupOp("O"), prodOp(prodStatus)}
		got := c.ActionNeeded(setupOp("O"), siblings)

		if c.IsComplete(prodStatus) {
			assert.Equal(t, ActionCleanup, got, "production status %q", prodStatus)
		} else {
			assert.Equal(t, ActionSetupOpen, got, "production status %q", prodStatus)
		}
	}
}

func TestClassifier_ConfiguredPolicy(t *testing.T) {
	c := NewClassifier("SETUP", []string{"DONE"})

	setup := storage.Operation{WorkCenter: "SETUP", StatusCode: "O"}
	prod := storage.Operation{WorkCenter: "MILL", StatusCode: "DONE"}

	assert.True(t, c.IsSetup("SETUP"))
	assert.False(t, c.IsSetup(DefaultSetupWorkCenter))
	assert.False(t, c.IsComplete("C"))
	assert.Equal(t, CheckProductionComplete, c.StatusCheck(prod))
	assert.Equal(t, ActionCleanup, c.ActionNeeded(setup, []storage.Operation{setup, prod}))
}

func TestNewClassifier_Defaults(t *testing.T) {
	c := NewClassifier("", nil)

	assert.True(t, c.IsSetup(DefaultSetupWorkCenter))
	for _, s := range DefaultCompletionStatuses {
		assert.True(t, c.IsComplete(s))
	}
}

func TestClassifier_Classify(t *testing.T) {
	c := newTestClassifier()

	got := c.Classify(prodOp("S"), []storage.Operation{prodOp("S")})

	assert.Equal(t, storage.Classification{
		StatusMeaning: "Started",
		StatusCheck:   CheckProductionStarted,
		ActionNeeded:  ActionActive,
	}, got)
}

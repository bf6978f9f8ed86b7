package harness

import "github.com/roach88/paperscore/internal/record"

// Trace event types.
const (
	EventSubmit  = "submit"
	EventAdvance = "advance"
	EventTick    = "tick"
)

// TraceEvent records one executed step.
type TraceEvent struct {
	Seq  int    `json:"seq"`
	Type string `json:"type"`

	// AtMS is the fake clock's offset from testutil.Epoch after the step.
	AtMS int64 `json:"at_ms"`

	// Notification is the notification kind after the step.
	Notification string `json:"notification"`

	// Submit fields.
	PaperIDText  *string        `json:"paper_id_text,omitempty"`
	Scores       *record.Scores `json:"scores,omitempty"`
	SubmissionID string         `json:"submission_id,omitempty"`
	Outcome      string         `json:"outcome,omitempty"`
	Reason       string         `json:"reason,omitempty"`

	// Advance field.
	Duration string `json:"duration,omitempty"`

	// Tick field.
	RecordCount *int `json:"record_count,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Records is the final store contents.
	Records []record.ScoreRecord `json:"records"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Trace:   []TraceEvent{},
		Errors:  []string{},
		Records: []record.ScoreRecord{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func (r *Result) addEvent(ev TraceEvent) {
	ev.Seq = len(r.Trace) + 1
	r.Trace = append(r.Trace, ev)
}

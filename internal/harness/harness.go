package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/paperscore/internal/notify"
	"github.com/roach88/paperscore/internal/record"
	"github.com/roach88/paperscore/internal/review"
	"github.com/roach88/paperscore/internal/store"
	"github.com/roach88/paperscore/internal/testutil"
)

// Harness executes one scenario.
type Harness struct {
	store *store.Store
	ctrl  *review.Controller
	clock *testutil.FakeClock
}

type runOptions struct {
	logger *slog.Logger
	driver string
}

// Option configures Run.
type Option func(*runOptions)

// WithLogger routes controller logs to l. Logs are discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *runOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDriver selects the SQLite driver for the in-memory store.
func WithDriver(name string) Option {
	return func(o *runOptions) {
		o.driver = name
	}
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// An error is returned only when the scenario cannot be executed at all;
// failed expectations and assertions are reported in Result.Errors.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	o := runOptions{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		driver: store.DriverCGO,
	}
	for _, opt := range opts {
		opt(&o)
	}

	display := notify.DefaultDisplayDuration
	if scenario.DisplayDuration != "" {
		d, err := time.ParseDuration(scenario.DisplayDuration)
		if err != nil {
			return nil, fmt.Errorf("parse display_duration: %w", err)
		}
		display = d
	}

	st, err := store.Open(":memory:", store.WithDriver(o.driver))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	clk := testutil.NewFakeClock()
	h := &Harness{
		store: st,
		clock: clk,
		ctrl: review.New(st, notify.New(clk, display),
			review.WithLogger(o.logger),
			review.WithIDGenerator(testutil.NewSequenceIDGenerator("")),
		),
	}

	ctx := context.Background()
	result := NewResult()

	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, i, step, result); err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	records, err := st.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read final records: %w", err)
	}
	result.Records = records

	actx := &AssertionContext{
		Store: st,
		Ctx:   ctx,
	}
	for _, msg := range EvaluateAssertions(scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}

func (h *Harness) executeStep(ctx context.Context, index int, step Step, result *Result) error {
	var (
		ev      TraceEvent
		outcome *review.Outcome
	)

	switch {
	case step.Submit != nil:
		ev, outcome = h.submit(ctx, step.Submit)
	case step.Advance != "":
		d, err := time.ParseDuration(step.Advance)
		if err != nil {
			return fmt.Errorf("parse advance: %w", err)
		}
		h.clock.Advance(d)
		ev = TraceEvent{Type: EventAdvance, Duration: d.String()}
	case step.Tick:
		// A failed reload leaves the displayed list in place.
		records, _ := h.ctrl.Records(ctx)
		n := len(records)
		ev = TraceEvent{Type: EventTick, RecordCount: &n}
	default:
		return fmt.Errorf("step has no action")
	}

	state := h.ctrl.Notification()
	ev.Notification = state.Kind.String()
	ev.AtMS = h.clock.Elapsed().Milliseconds()
	result.addEvent(ev)

	if step.Expect != nil {
		for _, msg := range checkExpect(step.Expect, outcome, state, h.ctrl.Draft()) {
			result.AddError(fmt.Sprintf("steps[%d]: %s", index, msg))
		}
	}
	return nil
}

func (h *Harness) submit(ctx context.Context, s *SubmitStep) (TraceEvent, *review.Outcome) {
	var scores record.Scores
	copy(scores[:], s.Scores)
	h.ctrl.SetDraft(review.Draft{PaperIDText: s.PaperID, Scores: scores})

	out := h.ctrl.Submit(ctx)

	text := s.PaperID
	ev := TraceEvent{
		Type:         EventSubmit,
		PaperIDText:  &text,
		Scores:       &scores,
		SubmissionID: out.SubmissionID,
		Outcome:      OutcomeAccepted,
	}
	if out.Rejected() {
		ev.Outcome = OutcomeRejected
		ev.Reason = out.Reason.String()
	}
	return ev, &out
}

func checkExpect(e *Expect, out *review.Outcome, state notify.State, draft review.Draft) []string {
	var errs []string

	if out != nil {
		got := OutcomeAccepted
		if out.Rejected() {
			got = OutcomeRejected
		}
		if e.Outcome != "" && e.Outcome != got {
			errs = append(errs, fmt.Sprintf("expected outcome %s, got %s", e.Outcome, got))
		}
		if e.Reason != "" && e.Reason != out.Reason.String() {
			errs = append(errs, fmt.Sprintf("expected reason %s, got %q", e.Reason, out.Reason.String()))
		}
	}

	if e.Notification != "" && e.Notification != state.Kind.String() {
		errs = append(errs, fmt.Sprintf("expected notification %s, got %s", e.Notification, state.Kind))
	}

	if e.DraftCleared != nil && *e.DraftCleared != draft.IsEmpty() {
		errs = append(errs, fmt.Sprintf("expected draft_cleared %t, draft is %+v", *e.DraftCleared, draft))
	}

	return errs
}

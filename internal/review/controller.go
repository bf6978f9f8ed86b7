package review

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/paperscore/internal/notify"
	"github.com/roach88/paperscore/internal/record"
)

// RecordStore is the storage the controller writes to and lists from.
// *store.Store satisfies it.
type RecordStore interface {
	Upsert(ctx context.Context, paperID int, scores record.Scores) error
	ListAll(ctx context.Context) ([]record.ScoreRecord, error)
}

// Draft is the reviewer's unsubmitted input.
type Draft struct {
	PaperIDText string
	Scores      record.Scores
}

// IsEmpty reports whether d is the reset state.
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

// Controller mediates between the draft, the store and the notification.
type Controller struct {
	store     RecordStore
	notifier  *notify.Machine
	ids       IDGenerator
	logger    *slog.Logger
	draft     Draft
	displayed []record.ScoreRecord
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithIDGenerator overrides the submission id generator (default UUIDv7).
func WithIDGenerator(g IDGenerator) Option {
	return func(c *Controller) {
		if g != nil {
			c.ids = g
		}
	}
}

// New creates a controller with an empty draft. A nil notifier gets a
// machine on the system clock with the default display duration.
func New(st RecordStore, notifier *notify.Machine, opts ...Option) *Controller {
	if notifier == nil {
		notifier = notify.New(nil, 0)
	}
	c := &Controller{
		store:     st,
		notifier:  notifier,
		ids:       UUIDv7Generator{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		displayed: []record.ScoreRecord{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() Draft {
	return c.draft
}

// SetDraft replaces the draft verbatim. Scores are not clamped; out of
// range values are rejected on submit.
func (c *Controller) SetDraft(d Draft) {
	c.draft = d
}

// SetPaperIDText replaces the raw paper id text.
func (c *Controller) SetPaperIDText(text string) {
	c.draft.PaperIDText = text
}

// SetScore sets one dimension (0-based), clamping the value to the valid
// score range the way a bounded slider would.
func (c *Controller) SetScore(dim, value int) error {
	if dim < 0 || dim >= record.Dimensions {
		return fmt.Errorf("set score: dimension %d out of range [0, %d)", dim, record.Dimensions)
	}
	c.draft.Scores[dim] = record.ClampScore(value)
	return nil
}

// Submit validates the draft and upserts it.
func (c *Controller) Submit(ctx context.Context) Outcome {
	out := Outcome{SubmissionID: c.ids.Generate()}
	log := c.logger.With("submission_id", out.SubmissionID)

	id, err := ParsePaperID(c.draft.PaperIDText)
	if err != nil {
		out.Reason = InvalidPaperID
		out.Err = err
		return c.reject(log, out)
	}
	out.PaperID = id

	if err := c.store.Upsert(ctx, id, c.draft.Scores); err != nil {
		out.Err = err
		if errors.Is(err, record.ErrInvalid) {
			out.Reason = InvalidScores
		} else {
			out.Reason = StorageFailure
		}
		return c.reject(log, out)
	}

	out.Accepted = true
	c.draft = Draft{}
	c.notifier.Succeed()
	log.Info("submission accepted", "paper_id", id)
	return out
}

func (c *Controller) reject(log *slog.Logger, out Outcome) Outcome {
	c.notifier.Fail()
	level := slog.LevelWarn
	if out.Reason == StorageFailure {
		level = slog.LevelError
	}
	log.Log(context.Background(), level, "submission rejected",
		"reason", out.Reason.String(),
		"paper_id_text", c.draft.PaperIDText,
		"error", out.Err,
	)
	return out
}

// Records reloads the full record list. On a read failure it raises the
// error notification and returns the previously displayed list unchanged
// together with the error.
func (c *Controller) Records(ctx context.Context) ([]record.ScoreRecord, error) {
	records, err := c.store.ListAll(ctx)
	if err != nil {
		c.notifier.Fail()
		c.logger.Error("list records failed, keeping previous list",
			"error", err, "displayed", len(c.displayed))
		return c.Displayed(), err
	}
	c.displayed = records
	return c.Displayed(), nil
}

// Displayed returns a copy of the last successfully loaded list.
func (c *Controller) Displayed() []record.ScoreRecord {
	out := make([]record.ScoreRecord, len(c.displayed))
	copy(out, c.displayed)
	return out
}

// Notification runs the expiry check and returns the current state.
// Call once per render tick.
func (c *Controller) Notification() notify.State {
	return c.notifier.Poll()
}

package harness

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/paperscore/internal/record"
	"github.com/roach88/paperscore/internal/store"
)

// RecordReader is the read side of the store that assertions query.
// *store.Store satisfies it.
type RecordReader interface {
	Get(ctx context.Context, paperID int) (record.ScoreRecord, error)
	Count(ctx context.Context) (int, error)
	ListAll(ctx context.Context) ([]record.ScoreRecord, error)
}

// AssertionContext provides what assertions need to query final state.
type AssertionContext struct {
	Store RecordReader
	Ctx   context.Context
}

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Records  []record.ScoreRecord // final store contents for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nStored records:\n")
	if len(e.Records) == 0 {
		fmt.Fprintf(&buf, "  (none)\n")
	}
	for _, r := range e.Records {
		fmt.Fprintf(&buf, "  paper %d: %v\n", r.PaperID, r.Scores)
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion against the store and returns
// one message per failure.
func EvaluateAssertions(assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(a, actx); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %s", i, err.Error()))
		}
	}
	return errs
}

func evaluateAssertion(a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertRecord:
		return assertRecord(a, actx)
	case AssertRecordCount:
		return assertRecordCount(a, actx)
	case AssertAbsent:
		return assertAbsent(a, actx)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// failure builds an AssertionError carrying the current store contents.
func failure(actx *AssertionContext, typ, expected, actual string) error {
	records, err := actx.Store.ListAll(actx.Ctx)
	if err != nil {
		actual = fmt.Sprintf("%s (listing records failed: %v)", actual, err)
	}
	return &AssertionError{
		Type:     typ,
		Expected: expected,
		Actual:   actual,
		Records:  records,
	}
}

func assertRecord(a Assertion, actx *AssertionContext) error {
	var want record.Scores
	copy(want[:], a.Scores)
	expected := fmt.Sprintf("paper %d with scores %v", a.PaperID, want)

	got, err := actx.Store.Get(actx.Ctx, a.PaperID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return failure(actx, AssertRecord, expected, "no record")
	case err != nil:
		return fmt.Errorf("query paper %d: %w", a.PaperID, err)
	case got.Scores != want:
		return failure(actx, AssertRecord, expected, fmt.Sprintf("scores %v", got.Scores))
	}
	return nil
}

func assertRecordCount(a Assertion, actx *AssertionContext) error {
	n, err := actx.Store.Count(actx.Ctx)
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}
	if n != a.Count {
		return failure(actx, AssertRecordCount,
			fmt.Sprintf("%d records", a.Count),
			fmt.Sprintf("%d records", n))
	}
	return nil
}

func assertAbsent(a Assertion, actx *AssertionContext) error {
	got, err := actx.Store.Get(actx.Ctx, a.PaperID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("query paper %d: %w", a.PaperID, err)
	}
	return failure(actx, AssertAbsent,
		fmt.Sprintf("no record for paper %d", a.PaperID),
		fmt.Sprintf("scores %v", got.Scores))
}

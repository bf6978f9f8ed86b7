package review

import "fmt"

// Reason explains a rejected submission.
type Reason int

const (
	ReasonNone Reason = iota
	InvalidPaperID
	InvalidScores
	StorageFailure
)

var reasonNames = [...]string{
	ReasonNone:     "",
	InvalidPaperID: "invalid_paper_id",
	InvalidScores:  "invalid_scores",
	StorageFailure: "storage_failure",
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return fmt.Sprintf("Reason(%d)", int(r))
	}
	return reasonNames[r]
}

// MarshalText implements encoding.TextMarshaler.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ParseReason parses the String form of a Reason. The empty string is
// ReasonNone.
func ParseReason(s string) (Reason, error) {
	for i, name := range reasonNames {
		if name == s {
			return Reason(i), nil
		}
	}
	return ReasonNone, fmt.Errorf("unknown rejection reason %q", s)
}

// Outcome is the result of one submission.
type Outcome struct {
	// Accepted is true when the record was written.
	Accepted bool

	// Reason is set when Accepted is false.
	Reason Reason

	// SubmissionID correlates the submission with its log lines.
	SubmissionID string

	// PaperID is the parsed id; zero if the text did not parse.
	PaperID int

	// Err is the underlying cause of a rejection.
	Err error
}

// Rejected reports whether the submission was rejected.
func (o Outcome) Rejected() bool {
	return !o.Accepted
}

func (o Outcome) String() string {
	if o.Accepted {
		return "accepted"
	}
	return "rejected(" + o.Reason.String() + ")"
}

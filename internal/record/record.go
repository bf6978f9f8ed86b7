package record

import (
	"errors"
	"fmt"
)

// Domain bounds, inclusive.
const (
	MinPaperID = 1
	MaxPaperID = 150

	MinScore = 0
	MaxScore = 10
)

// Dimensions is the number of scored dimensions per paper.
const Dimensions = 5

// Scores holds one integer score per dimension, in dimension order.
type Scores [Dimensions]int

// ScoreRecord is the stored score set for one paper.
type ScoreRecord struct {
	PaperID int    `json:"paper_id"`
	Scores  Scores `json:"scores"`
}

// ErrInvalid is matched by every *ValidationError.
var ErrInvalid = errors.New("invalid record")

// ValidationError describes which field failed validation and why.
type ValidationError struct {
	// Field is "paper_id" or "scores[i]".
	Field string

	// Value is the rejected value.
	Value int

	// Reason is a short human-readable explanation.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalid.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// ValidPaperID reports whether id lies in [MinPaperID, MaxPaperID].
func ValidPaperID(id int) bool {
	return id >= MinPaperID && id <= MaxPaperID
}

// ValidScore reports whether v lies in [MinScore, MaxScore].
func ValidScore(v int) bool {
	return v >= MinScore && v <= MaxScore
}

// Validate checks a proposed record. The paper id is checked first, then
// scores in dimension order; the first violation is returned.
func Validate(paperID int, scores Scores) error {
	if !ValidPaperID(paperID) {
		return &ValidationError{
			Field:  "paper_id",
			Value:  paperID,
			Reason: fmt.Sprintf("must be between %d and %d", MinPaperID, MaxPaperID),
		}
	}
	for i, v := range scores {
		if !ValidScore(v) {
			return &ValidationError{
				Field:  fmt.Sprintf("scores[%d]", i),
				Value:  v,
				Reason: fmt.Sprintf("must be between %d and %d", MinScore, MaxScore),
			}
		}
	}
	return nil
}

// Validate checks r with the package-level Validate.
func (r ScoreRecord) Validate() error {
	return Validate(r.PaperID, r.Scores)
}

// ClampScore bounds v to [MinScore, MaxScore].
func ClampScore(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

package review

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/text/width"

	"github.com/roach88/paperscore/internal/record"
)

// ErrInvalidPaperID is wrapped by every ParsePaperID failure.
var ErrInvalidPaperID = errors.New("invalid paper id")

// ParsePaperID parses reviewer-entered paper id text.
//
// Full-width characters from a CJK input method are folded to their narrow
// forms first, so "４２" parses like "42". No other compatibility mapping is
// applied: circled, superscript and mathematical digits are rejected.
// Surrounding whitespace is not trimmed.
// The parsed value must lie in [record.MinPaperID, record.MaxPaperID].
func ParsePaperID(text string) (int, error) {
	normalized := width.Narrow.String(text)

	id, err := strconv.Atoi(normalized)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidPaperID, text)
	}
	if !record.ValidPaperID(id) {
		return id, fmt.Errorf("%w: %d is outside [%d, %d]",
			ErrInvalidPaperID, id, record.MinPaperID, record.MaxPaperID)
	}
	return id, nil
}

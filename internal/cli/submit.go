package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/paperscore/internal/clock"
	"github.com/roach88/paperscore/internal/record"
	"github.com/roach88/paperscore/internal/review"
)

// SubmitOptions holds flags for the submit command.
type SubmitOptions struct {
	*RootOptions
	PaperID string
	Scores  string
}

// SubmitResult is the JSON payload of an accepted submission.
type SubmitResult struct {
	SubmissionID string        `json:"submission_id"`
	PaperID      int           `json:"paper_id"`
	Scores       record.Scores `json:"scores"`
	Notification string        `json:"notification"`
}

// NewSubmitCommand creates the submit command.
func NewSubmitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SubmitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Record scores for one paper",
		Long: `Validate and store the scores for one paper, replacing any earlier record.

The paper id is taken as typed; full-width digits are accepted.

Exit codes:
  0 - Scores stored
  1 - Submission rejected (invalid id, invalid scores, storage failure)
  2 - Command error (malformed flags, storage unavailable at startup)

Examples:
  paperscore submit --id 42 --scores 10,10,10,10,10
  paperscore submit --id 7 --scores 3,4,5,6,7 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.PaperID, "id", "", "paper id (1-150)")
	cmd.Flags().StringVar(&opts.Scores, "scores", "0,0,0,0,0", "five comma-separated scores (0-10)")

	return cmd
}

func runSubmit(opts *SubmitOptions, cmd *cobra.Command) error {
	opts.ensureDefaults()

	scores, err := parseScores(opts.Scores)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --scores", err)
	}

	s, err := openSession(opts.RootOptions, clock.System{})
	if err != nil {
		return err
	}
	defer s.close(opts.RootOptions)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s.ctrl.SetDraft(review.Draft{PaperIDText: opts.PaperID, Scores: scores})
	out := s.ctrl.Submit(cmd.Context())
	note := s.ctrl.Notification()

	if out.Rejected() {
		details := map[string]any{
			"submission_id": out.SubmissionID,
			"reason":        out.Reason.String(),
		}
		if out.Err != nil {
			details["cause"] = out.Err.Error()
		}
		if err := formatter.Error(reasonCode(out.Reason), note.Message(), details); err != nil {
			return err
		}
		return WrapExitError(ExitFailure, "submission rejected", out.Err)
	}

	if opts.Format == "json" {
		return formatter.Success(SubmitResult{
			SubmissionID: out.SubmissionID,
			PaperID:      out.PaperID,
			Scores:       scores,
			Notification: note.Kind.String(),
		})
	}
	return formatter.Success(fmt.Sprintf("%s: paper %d %s", note.Message(), out.PaperID, formatScores(scores)))
}

// parseScores parses "a,b,c,d,e". Values are not range checked here; the
// controller rejects out of range scores.
func parseScores(s string) (record.Scores, error) {
	var scores record.Scores
	parts := strings.Split(s, ",")
	if len(parts) != record.Dimensions {
		return scores, fmt.Errorf("want %d comma-separated values, got %d", record.Dimensions, len(parts))
	}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return scores, fmt.Errorf("score %d: %w", i+1, err)
		}
		scores[i] = v
	}
	return scores, nil
}

func formatScores(s record.Scores) string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

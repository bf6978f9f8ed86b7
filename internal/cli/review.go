package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/paperscore/internal/clock"
	"github.com/roach88/paperscore/internal/review"
)

// ReviewOptions holds flags for the review command.
type ReviewOptions struct {
	*RootOptions

	// Clock overrides the notification clock (for testing).
	// If nil, defaults to clock.System.
	Clock clock.Clock
}

// TickReport is emitted once per input line in JSON mode.
type TickReport struct {
	Tick         int    `json:"tick"`
	Command      string `json:"command"`
	Outcome      string `json:"outcome,omitempty"`
	SubmissionID string `json:"submission_id,omitempty"`
	Error        string `json:"error,omitempty"`
	Notification string `json:"notification"`
	Message      string `json:"message,omitempty"`
	Records      int    `json:"records"`
}

// NewReviewCommand creates the review command.
func NewReviewCommand(rootOpts *RootOptions) *cobra.Command {
	return newReviewCommand(&ReviewOptions{RootOptions: rootOpts})
}

func newReviewCommand(opts *ReviewOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Interactive scoring session",
		Long: `Read commands from standard input, one per line. Every line is one
render tick: the command is applied, the record list is reloaded and the
notification is checked for expiry.

Commands:
  id <text>          set the paper id text
  score <1-5> <v>    set one score (clamped to 0-10)
  submit             validate and store the draft
  show               print the draft and all records
  tick               do nothing but tick (an empty line too)
  quit               end the session

Example:
  printf 'id 42\nscore 1 9\nsubmit\nshow\n' | paperscore review`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReview(opts, cmd)
		},
	}

	return cmd
}

func runReview(opts *ReviewOptions, cmd *cobra.Command) error {
	opts.ensureDefaults()

	clk := opts.Clock
	if clk == nil {
		clk = clock.System{}
	}

	s, err := openSession(opts.RootOptions, clk)
	if err != nil {
		return err
	}
	defer s.close(opts.RootOptions)

	host := &reviewHost{
		opts: opts,
		ctrl: s.ctrl,
		out:  cmd.OutOrStdout(),
	}
	if opts.Format == "json" {
		host.enc = json.NewEncoder(host.out)
	} else {
		fmt.Fprintf(host.out, "Scoring session. Database: %s\n", s.path)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		if quit := host.tick(cmd, scanner.Text()); quit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitFailure, "failed to read input", err)
	}
	return nil
}

// reviewHost stands in for a render loop. It is driven by one goroutine.
type reviewHost struct {
	opts  *ReviewOptions
	ctrl  *review.Controller
	out   io.Writer
	enc   *json.Encoder
	ticks int
}

// tick applies one input line and reports whether the session should end.
func (h *reviewHost) tick(cmd *cobra.Command, line string) bool {
	h.ticks++
	report := TickReport{Tick: h.ticks}

	verb, rest, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")
	report.Command = verb
	quit := false

	switch verb {
	case "", "tick":
		report.Command = "tick"
	case "id":
		// Everything after "id " is the typed text, spaces included.
		h.ctrl.SetPaperIDText(rest)
	case "score":
		if err := h.setScore(rest); err != nil {
			report.Error = err.Error()
		}
	case "submit":
		out := h.ctrl.Submit(cmd.Context())
		report.Outcome = out.String()
		report.SubmissionID = out.SubmissionID
	case "show":
	case "quit", "exit":
		report.Command = "quit"
		quit = true
	default:
		report.Error = fmt.Sprintf("unknown command %q", verb)
	}

	// A failed reload keeps the previous list; the controller logs it.
	records, _ := h.ctrl.Records(cmd.Context())
	report.Records = len(records)

	state := h.ctrl.Notification()
	report.Notification = state.Kind.String()
	report.Message = state.Message()

	if h.enc != nil {
		if err := h.enc.Encode(report); err != nil {
			h.opts.Logger.Error("write tick report", "error", err)
		}
		return quit
	}

	if report.Error != "" {
		fmt.Fprintf(h.out, "Error: %s\n", report.Error)
	}
	if verb == "show" {
		h.show()
	}
	if state.Showing() {
		fmt.Fprintf(h.out, "[%s] %s\n", state.Kind, state.Message())
	}
	return quit
}

func (h *reviewHost) setScore(args string) error {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return fmt.Errorf("usage: score <1-5> <value>")
	}
	dim, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("dimension %q is not a number", fields[0])
	}
	value, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("score %q is not a number", fields[1])
	}
	return h.ctrl.SetScore(dim-1, value)
}

func (h *reviewHost) show() {
	d := h.ctrl.Draft()
	fmt.Fprintf(h.out, "Draft: id=%q scores=%s\n", d.PaperIDText, formatScores(d.Scores))
	records := h.ctrl.Displayed()
	if len(records) == 0 {
		fmt.Fprintln(h.out, "No records.")
		return
	}
	writeTable(h.out, h.opts.Config.Dimensions, records)
}

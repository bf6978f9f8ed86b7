package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/paperscore/internal/clock"
	"github.com/roach88/paperscore/internal/record"
	"github.com/roach88/paperscore/internal/store"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	PaperID int
}

// ListResult is the JSON payload of the list command.
type ListResult struct {
	Dimensions []string             `json:"dimensions"`
	Records    []record.ScoreRecord `json:"records"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show stored score records",
		Long: `Show every stored score record ordered by paper id.

Examples:
  paperscore list
  paperscore list --id 42
  paperscore list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.PaperID, "id", 0, "show only this paper")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	opts.ensureDefaults()

	if cmd.Flags().Changed("id") && !record.ValidPaperID(opts.PaperID) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("--id %d out of range [%d, %d]", opts.PaperID, record.MinPaperID, record.MaxPaperID))
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

	var records []record.ScoreRecord
	if cmd.Flags().Changed("id") {
		rec, err := s.store.Get(cmd.Context(), opts.PaperID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			if err := formatter.Error(ErrCodeNotFound, fmt.Sprintf("no record for paper %d", opts.PaperID), nil); err != nil {
				return err
			}
			return WrapExitError(ExitFailure, "record not found", err)
		case err != nil:
			return readFailure(formatter, "failed to read record", err)
		}
		records = []record.ScoreRecord{rec}
	} else {
		records, err = s.ctrl.Records(cmd.Context())
		if err != nil {
			return readFailure(formatter, "failed to list records", err)
		}
	}

	if opts.Format == "json" {
		return formatter.Success(ListResult{
			Dimensions: opts.Config.Dimensions[:],
			Records:    records,
		})
	}

	w := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(w, "No records.")
		return nil
	}
	writeTable(w, opts.Config.Dimensions, records)
	return nil
}

// readFailure reports a failed read. Storage faults carry ErrCodeStorage.
func readFailure(formatter *OutputFormatter, message string, err error) error {
	code := ErrCodeGeneric
	if store.IsUnavailable(err) {
		code = ErrCodeStorage
	}
	if ferr := formatter.Error(code, message, err.Error()); ferr != nil {
		return ferr
	}
	return WrapExitError(ExitFailure, message, err)
}

func writeTable(w io.Writer, dims [record.Dimensions]string, records []record.ScoreRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "Paper")
	for _, d := range dims {
		fmt.Fprintf(tw, "\t%s", d)
	}
	fmt.Fprintln(tw)
	for _, r := range records {
		fmt.Fprintf(tw, "%d", r.PaperID)
		for _, v := range r.Scores {
			fmt.Fprintf(tw, "\t%d", v)
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}

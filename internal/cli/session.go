package cli

import (
	"github.com/roach88/paperscore/internal/clock"
	"github.com/roach88/paperscore/internal/notify"
	"github.com/roach88/paperscore/internal/review"
	"github.com/roach88/paperscore/internal/store"
)

// session is an open store plus the controller driving it.
type session struct {
	store *store.Store
	ctrl  *review.Controller
	path  string
}

// openSession opens the database and builds a controller. A storage
// failure is fatal: it is logged and mapped to ExitCommandError before
// any session output is written.
func openSession(opts *RootOptions, clk clock.Clock) (*session, error) {
	log := opts.Logger

	path, err := opts.Config.DBPath(opts.Database)
	if err != nil {
		log.Error("cannot resolve database path", "error", err)
		return nil, WrapExitError(ExitCommandError, "failed to resolve database path", err)
	}

	log.Debug("opening database", "path", path, "driver", opts.Config.Driver)
	st, err := store.Open(path, store.WithDriver(opts.Config.Driver))
	if err != nil {
		log.Error("storage unavailable", "path", path, "error", err)
		return nil, WrapExitError(ExitCommandError, "storage unavailable", err)
	}
	log.Debug("database ready", "path", path)

	ctrl := review.New(st, notify.New(clk, opts.Config.DisplayDuration),
		review.WithLogger(log))

	return &session{store: st, ctrl: ctrl, path: path}, nil
}

func (s *session) close(opts *RootOptions) {
	if err := s.store.Close(); err != nil {
		opts.Logger.Error("error closing database", "error", err)
	}
}

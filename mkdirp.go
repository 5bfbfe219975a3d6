package smb

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jmgilman/go/smb/errors"
	"github.com/jmgilman/go/smb/internal/pathutil"
	"github.com/jmgilman/go/smb/internal/retry"
)

// walkState is the step a walker is on for the current ancestor.
type walkState int

const (
	stateChecking walkState = iota
	stateCreating
)

func (s walkState) String() string {
	switch s {
	case stateChecking:
		return "checking"
	case stateCreating:
		return "creating"
	default:
		return "unknown"
	}
}

// walker drives a single MkdirAll call. It is never shared between calls.
type walker struct {
	dispatcher Dispatcher
	policy     RetryPolicy
	newTimer   func() Timer
	mode       fs.FileMode
	log        *slog.Logger
}

func (s *Share) newWalker(mode fs.FileMode) *walker {
	return &walker{
		dispatcher: s.dispatcher,
		policy:     s.cfg.policy,
		newTimer:   s.cfg.newTimer,
		mode:       mode,
		log:        s.cfg.logger,
	}
}

// walk ensures every ancestor exists, in order, stopping at the first failure.
func (w *walker) walk(ctx context.Context, ancestors []string) error {
	for index, dir := range ancestors {
		if err := w.ensure(ctx, index, dir); err != nil {
			return err
		}
	}
	return nil
}

// ensure makes dir exist. A retryable answer (STATUS_PENDING unless
// reclassified) re-issues the request that got it: a pending open is
// reopened, a pending create is recreated.
func (w *walker) ensure(ctx context.Context, index int, dir string) error {
	log := w.log.With("index", index, "path", dir)
	state := stateChecking
	retries := 0

	step := func() error {
		if state == stateChecking {
			h, err := w.dispatcher.OpenFolder(ctx, dir)
			if err == nil {
				log.Debug("directory exists")
				w.release(ctx, log, h)
				return nil
			}
			if !errors.IsNotFound(err) {
				return err
			}
			log.Debug("directory missing", "status", errors.GetCode(err))
			state = stateCreating
		}

		h, err := w.dispatcher.CreateFolder(ctx, dir, w.mode)
		if err != nil {
			return err
		}
		log.Debug("directory created", "mode", w.mode)
		w.release(ctx, log, h)
		return nil
	}

	notify := func(err error, delay time.Duration) {
		retries++
		log.Debug("request pending", "state", state, "status", errors.GetCode(err), "retry", retries, "delay", delay)
	}

	var timer Timer
	if w.newTimer != nil {
		timer = w.newTimer()
	}

	err := retry.Do(ctx, w.policy, timer, step, errors.IsRetryable, notify)
	if err != nil {
		log.Debug("walk failed", "state", state, "retries", retries, "error", err)
	}
	return err
}

// release closes h. The result is only logged; the directory is already
// known to exist.
func (w *walker) release(ctx context.Context, log *slog.Logger, h *Handle) {
	if err := w.dispatcher.Close(ctx, h); err != nil {
		log.Warn("failed to close directory handle", "error", err)
	}
}

// invalidPath builds the error returned for a path with no components.
func invalidPath(path string, err error) error {
	return errors.WithContext(errors.Wrap(err, errors.CodeInvalidPath, "invalid path"), "path", path)
}

// MkdirAll creates path on the share along with any missing parents.
// Existing directories are left alone. A path made only of separators is
// rejected with errors.CodeInvalidPath before any request is sent.
//
// Failures from the dispatcher are returned unmodified. Directories created
// before a failure are not removed.
func (s *Share) MkdirAll(ctx context.Context, path string, opts ...MkdirOption) error {
	ancestors, err := pathutil.Ancestors(path)
	if err != nil {
		return invalidPath(path, err)
	}

	o := s.mkdirOptions(opts)
	return s.newWalker(o.mode).walk(ctx, ancestors)
}

// MkdirAllAsync runs MkdirAll on a new goroutine and returns immediately.
// onComplete, if non-nil, is called exactly once with the result. With a nil
// onComplete a failure is only logged.
func (s *Share) MkdirAllAsync(ctx context.Context, path string, onComplete func(error), opts ...MkdirOption) {
	go func() {
		err := s.MkdirAll(ctx, path, opts...)
		if onComplete != nil {
			onComplete(err)
			return
		}
		if err != nil {
			s.cfg.logger.Warn("mkdir failed with no completion callback", "path", path, "error", err)
		}
	}()
}

// MkdirAllMany runs MkdirAll for every path, at most WithConcurrency at a
// time. All paths are validated before any request is sent. The first
// failure cancels the remaining calls and is returned.
func (s *Share) MkdirAllMany(ctx context.Context, paths []string, opts ...MkdirOption) error {
	for _, path := range paths {
		if _, err := pathutil.Ancestors(path); err != nil {
			return invalidPath(path, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.concurrency)
	for _, path := range paths {
		g.Go(func() error {
			return s.MkdirAll(gctx, path, opts...)
		})
	}
	return g.Wait()
}

// Exists reports whether path is an existing directory on the share.
// Pending answers are retried like in MkdirAll.
func (s *Share) Exists(ctx context.Context, path string) (bool, error) {
	dir := pathutil.Join(path)
	if dir == "" {
		return false, invalidPath(path, pathutil.ErrNoComponents)
	}

	var timer Timer
	if s.cfg.newTimer != nil {
		timer = s.cfg.newTimer()
	}

	exists := false
	err := retry.Do(ctx, s.cfg.policy, timer, func() error {
		h, err := s.dispatcher.OpenFolder(ctx, dir)
		if err != nil {
			return err
		}
		exists = true
		if cerr := s.dispatcher.Close(ctx, h); cerr != nil {
			s.cfg.logger.Warn("failed to close directory handle", "path", dir, "error", cerr)
		}
		return nil
	}, errors.IsRetryable, nil)

	switch {
	case err == nil:
		return exists, nil
	case errors.IsNotFound(err):
		return false, nil
	default:
		return false, err
	}
}

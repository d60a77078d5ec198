// Package poll implements the shared watcher for server-side generation jobs.
//
// Every caller polls with the same schedule: a 5 second base interval grown
// by 1.5x after each non-terminal response, capped at 60 seconds. Fetches are
// strictly sequential and stop permanently on the first terminal status or
// fetch error.
package poll

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/duskfall/mstro/internal/models"
	"github.com/duskfall/mstro/internal/shared"
)

// Backoff schedule shared by every polling caller.
const (
	DefaultBase       = 5 * time.Second
	DefaultMax        = 60 * time.Second
	DefaultMultiplier = 1.5
)

// Options configures a Watcher. The zero value is usable and polls with the
// default schedule.
type Options struct {
	Base       time.Duration
	Max        time.Duration
	Multiplier float64

	// Sleep waits for d or until ctx is done. Tests inject a recording fake.
	Sleep func(ctx context.Context, d time.Duration) error
}

func (o Options) withDefaults() Options {
	if o.Base <= 0 {
		o.Base = DefaultBase
	}
	if o.Max <= 0 {
		o.Max = DefaultMax
	}
	if o.Multiplier <= 1 {
		o.Multiplier = DefaultMultiplier
	}
	if o.Sleep == nil {
		o.Sleep = sleepContext
	}
	return o
}

// FetchFunc retrieves the current job state.
type FetchFunc func(ctx context.Context) (*models.JobState, error)

// UpdateFunc observes each non-terminal job state as it is polled.
type UpdateFunc func(state *models.JobState)

// Watcher polls a job until it reaches a terminal status.
type Watcher struct {
	opts Options
}

// NewWatcher creates a Watcher with the given options.
func NewWatcher(opts Options) *Watcher {
	return &Watcher{opts: opts.withDefaults()}
}

// Watch polls fetch until the job reaches SUCCESS or FAILURE and returns the
// terminal state. onUpdate (optional) observes every intermediate state.
//
// FAILURE returns the terminal state together with an error wrapping
// [shared.ErrJobFailed] carrying the job's embedded error string when present.
// There is no automatic retry; the caller must resubmit. Cancellation of ctx
// is honored between polls.
func (w *Watcher) Watch(ctx context.Context, fetch FetchFunc, onUpdate UpdateFunc) (*models.JobState, error) {
	interval := w.opts.Base

	for {
		state, err := fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch job status: %w", err)
		}
		if err := state.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrMalformedEntity, err)
		}

		if state.Status.IsTerminal() {
			if state.Status == models.StatusFailure {
				return state, failureError(state)
			}
			return state, nil
		}

		if onUpdate != nil {
			onUpdate(state)
		}

		if err := w.opts.Sleep(ctx, interval); err != nil {
			return nil, err
		}
		interval = w.next(interval)
	}
}

// next grows the interval by the multiplier, saturating at the cap.
func (w *Watcher) next(current time.Duration) time.Duration {
	grown := time.Duration(float64(current) * w.opts.Multiplier)
	if grown > w.opts.Max {
		return w.opts.Max
	}
	return grown
}

func failureError(state *models.JobState) error {
	if state.Error != "" {
		return fmt.Errorf("%w: %s", shared.ErrJobFailed, state.Error)
	}
	return fmt.Errorf("%w: generation failed", shared.ErrJobFailed)
}

// Stage keyword fragments reported by the backend's progress payload.
var stageLines = []struct {
	keyword string
	line    string
}{
	{"queue", "Acquiring slot"},
	{"slot", "Acquiring slot"},
	{"start", "Starting generation"},
	{"init_model", "Starting generation"},
	{"process", "Processing"},
	{"generat", "Processing"},
}

// StatusLine derives the human-readable loading line for a job state.
//
// Known stage keywords in the nested progress payload map to specific
// phrases; anything else falls back to a line derived from the coarse status.
func StatusLine(state *models.JobState) string {
	if state == nil {
		return "Initializing request"
	}

	if state.Progress != nil && state.Progress.Stage != "" {
		stage := strings.ToLower(state.Progress.Stage)
		for _, sl := range stageLines {
			if strings.Contains(stage, sl.keyword) {
				return sl.line
			}
		}
	}

	switch state.Status {
	case models.StatusProgress:
		return "Processing request"
	default:
		return "Initializing request"
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

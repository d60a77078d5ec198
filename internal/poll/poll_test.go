package poll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/duskfall/mstro/internal/models"
	"github.com/duskfall/mstro/internal/shared"
)

// fakeSleep records requested intervals without waiting.
type fakeSleep struct {
	intervals []time.Duration
}

func (f *fakeSleep) sleep(ctx context.Context, d time.Duration) error {
	f.intervals = append(f.intervals, d)
	return ctx.Err()
}

func scripted(states ...*models.JobState) FetchFunc {
	i := 0
	return func(ctx context.Context) (*models.JobState, error) {
		state := states[i]
		if i < len(states)-1 {
			i++
		}
		return state, nil
	}
}

func pending() *models.JobState {
	return &models.JobState{TaskID: "t-1", Status: models.StatusPending}
}

func TestWatch(t *testing.T) {
	t.Run("Returns Terminal Success", func(t *testing.T) {
		sleeper := &fakeSleep{}
		watcher := NewWatcher(Options{Sleep: sleeper.sleep})

		var seen []models.JobStatus
		state, err := watcher.Watch(context.Background(),
			scripted(
				pending(),
				&models.JobState{TaskID: "t-1", Status: models.StatusProgress},
				&models.JobState{TaskID: "t-1", Status: models.StatusSuccess},
			),
			func(s *models.JobState) { seen = append(seen, s.Status) },
		)
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if state.Status != models.StatusSuccess {
			t.Errorf("unexpected terminal status: %s", state.Status)
		}
		if len(seen) != 2 || seen[0] != models.StatusPending || seen[1] != models.StatusProgress {
			t.Errorf("unexpected update sequence: %v", seen)
		}
	})

	t.Run("Backoff Schedule", func(t *testing.T) {
		t.Run("Grows By Multiplier", func(t *testing.T) {
			sleeper := &fakeSleep{}
			watcher := NewWatcher(Options{Sleep: sleeper.sleep})

			states := make([]*models.JobState, 0, 6)
			for range 5 {
				states = append(states, pending())
			}
			states = append(states, &models.JobState{TaskID: "t-1", Status: models.StatusSuccess})

			if _, err := watcher.Watch(context.Background(), scripted(states...), nil); err != nil {
				t.Fatalf("expected success, got %v", err)
			}

			want := []time.Duration{
				5000 * time.Millisecond,
				7500 * time.Millisecond,
				11250 * time.Millisecond,
				16875 * time.Millisecond,
				25312500 * time.Microsecond,
			}
			if len(sleeper.intervals) != len(want) {
				t.Fatalf("expected %d sleeps, got %d", len(want), len(sleeper.intervals))
			}
			for i, d := range want {
				if sleeper.intervals[i] != d {
					t.Errorf("sleep %d: expected %v, got %v", i, d, sleeper.intervals[i])
				}
			}
		})

		t.Run("Saturates At Cap", func(t *testing.T) {
			sleeper := &fakeSleep{}
			watcher := NewWatcher(Options{Sleep: sleeper.sleep})

			states := make([]*models.JobState, 0, 13)
			for range 12 {
				states = append(states, pending())
			}
			states = append(states, &models.JobState{TaskID: "t-1", Status: models.StatusSuccess})

			if _, err := watcher.Watch(context.Background(), scripted(states...), nil); err != nil {
				t.Fatalf("expected success, got %v", err)
			}

			last := sleeper.intervals[len(sleeper.intervals)-1]
			if last != 60*time.Second {
				t.Errorf("expected saturation at 60s, got %v", last)
			}
			for i := 1; i < len(sleeper.intervals); i++ {
				if sleeper.intervals[i] < sleeper.intervals[i-1] {
					t.Errorf("interval shrank at step %d: %v", i, sleeper.intervals)
				}
				if sleeper.intervals[i] > 60*time.Second {
					t.Errorf("interval exceeded cap at step %d: %v", i, sleeper.intervals[i])
				}
			}
		})
	})

	t.Run("Failure Surfaces Embedded Error", func(t *testing.T) {
		watcher := NewWatcher(Options{Sleep: (&fakeSleep{}).sleep})

		state, err := watcher.Watch(context.Background(),
			scripted(&models.JobState{TaskID: "t-1", Status: models.StatusFailure, Error: "out of credits"}),
			nil,
		)
		if !errors.Is(err, shared.ErrJobFailed) {
			t.Fatalf("expected ErrJobFailed, got %v", err)
		}
		if err.Error() != "job failed: out of credits" {
			t.Errorf("unexpected message: %q", err)
		}
		if state == nil || state.Status != models.StatusFailure {
			t.Errorf("expected terminal state alongside error, got %+v", state)
		}
	})

	t.Run("Failure Without Detail Uses Generic Message", func(t *testing.T) {
		watcher := NewWatcher(Options{Sleep: (&fakeSleep{}).sleep})

		_, err := watcher.Watch(context.Background(),
			scripted(&models.JobState{TaskID: "t-1", Status: models.StatusFailure}),
			nil,
		)
		if !errors.Is(err, shared.ErrJobFailed) {
			t.Fatalf("expected ErrJobFailed, got %v", err)
		}
	})

	t.Run("Fetch Error Stops Loop", func(t *testing.T) {
		watcher := NewWatcher(Options{Sleep: (&fakeSleep{}).sleep})

		boom := errors.New("connection reset")
		calls := 0
		_, err := watcher.Watch(context.Background(), func(ctx context.Context) (*models.JobState, error) {
			calls++
			return nil, boom
		}, nil)
		if !errors.Is(err, boom) {
			t.Fatalf("expected fetch error, got %v", err)
		}
		if calls != 1 {
			t.Errorf("expected single fetch, got %d", calls)
		}
	})

	t.Run("Unknown Status Is Rejected", func(t *testing.T) {
		watcher := NewWatcher(Options{Sleep: (&fakeSleep{}).sleep})

		_, err := watcher.Watch(context.Background(),
			scripted(&models.JobState{TaskID: "t-1", Status: "EXPLODED"}),
			nil,
		)
		if !errors.Is(err, shared.ErrMalformedEntity) {
			t.Fatalf("expected ErrMalformedEntity, got %v", err)
		}
	})

	t.Run("Honors Cancellation Between Polls", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		watcher := NewWatcher(Options{Sleep: func(ctx context.Context, d time.Duration) error {
			cancel()
			return ctx.Err()
		}})

		_, err := watcher.Watch(ctx, scripted(pending()), nil)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}

func TestStatusLine(t *testing.T) {
	tc := []struct {
		name  string
		state *models.JobState
		want  string
	}{
		{"nil state", nil, "Initializing request"},
		{
			"queue stage",
			&models.JobState{Status: models.StatusPending, Progress: &models.JobProgress{Stage: "queue_wait"}},
			"Acquiring slot",
		},
		{
			"start stage",
			&models.JobState{Status: models.StatusProgress, Progress: &models.JobProgress{Stage: "model_start"}},
			"Starting generation",
		},
		{
			"processing stage",
			&models.JobState{Status: models.StatusProgress, Progress: &models.JobProgress{Stage: "processing_audio"}},
			"Processing",
		},
		{
			"unknown stage falls back to status",
			&models.JobState{Status: models.StatusProgress, Progress: &models.JobProgress{Stage: "mystery"}},
			"Processing request",
		},
		{
			"pending without progress",
			&models.JobState{Status: models.StatusPending},
			"Initializing request",
		},
		{
			"progress without progress payload",
			&models.JobState{Status: models.StatusProgress},
			"Processing request",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusLine(tt.state); got != tt.want {
				t.Errorf("StatusLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

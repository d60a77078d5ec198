package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/duskfall/mstro/internal/api"
	"github.com/duskfall/mstro/internal/models"
	"github.com/duskfall/mstro/internal/poll"
	"github.com/duskfall/mstro/internal/shared"
)

// instantWatcher polls without waiting between fetches.
func instantWatcher() *poll.Watcher {
	return poll.NewWatcher(poll.Options{
		Sleep: func(ctx context.Context, d time.Duration) error { return ctx.Err() },
	})
}

func newSongService(t *testing.T, handler http.Handler) *SongService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewSongService(api.NewClient(server.URL, 0, nil), instantWatcher(), 0)
}

func validSongRequest() *GenerateSongRequest {
	return &GenerateSongRequest{
		Title:  "Night Drive",
		Lyrics: "neon lights on the highway",
		Style:  "synthwave",
	}
}

func TestGenerateSongRequest(t *testing.T) {
	tc := []struct {
		name    string
		mutate  func(*GenerateSongRequest)
		wantErr bool
	}{
		{"valid", func(r *GenerateSongRequest) {}, false},
		{"missing title", func(r *GenerateSongRequest) { r.Title = "" }, true},
		{"missing style", func(r *GenerateSongRequest) { r.Style = "" }, true},
		{"missing lyrics", func(r *GenerateSongRequest) { r.Lyrics = "" }, true},
		{"instrumental without lyrics", func(r *GenerateSongRequest) { r.Lyrics = ""; r.Instrumental = true }, false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			req := validSongRequest()
			tt.mutate(req)
			err := req.Validate()
			if tt.wantErr && !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestSongService(t *testing.T) {
	t.Run("Generate", func(t *testing.T) {
		t.Run("Returns Task And Song IDs", func(t *testing.T) {
			svc := newSongService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != api.SongGenerate() {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				json.NewEncoder(w).Encode(models.GenerateResponse{TaskID: "t-1", SongID: "s-1"})
			}))

			resp, err := svc.Generate(context.Background(), validSongRequest())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.TaskID != "t-1" || resp.SongID != "s-1" {
				t.Errorf("unexpected response: %+v", resp)
			}
		})

		t.Run("Rejects Invalid Request Without Network Call", func(t *testing.T) {
			svc := newSongService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("unexpected request")
			}))

			if _, err := svc.Generate(context.Background(), &GenerateSongRequest{}); !errors.Is(err, shared.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})

		t.Run("Missing Task ID Is Malformed", func(t *testing.T) {
			svc := newSongService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]string{})
			}))

			if _, err := svc.Generate(context.Background(), validSongRequest()); !errors.Is(err, shared.ErrMalformedEntity) {
				t.Fatalf("expected ErrMalformedEntity, got %v", err)
			}
		})
	})

	t.Run("Await Reloads Detail Exactly Once On Success", func(t *testing.T) {
		statuses := []models.JobState{
			{TaskID: "t-1", Status: models.StatusPending},
			{TaskID: "t-1", Status: models.StatusProgress},
			{TaskID: "t-1", Status: models.StatusSuccess, Result: json.RawMessage(`{"id": "partial"}`)},
		}
		statusCalls := 0
		detailCalls := 0

		svc := newSongService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case api.SongStatus("t-1"):
				state := statuses[statusCalls]
				statusCalls++
				json.NewEncoder(w).Encode(state)
			case api.SongDetail("s-1"):
				detailCalls++
				json.NewEncoder(w).Encode(models.Song{ID: "s-1", Title: "Night Drive", Status: models.StatusSuccess})
			default:
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
		}))

		var lines []string
		song, err := svc.Await(context.Background(), "t-1", "s-1", func(state *models.JobState) {
			lines = append(lines, poll.StatusLine(state))
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if song.ID != "s-1" || song.Title != "Night Drive" {
			t.Errorf("expected canonical detail record, got %+v", song)
		}
		if statusCalls != 3 {
			t.Errorf("expected 3 status polls, got %d", statusCalls)
		}
		if detailCalls != 1 {
			t.Errorf("expected exactly one detail reload, got %d", detailCalls)
		}
		if len(lines) != 2 || lines[0] != "Initializing request" || lines[1] != "Processing request" {
			t.Errorf("unexpected status lines: %v", lines)
		}
	})

	t.Run("Await Surfaces Job Failure", func(t *testing.T) {
		svc := newSongService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != api.SongStatus("t-1") {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(models.JobState{TaskID: "t-1", Status: models.StatusFailure, Error: "no credits"})
		}))

		_, err := svc.Await(context.Background(), "t-1", "s-1", nil)
		if !errors.Is(err, shared.ErrJobFailed) {
			t.Fatalf("expected ErrJobFailed, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		t.Run("Sends Only Set Fields", func(t *testing.T) {
			svc := newSongService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var body map[string]any
				json.NewDecoder(r.Body).Decode(&body)
				if _, ok := body["lyrics"]; ok {
					t.Error("nil patch field should be omitted")
				}
				if body["title"] != "Renamed" {
					t.Errorf("unexpected body: %v", body)
				}
				json.NewEncoder(w).Encode(models.Song{ID: "s-1", Title: "Renamed"})
			}))

			title := "Renamed"
			song, err := svc.Update(context.Background(), "s-1", &models.SongPatch{Title: &title})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if song.Title != "Renamed" {
				t.Errorf("unexpected song: %+v", song)
			}
		})

		t.Run("Rejects Empty Patch", func(t *testing.T) {
			svc := newSongService(t, nil)
			if _, err := svc.Update(context.Background(), "s-1", &models.SongPatch{}); !errors.Is(err, shared.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	})

	t.Run("Rate", func(t *testing.T) {
		t.Run("Bounds", func(t *testing.T) {
			svc := newSongService(t, nil)
			for _, rating := range []int{0, 6, -1} {
				if err := svc.Rate(context.Background(), "s-1", rating); !errors.Is(err, shared.ErrInvalidInput) {
					t.Errorf("rating %d: expected ErrInvalidInput, got %v", rating, err)
				}
			}
		})

		t.Run("Posts Rating", func(t *testing.T) {
			svc := newSongService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var body map[string]int
				json.NewDecoder(r.Body).Decode(&body)
				if body["rating"] != 4 {
					t.Errorf("unexpected body: %v", body)
				}
				w.WriteHeader(http.StatusOK)
			}))

			if err := svc.Rate(context.Background(), "s-1", 4); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	})

	t.Run("Stems", func(t *testing.T) {
		t.Run("Returns Stem URLs", func(t *testing.T) {
			svc := newSongService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(StemsResult{SongID: "s-1", Stems: map[string]string{"vocals": "https://cdn/v.wav"}})
			}))

			result, err := svc.Stems(context.Background(), "s-1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result.Stems["vocals"] == "" {
				t.Errorf("unexpected result: %+v", result)
			}
		})

		t.Run("Exceeded Window Becomes ErrJobTimeout", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
			}))
			defer server.Close()

			svc := NewSongService(api.NewClient(server.URL, 0, nil), instantWatcher(), 50*time.Millisecond)

			_, err := svc.Stems(context.Background(), "s-1")
			if !errors.Is(err, shared.ErrJobTimeout) {
				t.Fatalf("expected ErrJobTimeout, got %v", err)
			}
		})

		t.Run("Outlives Default Request Timeout", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(150 * time.Millisecond)
				json.NewEncoder(w).Encode(StemsResult{SongID: "s-1", Stems: map[string]string{"drums": "https://cdn/d.wav"}})
			}))
			defer server.Close()

			// Extraction runs far past the per-request default; only its own
			// window bounds the call.
			svc := NewSongService(api.NewClient(server.URL, 50*time.Millisecond, nil), instantWatcher(), 500*time.Millisecond)

			result, err := svc.Stems(context.Background(), "s-1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result.Stems["drums"] == "" {
				t.Errorf("unexpected result: %+v", result)
			}
		})

		t.Run("Caller Cancellation Is Not A Job Timeout", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
			}))
			defer server.Close()

			svc := NewSongService(api.NewClient(server.URL, 0, nil), instantWatcher(), 500*time.Millisecond)

			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				time.Sleep(50 * time.Millisecond)
				cancel()
			}()

			_, err := svc.Stems(ctx, "s-1")
			if err == nil {
				t.Fatal("expected an error")
			}
			if errors.Is(err, shared.ErrJobTimeout) {
				t.Fatalf("cancellation misreported as job timeout: %v", err)
			}
		})
	})
}

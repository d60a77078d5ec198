package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/duskfall/mstro/internal/api"
	"github.com/duskfall/mstro/internal/models"
	"github.com/duskfall/mstro/internal/shared"
)

func newImageService(t *testing.T, handler http.Handler) *ImageService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewImageService(api.NewClient(server.URL, 0, nil), instantWatcher())
}

func TestImageService(t *testing.T) {
	t.Run("Generate Requires Prompt", func(t *testing.T) {
		svc := newImageService(t, nil)
		if _, err := svc.Generate(context.Background(), &GenerateImageRequest{}); !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Await Reloads Detail On Success", func(t *testing.T) {
		detailCalls := 0
		svc := newImageService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case api.ImageStatus("t-9"):
				json.NewEncoder(w).Encode(models.JobState{TaskID: "t-9", Status: models.StatusSuccess})
			case api.ImageDetail("i-9"):
				detailCalls++
				json.NewEncoder(w).Encode(models.Image{ID: "i-9", URL: "https://cdn/i-9.png"})
			default:
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
		}))

		image, err := svc.Await(context.Background(), "t-9", "i-9", nil)
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if image.ID != "i-9" || detailCalls != 1 {
			t.Errorf("expected one canonical reload, got %d (%+v)", detailCalls, image)
		}
	})

	t.Run("List Decodes Pagination", func(t *testing.T) {
		svc := newImageService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.RawQuery; got != "limit=10&offset=20" {
				t.Errorf("unexpected query: %s", got)
			}
			json.NewEncoder(w).Encode(models.Page[models.Image]{
				Items:      []models.Image{{ID: "i-1"}},
				Pagination: models.Pagination{Total: 31, Limit: 10, Offset: 20, HasMore: true},
			})
		}))

		page, err := svc.List(context.Background(), 10, 20)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(page.Items) != 1 || !page.Pagination.HasMore {
			t.Errorf("unexpected page: %+v", page)
		}
	})

	t.Run("BulkDelete", func(t *testing.T) {
		t.Run("Posts Batch", func(t *testing.T) {
			svc := newImageService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != api.ImageBulkDelete() || r.Method != http.MethodPost {
					t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
				}
				var body map[string][]string
				json.NewDecoder(r.Body).Decode(&body)
				if len(body["ids"]) != 2 {
					t.Errorf("unexpected body: %v", body)
				}
				w.WriteHeader(http.StatusOK)
			}))

			if err := svc.BulkDelete(context.Background(), []string{"i-1", "i-2"}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Rejects Empty Batch", func(t *testing.T) {
			svc := newImageService(t, nil)
			if err := svc.BulkDelete(context.Background(), nil); !errors.Is(err, shared.ErrMissingArgument) {
				t.Fatalf("expected ErrMissingArgument, got %v", err)
			}
		})

		t.Run("Rejects Blank ID", func(t *testing.T) {
			svc := newImageService(t, nil)
			if err := svc.BulkDelete(context.Background(), []string{"i-1", ""}); !errors.Is(err, shared.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	})
}

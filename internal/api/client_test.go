package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		client := NewClient("", 0, nil)
		if client.BaseURL() != defaultBaseURL {
			t.Errorf("expected default base URL, got %s", client.BaseURL())
		}
	})

	t.Run("Trims Trailing Slash", func(t *testing.T) {
		client := NewClient("http://example.com/", 0, nil)
		if client.BaseURL() != "http://example.com" {
			t.Errorf("unexpected base URL: %s", client.BaseURL())
		}
	})

	t.Run("GetJSON Decodes Response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("expected GET, got %s", r.Method)
			}
			json.NewEncoder(w).Encode(map[string]string{"plan": "pro"})
		}))
		defer server.Close()

		client := NewClient(server.URL, 0, nil)

		var out struct {
			Plan string `json:"plan"`
		}
		if err := client.GetJSON(context.Background(), BillingInfo(), &out); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Plan != "pro" {
			t.Errorf("unexpected payload: %+v", out)
		}
	})

	t.Run("PostJSON Sends Body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected JSON content type, got %s", ct)
			}
			var in map[string]string
			json.NewDecoder(r.Body).Decode(&in)
			if in["prompt"] != "neon skyline" {
				t.Errorf("unexpected body: %v", in)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewClient(server.URL, 0, nil)
		if err := client.PostJSON(context.Background(), ImageGenerate(), map[string]string{"prompt": "neon skyline"}, nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Default Timeout", func(t *testing.T) {
		t.Run("Bounds Ordinary Requests", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
			}))
			defer server.Close()

			client := NewClient(server.URL, 50*time.Millisecond, nil)
			err := client.GetJSON(context.Background(), BillingInfo(), nil)
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Fatalf("expected deadline exceeded, got %v", err)
			}
		})

		t.Run("Yields To Caller Deadline", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(150 * time.Millisecond)
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := NewClient(server.URL, 50*time.Millisecond, nil)
			ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := client.GetJSON(ctx, BillingInfo(), nil); err != nil {
				t.Fatalf("expected caller deadline to win, got %v", err)
			}
		})
	})

	t.Run("Error Responses Become API Errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "song not found"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, 0, nil)

		err := client.GetJSON(context.Background(), SongDetail("missing"), nil)
		var apiErr *Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *Error, got %v", err)
		}
		if apiErr.Status != http.StatusNotFound || apiErr.Message != "song not found" {
			t.Errorf("unexpected error: %+v", apiErr)
		}
	})

	t.Run("Raw", func(t *testing.T) {
		t.Run("JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"status": "ok"}`))
			}))
			defer server.Close()

			client := NewClient(server.URL, 0, nil)
			resp, err := client.Raw(context.Background(), http.MethodGet, "/health", nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !resp.IsJSON || resp.JSONData == nil {
				t.Error("expected JSON detection")
			}
		})

		t.Run("Non-2xx Returns Response Not Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte("upstream down"))
			}))
			defer server.Close()

			client := NewClient(server.URL, 0, nil)
			resp, err := client.Raw(context.Background(), http.MethodGet, "/health", nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.StatusCode != http.StatusBadGateway {
				t.Errorf("unexpected status: %d", resp.StatusCode)
			}
			if string(resp.Body) != "upstream down" {
				t.Errorf("unexpected body: %s", resp.Body)
			}
		})
	})
}

func TestEndpoints(t *testing.T) {
	t.Run("Path Escaping", func(t *testing.T) {
		if got := SongDetail("a/b"); got != "/api/songs/a%2Fb" {
			t.Errorf("unexpected path: %s", got)
		}
	})

	t.Run("Pagination Query", func(t *testing.T) {
		if got := SongList(25, 50); got != "/api/songs?limit=25&offset=50" {
			t.Errorf("unexpected path: %s", got)
		}
	})

	t.Run("Public Allow List", func(t *testing.T) {
		for _, path := range []string{AuthLogin(), AuthSignup(), AuthValidate()} {
			if !IsPublic(path) {
				t.Errorf("expected %s to be public", path)
			}
		}
		for _, path := range []string{AuthLogout(), SongGenerate(), BillingInfo()} {
			if IsPublic(path) {
				t.Errorf("expected %s to require auth", path)
			}
		}
	})
}

package composer

import (
	"testing"
	"time"

	"github.com/duskfall/mstro/internal/shared"
	"github.com/duskfall/mstro/internal/store"
)

func newTestConfigStore(t *testing.T) *ConfigStore {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return NewConfigStore(store.NewKV(db))
}

func TestConfigStore(t *testing.T) {
	t.Run("Architecture", func(t *testing.T) {
		t.Run("Load Without Save Returns Default", func(t *testing.T) {
			cs := newTestConfigStore(t)
			arch := cs.LoadArchitecture()
			if got := arch.Render(); got != "Song structure: VERSE1 - CHORUS - VERSE2 - CHORUS" {
				t.Errorf("unexpected default: %q", got)
			}
		})

		t.Run("Roundtrip Refreshes Timestamp", func(t *testing.T) {
			cs := newTestConfigStore(t)
			stamp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			cs.now = func() time.Time { return stamp }

			arch := &Architecture{}
			arch.Add(SectionIntro)
			arch.Add(SectionVerse)

			if err := cs.SaveArchitecture(arch); err != nil {
				t.Fatalf("save: %v", err)
			}

			loaded := cs.LoadArchitecture()
			if !loaded.LastModified.Equal(stamp) {
				t.Errorf("expected refreshed timestamp, got %v", loaded.LastModified)
			}
			if got := loaded.Render(); got != "Song structure: INTRO - VERSE1" {
				t.Errorf("unexpected structure: %q", got)
			}
		})

		t.Run("Corrupt Blob Falls Back To Default", func(t *testing.T) {
			cs := newTestConfigStore(t)
			if err := cs.kv.Put(KeyArchitecture, map[string]any{"sections": []map[string]string{{"kind": "GARBAGE"}}}, 0); err != nil {
				t.Fatalf("put: %v", err)
			}

			arch := cs.LoadArchitecture()
			if got := arch.Render(); got != "Song structure: VERSE1 - CHORUS - VERSE2 - CHORUS" {
				t.Errorf("expected default after corrupt blob, got %q", got)
			}
		})
	})

	t.Run("StyleChooser", func(t *testing.T) {
		t.Run("Load Without Save Returns Default", func(t *testing.T) {
			cs := newTestConfigStore(t)
			if got := cs.LoadStyleChooser().GenerateStylePrompt(); got != "" {
				t.Errorf("expected empty default, got %q", got)
			}
		})

		t.Run("Roundtrip", func(t *testing.T) {
			cs := newTestConfigStore(t)

			chooser := DefaultStyleChooser()
			chooser.ToggleStyle("pop")
			chooser.ToggleInstrument("male-voice")
			chooser.ToggleTheme("love")

			if err := cs.SaveStyleChooser(chooser); err != nil {
				t.Fatalf("save: %v", err)
			}

			loaded := cs.LoadStyleChooser()
			if got := loaded.GenerateStylePrompt(); got != "pop music with male vocals with themes of love" {
				t.Errorf("unexpected prompt: %q", got)
			}
			if loaded.LastModified.IsZero() {
				t.Error("expected timestamp to be set")
			}
		})
	})
}

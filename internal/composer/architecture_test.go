package composer

import (
	"errors"
	"reflect"
	"testing"

	"github.com/duskfall/mstro/internal/shared"
)

func TestArchitecture(t *testing.T) {
	t.Run("Default Structure", func(t *testing.T) {
		arch := DefaultArchitecture()
		if got := arch.Render(); got != "Song structure: VERSE1 - CHORUS - VERSE2 - CHORUS" {
			t.Errorf("unexpected render: %q", got)
		}
	})

	t.Run("Cardinality", func(t *testing.T) {
		t.Run("Second Intro Is Rejected And Leaves Structure Unchanged", func(t *testing.T) {
			arch := &Architecture{}
			if err := arch.Add(SectionIntro); err != nil {
				t.Fatalf("first intro: %v", err)
			}
			before := arch.Labels()

			err := arch.Add(SectionIntro)
			if !errors.Is(err, shared.ErrSectionCardinality) {
				t.Fatalf("expected ErrSectionCardinality, got %v", err)
			}
			if !reflect.DeepEqual(arch.Labels(), before) {
				t.Errorf("structure changed after rejected add: %v", arch.Labels())
			}
		})

		t.Run("Second Outro Is Rejected", func(t *testing.T) {
			arch := &Architecture{}
			if err := arch.Add(SectionOutro); err != nil {
				t.Fatalf("first outro: %v", err)
			}
			if err := arch.Add(SectionOutro); !errors.Is(err, shared.ErrSectionCardinality) {
				t.Fatalf("expected ErrSectionCardinality, got %v", err)
			}
		})

		t.Run("Verses Are Unlimited And Numbered In Order", func(t *testing.T) {
			arch := &Architecture{}
			arch.Add(SectionVerse)
			arch.Add(SectionVerse)

			if got := arch.Labels(); !reflect.DeepEqual(got, []string{"VERSE1", "VERSE2"}) {
				t.Errorf("unexpected labels: %v", got)
			}
		})
	})

	t.Run("Renumbering", func(t *testing.T) {
		t.Run("After Remove", func(t *testing.T) {
			arch := &Architecture{}
			arch.Add(SectionVerse)
			arch.Add(SectionChorus)
			arch.Add(SectionVerse)

			if err := arch.Remove(0); err != nil {
				t.Fatalf("remove: %v", err)
			}
			if got := arch.Labels(); !reflect.DeepEqual(got, []string{"CHORUS", "VERSE1"}) {
				t.Errorf("expected remaining verse renumbered, got %v", got)
			}
		})

		t.Run("After Move", func(t *testing.T) {
			arch := &Architecture{}
			arch.Add(SectionVerse)
			arch.Add(SectionBridge)
			arch.Add(SectionVerse)

			if err := arch.Move(2, 0); err != nil {
				t.Fatalf("move: %v", err)
			}
			if got := arch.Labels(); !reflect.DeepEqual(got, []string{"VERSE1", "VERSE2", "BRIDGE"}) {
				t.Errorf("unexpected labels after move: %v", got)
			}
		})
	})

	t.Run("Placement", func(t *testing.T) {
		arch := &Architecture{}
		arch.Add(SectionVerse)
		arch.Add(SectionOutro)
		arch.Add(SectionIntro)
		arch.Add(SectionChorus)

		want := []string{"INTRO", "VERSE1", "CHORUS", "OUTRO"}
		if got := arch.Labels(); !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("Bounds", func(t *testing.T) {
		arch := DefaultArchitecture()
		if err := arch.Remove(99); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if err := arch.Move(0, 99); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if err := arch.Add("DROP_SOLO"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Empty Renders Nothing", func(t *testing.T) {
		arch := &Architecture{}
		if got := arch.Render(); got != "" {
			t.Errorf("expected empty render, got %q", got)
		}
	})
}

// Package composer holds the rule-based prompt builders: the lyric
// architecture (ordered song sections) and the music style chooser. Both are
// pure and synchronous; persistence goes through the local KV store with a
// refreshed modification timestamp on every save.
package composer

import (
	"fmt"
	"strings"
	"time"

	"github.com/duskfall/mstro/internal/shared"
)

// SectionKind enumerates the song section types.
type SectionKind string

const (
	SectionIntro  SectionKind = "INTRO"
	SectionVerse  SectionKind = "VERSE"
	SectionChorus SectionKind = "CHORUS"
	SectionBridge SectionKind = "BRIDGE"
	SectionHook   SectionKind = "HOOK"
	SectionOutro  SectionKind = "OUTRO"
)

// Valid reports whether the kind is a known section type.
func (k SectionKind) Valid() bool {
	switch k {
	case SectionIntro, SectionVerse, SectionChorus, SectionBridge, SectionHook, SectionOutro:
		return true
	}
	return false
}

// unique reports whether the kind may appear at most once.
func (k SectionKind) unique() bool {
	return k == SectionIntro || k == SectionOutro
}

// Section is one entry in the lyric architecture. Label carries the rendered
// name; VERSE sections get a sequence number (VERSE1, VERSE2, ...).
type Section struct {
	Kind  SectionKind `json:"kind"`
	Label string      `json:"label"`
}

// Architecture is the ordered list of song sections.
//
// INTRO and OUTRO appear at most once; VERSE sections are unlimited and are
// renumbered in list order after every mutation. A rejected mutation leaves
// the list unchanged.
type Architecture struct {
	Sections     []Section `json:"sections"`
	LastModified time.Time `json:"lastModified"`
}

// DefaultArchitecture returns the starting verse-chorus structure.
func DefaultArchitecture() *Architecture {
	a := &Architecture{Sections: []Section{
		{Kind: SectionVerse},
		{Kind: SectionChorus},
		{Kind: SectionVerse},
		{Kind: SectionChorus},
	}}
	a.renumber()
	return a
}

// Add inserts a section. INTRO goes to the front, OUTRO to the back, every
// other kind is appended before a trailing OUTRO.
func (a *Architecture) Add(kind SectionKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown section %q", shared.ErrInvalidInput, kind)
	}
	if kind.unique() && a.count(kind) > 0 {
		return fmt.Errorf("%w: %s may appear only once", shared.ErrSectionCardinality, kind)
	}

	section := Section{Kind: kind}
	switch kind {
	case SectionIntro:
		a.Sections = append([]Section{section}, a.Sections...)
	case SectionOutro:
		a.Sections = append(a.Sections, section)
	default:
		at := len(a.Sections)
		if at > 0 && a.Sections[at-1].Kind == SectionOutro {
			at--
		}
		a.Sections = append(a.Sections[:at], append([]Section{section}, a.Sections[at:]...)...)
	}

	a.renumber()
	return nil
}

// Remove deletes the section at index.
func (a *Architecture) Remove(index int) error {
	if index < 0 || index >= len(a.Sections) {
		return fmt.Errorf("%w: section index %d out of range", shared.ErrInvalidInput, index)
	}

	a.Sections = append(a.Sections[:index], a.Sections[index+1:]...)
	a.renumber()
	return nil
}

// Move relocates the section at from to position to.
func (a *Architecture) Move(from, to int) error {
	if from < 0 || from >= len(a.Sections) || to < 0 || to >= len(a.Sections) {
		return fmt.Errorf("%w: move %d -> %d out of range", shared.ErrInvalidInput, from, to)
	}
	if from == to {
		return nil
	}

	section := a.Sections[from]
	rest := append(a.Sections[:from:from], a.Sections[from+1:]...)
	a.Sections = append(rest[:to:to], append([]Section{section}, rest[to:]...)...)
	a.renumber()
	return nil
}

// Reset restores the default structure.
func (a *Architecture) Reset() {
	*a = *DefaultArchitecture()
}

// Render returns the structure line consumed by prompt construction,
// e.g. "Song structure: VERSE1 - CHORUS - VERSE2 - CHORUS".
func (a *Architecture) Render() string {
	if len(a.Sections) == 0 {
		return ""
	}
	return "Song structure: " + strings.Join(a.Labels(), " - ")
}

// Labels returns the rendered section names in order.
func (a *Architecture) Labels() []string {
	labels := make([]string, len(a.Sections))
	for i, s := range a.Sections {
		labels[i] = s.Label
	}
	return labels
}

func (a *Architecture) count(kind SectionKind) int {
	n := 0
	for _, s := range a.Sections {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

// renumber rebuilds every label; VERSE sections are numbered in list order.
func (a *Architecture) renumber() {
	verse := 0
	for i := range a.Sections {
		if a.Sections[i].Kind == SectionVerse {
			verse++
			a.Sections[i].Label = fmt.Sprintf("%s%d", SectionVerse, verse)
			continue
		}
		a.Sections[i].Label = string(a.Sections[i].Kind)
	}
}

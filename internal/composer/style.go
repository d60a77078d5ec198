package composer

import (
	"slices"
	"strings"
	"time"
)

// StyleChooser holds the music style selections feeding the style prompt.
type StyleChooser struct {
	SelectedStyles      []string  `json:"selectedStyles"`
	SelectedThemes      []string  `json:"selectedThemes"`
	SelectedInstruments []string  `json:"selectedInstruments"`
	LastModified        time.Time `json:"lastModified"`
}

// DefaultStyleChooser returns an empty selection.
func DefaultStyleChooser() *StyleChooser {
	return &StyleChooser{
		SelectedStyles:      []string{},
		SelectedThemes:      []string{},
		SelectedInstruments: []string{},
	}
}

// ToggleStyle adds the style if absent, removes it if present.
func (c *StyleChooser) ToggleStyle(style string) {
	c.SelectedStyles = toggle(c.SelectedStyles, style)
}

// ToggleTheme adds the theme if absent, removes it if present.
func (c *StyleChooser) ToggleTheme(theme string) {
	c.SelectedThemes = toggle(c.SelectedThemes, theme)
}

// ToggleInstrument adds the instrument if absent, removes it if present.
func (c *StyleChooser) ToggleInstrument(instrument string) {
	c.SelectedInstruments = toggle(c.SelectedInstruments, instrument)
}

// Reset clears every selection.
func (c *StyleChooser) Reset() {
	*c = *DefaultStyleChooser()
}

// voiceLabels maps the voice pseudo-instruments to their prompt wording.
var voiceLabels = map[string]string{
	"male-voice":   "male vocals",
	"female-voice": "female vocals",
}

// GenerateStylePrompt renders the selections into the style line, e.g.
// "pop music with electric-guitar, male vocals with themes of love".
func (c *StyleChooser) GenerateStylePrompt() string {
	var parts []string

	if len(c.SelectedStyles) > 0 {
		parts = append(parts, strings.Join(c.SelectedStyles, ", ")+" music")
	}

	if len(c.SelectedInstruments) > 0 {
		instruments := make([]string, len(c.SelectedInstruments))
		for i, instrument := range c.SelectedInstruments {
			if label, ok := voiceLabels[instrument]; ok {
				instruments[i] = label
				continue
			}
			instruments[i] = instrument
		}
		parts = append(parts, "with "+strings.Join(instruments, ", "))
	}

	if len(c.SelectedThemes) > 0 {
		parts = append(parts, "with themes of "+strings.Join(c.SelectedThemes, ", "))
	}

	return strings.Join(parts, " ")
}

func toggle(list []string, value string) []string {
	if i := slices.Index(list, value); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return append(list, value)
}

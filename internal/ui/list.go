package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/duskfall/mstro/internal/models"
	"github.com/duskfall/mstro/internal/shared"
)

var (
	_ list.Item = songItem{}
)

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) Title() string       { return i.song.Title }
func (i songItem) Description() string {
	desc := string(i.song.Status)
	if i.song.Style != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.song.Style)
	}
	if i.song.Duration > 0 {
		desc = fmt.Sprintf("%s • %s", desc, shared.FormatDuration(i.song.Duration))
	}
	return desc
}

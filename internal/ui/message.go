package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/duskfall/mstro/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgStatusUpdate MsgKind = iota
	MsgGenerateComplete
	MsgSongsFetched
)

// statusUpdateMsg is the constructor for [MsgStatusUpdate]
func statusUpdateMsg(line string) Msg {
	return Msg{kind: MsgStatusUpdate, data: line}
}

// generateCompleteMsg is the constructor for [MsgGenerateComplete]
func generateCompleteMsg(song *models.Song, err error) Msg {
	return Msg{
		kind: MsgGenerateComplete,
		data: struct {
			song *models.Song
			err  error
		}{song, err},
	}
}

// songsFetchedMsg is the constructor for [MsgSongsFetched]
func songsFetchedMsg(page *models.Page[models.Song], err error) Msg {
	return Msg{
		kind: MsgSongsFetched,
		data: struct {
			page *models.Page[models.Song]
			err  error
		}{page, err},
	}
}

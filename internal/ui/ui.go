package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/duskfall/mstro/internal/composer"
	"github.com/duskfall/mstro/internal/models"
	"github.com/duskfall/mstro/internal/poll"
	"github.com/duskfall/mstro/internal/services"
	"github.com/duskfall/mstro/internal/shared"
	"github.com/duskfall/mstro/internal/store"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	FormView ViewState = iota
	GeneratingView
	DetailView
	LibraryView
	ErrorView
)

// Form field indices.
const (
	fieldTitle = iota
	fieldStyle
	fieldLyrics
	fieldCount
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	songs   *services.SongService
	drafts  *store.DraftStore
	configs *composer.ConfigStore
	width   int
	height  int

	title  textinput.Model
	style  textinput.Model
	lyrics textarea.Model
	focus  int

	spin       spinner.Model
	statusLine string
	statusChan chan string
	resultSong *models.Song
	resultErr  error

	songList list.Model
	song     *models.Song
	err      error

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
//
// The form is prefilled from the saved draft; the style field falls back to
// the style chooser's generated prompt when the draft has none.
func NewModel(ctx context.Context, songs *services.SongService, drafts *store.DraftStore, configs *composer.ConfigStore) *Model {
	title := textinput.New()
	title.Placeholder = "Song title"
	title.Focus()

	style := textinput.New()
	style.Placeholder = "Style prompt"

	lyrics := textarea.New()
	lyrics.Placeholder = "Lyrics (leave empty for instrumental)"

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := &Model{
		ctx:     ctx,
		view:    FormView,
		songs:   songs,
		drafts:  drafts,
		configs: configs,
		title:   title,
		style:   style,
		lyrics:  lyrics,
		spin:    spin,
		help:    help.New(),
		keys:    newKeyMap(),
	}
	m.hydrateForm()
	return m
}

// hydrateForm restores the saved draft and the composer style prompt.
func (m *Model) hydrateForm() {
	draft := m.drafts.LoadSong()
	m.title.SetValue(draft.Title)
	m.style.SetValue(draft.Style)
	m.lyrics.SetValue(draft.Lyrics)
	if m.style.Value() == "" {
		m.style.SetValue(m.configs.LoadStyleChooser().GenerateStylePrompt())
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.lyrics.SetWidth(msg.Width - 4)
		if m.songList.Width() == 0 {
			m.songList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case FormView:
			return m.handleFormKeys(msg)
		case LibraryView:
			return m.handleLibraryKeys(msg)
		case DetailView, ErrorView:
			return m.handleTerminalKeys(msg)
		case GeneratingView:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}

	case spinner.TickMsg:
		if m.view == GeneratingView {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case Msg:
		return m.handleAppMsg(msg)
	}

	return m, nil
}

func (m *Model) handleAppMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgStatusUpdate:
		m.statusLine = msg.data.(string)
		return m, m.waitForStatus()

	case MsgGenerateComplete:
		data := msg.data.(struct {
			song *models.Song
			err  error
		})
		m.statusChan = nil
		if data.err != nil {
			m.err = data.err
			m.view = ErrorView
			return m, nil
		}
		m.song = data.song
		m.view = DetailView
		m.drafts.ClearSong()
		return m, nil

	case MsgSongsFetched:
		data := msg.data.(struct {
			page *models.Page[models.Song]
			err  error
		})
		if data.err != nil {
			m.err = data.err
			m.view = ErrorView
			return m, nil
		}
		items := make([]list.Item, len(data.page.Items))
		for i, song := range data.page.Items {
			items[i] = songItem{song: song}
		}
		m.songList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.songList.Title = "Library"
		m.songList.SetSize(m.width-4, m.height-8)
		m.view = LibraryView
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case FormView:
		return m.renderForm()
	case GeneratingView:
		return m.renderGenerating()
	case DetailView:
		return m.renderDetail()
	case LibraryView:
		return m.renderLibrary()
	case ErrorView:
		return m.renderError()
	default:
		return ""
	}
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.saveDraft()
		return m, tea.Quit
	case key.Matches(msg, m.keys.next):
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil
	case key.Matches(msg, m.keys.prev):
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil
	case key.Matches(msg, m.keys.generate):
		m.saveDraft()
		m.view = GeneratingView
		m.statusLine = "Initializing request"
		return m, tea.Batch(m.spin.Tick, m.startGeneration())
	case key.Matches(msg, m.keys.library):
		return m, m.fetchSongs()
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldStyle:
		m.style, cmd = m.style.Update(msg)
	case fieldLyrics:
		m.lyrics, cmd = m.lyrics.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleLibraryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = FormView
		return m, nil
	case "enter":
		if selected := m.songList.SelectedItem(); selected != nil {
			if item, ok := selected.(songItem); ok {
				song := item.song
				m.song = &song
				m.view = DetailView
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleTerminalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = FormView
		m.song = nil
		m.err = nil
		return m, textinput.Blink
	case "esc":
		if m.view == DetailView {
			m.view = FormView
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) setFocus(focus int) {
	m.focus = focus
	m.title.Blur()
	m.style.Blur()
	m.lyrics.Blur()

	switch focus {
	case fieldTitle:
		m.title.Focus()
	case fieldStyle:
		m.style.Focus()
	case fieldLyrics:
		m.lyrics.Focus()
	}
}

func (m *Model) saveDraft() {
	m.drafts.SaveSong(store.SongDraft{
		Title:        m.title.Value(),
		Style:        m.style.Value(),
		Lyrics:       m.lyrics.Value(),
		Instrumental: m.lyrics.Value() == "",
	})
}

// startGeneration submits the form and polls the job in a goroutine. Status
// lines stream through statusChan; the final outcome is read after the
// channel closes.
func (m *Model) startGeneration() tea.Cmd {
	m.statusChan = make(chan string, 8)

	req := &services.GenerateSongRequest{
		Title:        m.title.Value(),
		Style:        m.style.Value(),
		Lyrics:       m.lyrics.Value(),
		Instrumental: m.lyrics.Value() == "",
	}

	go func() {
		defer close(m.statusChan)

		resp, err := m.songs.Generate(m.ctx, req)
		if err != nil {
			m.resultSong, m.resultErr = nil, err
			return
		}

		song, err := m.songs.Await(m.ctx, resp.TaskID, resp.SongID, func(state *models.JobState) {
			select {
			case m.statusChan <- poll.StatusLine(state):
			default:
			}
		})
		m.resultSong, m.resultErr = song, err
	}()

	return m.waitForStatus()
}

func (m *Model) waitForStatus() tea.Cmd {
	ch := m.statusChan
	return func() tea.Msg {
		if ch == nil {
			return generateCompleteMsg(m.resultSong, m.resultErr)
		}

		line, ok := <-ch
		if !ok {
			return generateCompleteMsg(m.resultSong, m.resultErr)
		}
		return statusUpdateMsg(line)
	}
}

func (m *Model) fetchSongs() tea.Cmd {
	return func() tea.Msg {
		page, err := m.songs.List(m.ctx, 50, 0)
		return songsFetchedMsg(page, err)
	}
}

func (m *Model) renderForm() string {
	title := styles.title.Render("Generate a Song")

	form := fmt.Sprintf(
		"Title\n%s\n\nStyle\n%s\n\nLyrics\n%s",
		m.title.View(),
		m.style.View(),
		m.lyrics.View(),
	)

	helpKeys := []key.Binding{m.keys.next, m.keys.generate, m.keys.library, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, form, helpView)
}

func (m *Model) renderGenerating() string {
	title := styles.title.Render("Generating")
	return fmt.Sprintf("%s\n%s %s\n", title, m.spin.View(), m.statusLine)
}

func (m *Model) renderDetail() string {
	if m.song == nil {
		return styles.err.Render("No song available\n\nPress r for a new song, q to quit")
	}

	title := styles.ok.Render(fmt.Sprintf("✓ %s", m.song.Title))
	info := fmt.Sprintf("\nStatus: %s", m.song.Status)
	if m.song.Style != "" {
		info += fmt.Sprintf("\nStyle: %s", m.song.Style)
	}
	if m.song.Duration > 0 {
		info += fmt.Sprintf("\nDuration: %s", shared.FormatDuration(m.song.Duration))
	}
	if m.song.AudioURL != "" {
		info += fmt.Sprintf("\nAudio: %s", m.song.AudioURL)
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s\n\n%s", title, info, helpView)
}

func (m *Model) renderLibrary() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.songList.View(), helpView)
}

func (m *Model) renderError() string {
	return styles.err.Render(fmt.Sprintf("Generation failed: %v\n\nPress r to retry, q to quit", m.err))
}

package store

// Storage keys shared with the studio web app.
const (
	KeyUserSettings = "user-settings"
	KeySongDraft    = "song-form-draft"
	KeyImageDraft   = "image-form-draft"
)

// Settings holds list-size preferences for song and image listings.
type Settings struct {
	SongListLimit  int `json:"songListLimit"`
	ImageListLimit int `json:"imageListLimit"`
}

// DefaultSettings returns the fixed fallback used when nothing is saved.
func DefaultSettings() Settings {
	return Settings{SongListLimit: 20, ImageListLimit: 20}
}

// SettingsStore persists user preferences.
type SettingsStore struct {
	kv *KV
}

// NewSettingsStore creates a SettingsStore on the given KV store.
func NewSettingsStore(kv *KV) *SettingsStore {
	return &SettingsStore{kv: kv}
}

// Load returns the saved settings, or [DefaultSettings] when absent or unparseable.
func (s *SettingsStore) Load() Settings {
	var settings Settings
	if err := s.kv.Get(KeyUserSettings, &settings); err != nil {
		return DefaultSettings()
	}
	if settings.SongListLimit <= 0 || settings.ImageListLimit <= 0 {
		return DefaultSettings()
	}
	return settings
}

// Save persists the settings.
func (s *SettingsStore) Save(settings Settings) error {
	return s.kv.Put(KeyUserSettings, settings, 0)
}

// SongDraft is the unsaved state of the song generation form.
type SongDraft struct {
	Title        string `json:"title"`
	Lyrics       string `json:"lyrics"`
	Style        string `json:"style"`
	Instrumental bool   `json:"instrumental"`
}

// ImageDraft is the unsaved state of the image generation form.
type ImageDraft struct {
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// DraftStore persists generation form drafts.
type DraftStore struct {
	kv *KV
}

// NewDraftStore creates a DraftStore on the given KV store.
func NewDraftStore(kv *KV) *DraftStore {
	return &DraftStore{kv: kv}
}

// SaveSong persists the song form draft.
func (d *DraftStore) SaveSong(draft SongDraft) error {
	return d.kv.Put(KeySongDraft, draft, 0)
}

// LoadSong returns the saved song draft, or a zero draft when absent.
func (d *DraftStore) LoadSong() SongDraft {
	var draft SongDraft
	if err := d.kv.Get(KeySongDraft, &draft); err != nil {
		return SongDraft{}
	}
	return draft
}

// ClearSong discards the song form draft.
func (d *DraftStore) ClearSong() error {
	return d.kv.Delete(KeySongDraft)
}

// SaveImage persists the image form draft.
func (d *DraftStore) SaveImage(draft ImageDraft) error {
	return d.kv.Put(KeyImageDraft, draft, 0)
}

// LoadImage returns the saved image draft, or a zero draft when absent.
func (d *DraftStore) LoadImage() ImageDraft {
	var draft ImageDraft
	if err := d.kv.Get(KeyImageDraft, &draft); err != nil {
		return ImageDraft{}
	}
	return draft
}

// ClearImage discards the image form draft.
func (d *DraftStore) ClearImage() error {
	return d.kv.Delete(KeyImageDraft)
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/duskfall/mstro/internal/api"
	"github.com/duskfall/mstro/internal/models"
	"github.com/duskfall/mstro/internal/poll"
	"github.com/duskfall/mstro/internal/shared"
)

// GenerateSongRequest is the song generation submission payload.
type GenerateSongRequest struct {
	Title        string `json:"title"`
	Lyrics       string `json:"lyrics,omitempty"`
	Style        string `json:"style"`
	Instrumental bool   `json:"instrumental,omitempty"`
}

// Validate checks the submission at the service boundary.
func (r *GenerateSongRequest) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}
	if r.Style == "" {
		return fmt.Errorf("%w: style is required", shared.ErrInvalidInput)
	}
	if r.Lyrics == "" && !r.Instrumental {
		return fmt.Errorf("%w: lyrics are required unless the song is instrumental", shared.ErrInvalidInput)
	}
	return nil
}

// SongService covers song generation and the song catalog.
type SongService struct {
	client      Client
	watcher     *poll.Watcher
	stemTimeout time.Duration
}

// NewSongService creates a SongService.
func NewSongService(client Client, watcher *poll.Watcher, stemTimeout time.Duration) *SongService {
	if stemTimeout <= 0 {
		stemTimeout = 120 * time.Second
	}
	return &SongService{client: client, watcher: watcher, stemTimeout: stemTimeout}
}

// Generate submits a song for generation. The backend responds immediately
// with the task and song identifiers; callers poll via [SongService.Await].
func (s *SongService) Generate(ctx context.Context, req *GenerateSongRequest) (*models.GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp models.GenerateResponse
	if err := s.client.PostJSON(ctx, api.SongGenerate(), req, &resp); err != nil {
		return nil, err
	}
	if err := resp.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedEntity, err)
	}
	return &resp, nil
}

// Status fetches the current job state for a generation task.
func (s *SongService) Status(ctx context.Context, taskID string) (*models.JobState, error) {
	if taskID == "" {
		return nil, fmt.Errorf("%w: task id", shared.ErrMissingArgument)
	}

	var state models.JobState
	if err := s.client.GetJSON(ctx, api.SongStatus(taskID), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Await polls the generation task to completion and returns the finished
// song, reloaded exactly once from the detail endpoint on SUCCESS.
func (s *SongService) Await(ctx context.Context, taskID, songID string, onUpdate poll.UpdateFunc) (*models.Song, error) {
	_, err := s.watcher.Watch(ctx, func(ctx context.Context) (*models.JobState, error) {
		return s.Status(ctx, taskID)
	}, onUpdate)
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, songID)
}

// List fetches a page of songs.
func (s *SongService) List(ctx context.Context, limit, offset int) (*models.Page[models.Song], error) {
	var page models.Page[models.Song]
	if err := s.client.GetJSON(ctx, api.SongList(limit, offset), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches a single song from the canonical detail endpoint.
func (s *SongService) Get(ctx context.Context, id string) (*models.Song, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}

	var song models.Song
	if err := s.client.GetJSON(ctx, api.SongDetail(id), &song); err != nil {
		return nil, err
	}
	if err := song.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedEntity, err)
	}
	return &song, nil
}

// Update applies a partial update and returns the updated song.
func (s *SongService) Update(ctx context.Context, id string, patch *models.SongPatch) (*models.Song, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}
	if patch == nil || (patch.Title == nil && patch.Lyrics == nil && patch.Style == nil) {
		return nil, fmt.Errorf("%w: empty patch", shared.ErrInvalidInput)
	}

	var song models.Song
	if err := s.client.PutJSON(ctx, api.SongUpdate(id), patch, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

// Rate records a 1-5 star rating for a song.
func (s *SongService) Rate(ctx context.Context, id string, rating int) error {
	if id == "" {
		return fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", shared.ErrInvalidInput)
	}

	return s.client.PostJSON(ctx, api.SongRating(id), map[string]int{"rating": rating}, nil)
}

// StemsResult lists the extracted stem tracks of a song.
type StemsResult struct {
	SongID string            `json:"song_id"`
	Stems  map[string]string `json:"stems"`
}

// Stems requests stem extraction for a song.
//
// The request is raced against a hard client-side timeout; exceeding it
// returns [shared.ErrJobTimeout], distinct from a server-reported failure.
func (s *SongService) Stems(ctx context.Context, id string) (*StemsResult, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}

	stemCtx, cancel := context.WithTimeout(ctx, s.stemTimeout)
	defer cancel()

	var result StemsResult
	if err := s.client.PostJSON(stemCtx, api.SongStems(id), nil, &result); err != nil {
		// Only the extraction window itself maps to a job timeout; a caller
		// cancellation or deadline propagates as-is.
		if stemCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: stem extraction exceeded %s", shared.ErrJobTimeout, s.stemTimeout)
		}
		return nil, err
	}
	return &result, nil
}

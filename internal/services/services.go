// Package services wraps the studio backend endpoints in typed operations.
//
// Services validate at the boundary, return decoded models, and never poll on
// their own: generation submissions hand back a task id and the caller drives
// the polling loop, keeping loading text out of this layer. On terminal
// SUCCESS the entity is reloaded from its canonical detail endpoint rather
// than decoded from the job result blob.
package services

import (
	"context"
	"time"

	"github.com/duskfall/mstro/internal/api"
	"github.com/duskfall/mstro/internal/poll"
	"github.com/duskfall/mstro/internal/shared"
)

// Client is the slice of the API client the services consume.
type Client interface {
	GetJSON(ctx context.Context, path string, out any) error
	PostJSON(ctx context.Context, path string, in, out any) error
	PutJSON(ctx context.Context, path string, in, out any) error
	DeleteJSON(ctx context.Context, path string, in, out any) error
}

// Studio bundles every backend service over one shared client and watcher.
type Studio struct {
	Songs     *SongService
	Images    *ImageService
	Templates *TemplateService
	Chat      *ChatService
	Billing   *BillingService
	Tasks     *TaskService
}

// NewStudio creates the full service bundle from configuration.
func NewStudio(client Client, cfg *shared.Config) *Studio {
	watcher := poll.NewWatcher(poll.Options{
		Base:       time.Duration(cfg.Polling.BaseMS) * time.Millisecond,
		Max:        time.Duration(cfg.Polling.MaxMS) * time.Millisecond,
		Multiplier: cfg.Polling.Multiplier,
	})
	stemTimeout := time.Duration(cfg.Generation.StemTimeoutSeconds) * time.Second

	return &Studio{
		Songs:     NewSongService(client, watcher, stemTimeout),
		Images:    NewImageService(client, watcher),
		Templates: NewTemplateService(client),
		Chat:      NewChatService(client),
		Billing:   NewBillingService(client),
		Tasks:     NewTaskService(client),
	}
}

var _ Client = (*api.Client)(nil)

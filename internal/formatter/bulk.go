package formatter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/duskfall/mstro/internal/models"
	"golang.org/x/time/rate"
)

// BulkDownloadOpts contains configuration for bulk media downloads.
type BulkDownloadOpts struct {
	OutputDir  string  // Base output directory (default: mstro_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 5)
	RateLimit  float64 // Downloads per second (default: 5)
}

// MediaDownloadResult records the outcome for one song.
type MediaDownloadResult struct {
	SongID  string
	Title   string
	File    string
	Success bool
	Error   error
}

// BulkDownloadResult summarizes a bulk media download.
type BulkDownloadResult struct {
	TotalSongs      int
	Succeeded       int
	Failed          int
	OutputDirectory string
	Results         []MediaDownloadResult
}

type downloadJob struct {
	song models.Song
}

// BulkDownload fetches the audio of multiple songs concurrently with rate
// limiting. Partial failures are recorded per song, not fatal.
func BulkDownload(ctx context.Context, songs []models.Song, opts BulkDownloadOpts) (*BulkDownloadResult, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("mstro_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkDownloadResult{
		TotalSongs:      len(songs),
		OutputDirectory: opts.OutputDir,
		Results:         make([]MediaDownloadResult, 0, len(songs)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan downloadJob, len(songs))
	results := make(chan MediaDownloadResult, len(songs))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go downloadWorker(ctx, &wg, jobs, results, opts.OutputDir)
	}

	go func() {
		defer close(jobs)
		for _, song := range songs {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				return
			}

			jobs <- downloadJob{song: song}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		if res.Success {
			result.Succeeded++
		} else {
			result.Failed++
		}
		result.Results = append(result.Results, res)
	}

	return result, nil
}

func downloadWorker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan downloadJob, results chan<- MediaDownloadResult, outputDir string) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- downloadOne(job.song, outputDir)
	}
}

func downloadOne(song models.Song, outputDir string) MediaDownloadResult {
	res := MediaDownloadResult{SongID: song.ID, Title: song.Title}

	if song.AudioURL == "" {
		res.Error = fmt.Errorf("song %s has no audio URL", song.ID)
		return res
	}

	data, err := DownloadMedia(song.AudioURL)
	if err != nil {
		res.Error = fmt.Errorf("failed to fetch audio: %w", err)
		return res
	}

	file := filepath.Join(outputDir, song.ID+".mp3")
	if err := os.WriteFile(file, data, 0644); err != nil {
		res.Error = fmt.Errorf("failed to write audio file: %w", err)
		return res
	}

	res.File = file
	res.Success = true
	return res
}

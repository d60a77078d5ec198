// package formatter exports song and image catalogs to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/duskfall/mstro/internal/models"
	"github.com/duskfall/mstro/internal/shared"
)

// SongsToCSV converts songs to CSV with columns: ID, Title, Style, Status, Duration, Rating
func SongsToCSV(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Style", "Status", "Duration", "Rating"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		record := []string{
			song.ID,
			song.Title,
			song.Style,
			string(song.Status),
			strconv.Itoa(song.Duration),
			strconv.Itoa(song.Rating),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ImagesToCSV converts images to CSV with columns: ID, Prompt, Status, Width, Height
func ImagesToCSV(images []models.Image) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Prompt", "Status", "Width", "Height"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, image := range images {
		record := []string{
			image.ID,
			image.Prompt,
			string(image.Status),
			strconv.Itoa(image.Width),
			strconv.Itoa(image.Height),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// SongToMarkdown renders one song as a Markdown document with optional cover image
func SongToMarkdown(song *models.Song, imageFilename string) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", song.Title))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	if song.Style != "" {
		buf.WriteString(fmt.Sprintf("**Style**: %s\n", song.Style))
	}
	buf.WriteString(fmt.Sprintf("**Status**: %s\n", song.Status))
	if song.Duration > 0 {
		buf.WriteString(fmt.Sprintf("**Duration**: %s\n", shared.FormatDuration(song.Duration)))
	}
	if song.Rating > 0 {
		buf.WriteString(fmt.Sprintf("**Rating**: %d/5\n", song.Rating))
	}
	buf.WriteString("\n")

	if song.Lyrics != "" {
		buf.WriteString("## Lyrics\n\n")
		buf.WriteString(song.Lyrics)
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// SongsToText converts songs to a plain text listing
func SongsToText(songs []models.Song) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(songs)))
	for i, song := range songs {
		stylePart := ""
		if song.Style != "" {
			stylePart = fmt.Sprintf(" (%s)", song.Style)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s [%s]\n", i+1, song.Title, stylePart, song.Status))
	}

	return buf.Bytes()
}

// DownloadMedia downloads a media file from the given URL and returns the raw bytes
func DownloadMedia(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download media: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read media data: %w", err)
	}

	return data, nil
}

// CSVExportResult contains the path of the file created by WriteSongCSVExport
type CSVExportResult struct {
	SongsFile string
}

// WriteSongCSVExport exports songs to a CSV file.
//
// Defaults to songs.csv as the filename.
func WriteSongCSVExport(songs []models.Song, filepath string) (*CSVExportResult, error) {
	if filepath == "" {
		filepath = "songs.csv"
	}

	csvData, err := SongsToCSV(songs)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(filepath, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	return &CSVExportResult{SongsFile: filepath}, nil
}

// MarkdownExportResult contains information about files created by WriteSongMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteSongMarkdownExport exports a song to Markdown format in a dedicated directory.
//
// Directory name defaults to the song ID. If the song carries a cover image
// URL the image is downloaded next to the document. Creates {dir}/README.md
// and optionally {dir}/cover.jpg
func WriteSongMarkdownExport(song *models.Song, outputDir string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = song.ID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if song.ImageURL != "" {
		imageData, err := DownloadMedia(song.ImageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download cover image: %v\n", err)
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := fmt.Sprintf("%s/%s", outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save cover image: %v\n", err)
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, SongToMarkdown(song, coverImageFilename), 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

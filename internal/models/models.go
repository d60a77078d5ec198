// package models defines the data model for the studio client
package models

import (
	"fmt"
	"time"
)

// Song represents a generated song as persisted by the backend.
type Song struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Lyrics       string    `json:"lyrics,omitempty"`
	Style        string    `json:"style,omitempty"`
	Status       JobStatus `json:"status"`
	AudioURL     string    `json:"audio_url,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	Duration     int       `json:"duration,omitempty"` // Duration in seconds
	Instrumental bool      `json:"instrumental,omitempty"`
	Rating       int       `json:"rating,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
	UpdatedAt    time.Time `json:"updated_at,omitzero"`
}

// Validate checks the song for the minimum shape the UI depends on.
func (s *Song) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("song is missing an id")
	}
	if s.Status != "" && !s.Status.Valid() {
		return fmt.Errorf("song %s has unknown status %q", s.ID, s.Status)
	}
	return nil
}

// SongPatch is the partial update payload for a song.
//
// Nil fields are omitted from the request so the backend leaves them untouched.
type SongPatch struct {
	Title  *string `json:"title,omitempty"`
	Lyrics *string `json:"lyrics,omitempty"`
	Style  *string `json:"style,omitempty"`
}

// Image represents a generated image.
type Image struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt,omitempty"`
	URL       string    `json:"url,omitempty"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
	Status    JobStatus `json:"status"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// Validate checks the image for the minimum shape the UI depends on.
func (i *Image) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("image is missing an id")
	}
	if i.Status != "" && !i.Status.Valid() {
		return fmt.Errorf("image %s has unknown status %q", i.ID, i.Status)
	}
	return nil
}

// ImagePatch is the partial update payload for an image.
type ImagePatch struct {
	Prompt *string `json:"prompt,omitempty"`
}

// PromptTemplate represents a server-stored prompt template.
type PromptTemplate struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Name     string `json:"name"`
	Content  string `json:"content"`
}

// Validate checks the template for the minimum shape the UI depends on.
func (p *PromptTemplate) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("template is missing an id")
	}
	return nil
}

// User represents the authenticated account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Validate checks the user record.
func (u *User) Validate() error {
	if u.ID == "" || u.Email == "" {
		return fmt.Errorf("user record is missing id or email")
	}
	return nil
}

// BillingInfo summarizes account credit.
type BillingInfo struct {
	Plan             string `json:"plan"`
	CreditsRemaining int    `json:"credits_remaining"`
	CreditsUsed      int    `json:"credits_used"`
}

// TaskInfo is a diagnostic row from the backend task registry.
type TaskInfo struct {
	TaskID    string    `json:"task_id"`
	Kind      string    `json:"kind"`
	Status    JobStatus `json:"status"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Pagination describes the position of a list page within the full result set.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// Page is the paginated list envelope returned by list endpoints.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

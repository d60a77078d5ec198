package models

import (
	"encoding/json"
	"fmt"
)

// JobStatus enumerates the lifecycle states of a server-side generation job.
type JobStatus string

const (
	StatusPending  JobStatus = "PENDING"
	StatusProgress JobStatus = "PROGRESS"
	StatusSuccess  JobStatus = "SUCCESS"
	StatusFailure  JobStatus = "FAILURE"
)

// IsTerminal reports whether the status ends the polling loop.
//
// Once a terminal status has been observed no further status fetches may be
// issued for that task.
func (s JobStatus) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailure
}

// Valid reports whether the status is one of the known lifecycle states.
func (s JobStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProgress, StatusSuccess, StatusFailure:
		return true
	}
	return false
}

// JobProgress carries the nested progress payload of a running job.
//
// Stage is an internal backend keyword (e.g. "queue_wait", "model_start");
// Detail is free-form text. Both are optional.
type JobProgress struct {
	Stage   string `json:"stage,omitempty"`
	Detail  string `json:"detail,omitempty"`
	Percent int    `json:"percent,omitempty"`
}

// JobState is the status polling payload for a generation task.
type JobState struct {
	TaskID   string          `json:"task_id"`
	Status   JobStatus       `json:"status"`
	Progress *JobProgress    `json:"progress,omitempty"`
	Result   json.RawMessage `json:"result,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Validate checks that the job state carries a known status.
func (j *JobState) Validate() error {
	if !j.Status.Valid() {
		return fmt.Errorf("unknown job status %q", j.Status)
	}
	return nil
}

// GenerateResponse is returned by generation submissions.
//
// The backend replies immediately with a task identifier and, for songs and
// images, the identifier of the entity being generated.
type GenerateResponse struct {
	TaskID  string `json:"task_id"`
	SongID  string `json:"song_id,omitempty"`
	ImageID string `json:"id,omitempty"`
}

// Validate checks that a task identifier is present.
func (g *GenerateResponse) Validate() error {
	if g.TaskID == "" {
		return fmt.Errorf("missing task_id in generation response")
	}
	return nil
}

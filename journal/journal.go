package journal

import (
	"errors"
	"fmt"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Run status values.
const (
	StatusCompleted = "completed"
	StatusEmpty     = "empty"
	StatusFailed    = "failed"
)

// ErrRunNotFound indicates no record exists for a run ID.
var ErrRunNotFound = errors.New("run not found")

// FileRecord is one output file written during a run.
type FileRecord struct {
	// Path is the output path relative to the agent's output directory.
	Path string `json:"path"`

	// Sources lists the hierarchy levels that contributed, lowest
	// priority first.
	Sources []string `json:"sources"`

	// Bytes is the size of the written file.
	Bytes int `json:"bytes"`
}

// Run is the journal record of one merge run.
type Run struct {
	ID          string       `json:"id"`
	Agent       string       `json:"agent"`
	StartedAt   time.Time    `json:"started_at"`
	CompletedAt time.Time    `json:"completed_at"`
	Status      string       `json:"status"`
	Files       []FileRecord `json:"files,omitempty"`
	Warnings    int          `json:"warnings,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// NewRunID generates a unique run identifier.
func NewRunID() (string, error) {
	id, err := nanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate run ID: %w", err)
	}
	return "run_" + id, nil
}

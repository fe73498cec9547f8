package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"linkedin-extractor/internal/models"
)

// ResultLine is one line of the JSON-lines output file
type ResultLine struct {
	URL         string                `json:"url"`
	RunID       string                `json:"run_id,omitempty"`
	ExtractedAt time.Time             `json:"extracted_at"`
	Profile     *models.ProfileRecord `json:"profile"`
}

// ResultWriter appends extracted profiles to a JSON-lines file. It is safe
// for concurrent use.
type ResultWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
}

// NewResultWriter opens path in append mode, creating parent directories
func NewResultWriter(path string) (*ResultWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &ResultWriter{file: file, writer: bufio.NewWriter(file)}, nil
}

// Write appends one line and syncs it to disk
func (rw *ResultWriter) Write(line ResultLine) error {
	b, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	rw.mu.Lock()
	defer rw.mu.Unlock()

	if _, err := rw.writer.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("failed to write to output file: %w", err)
	}
	if err := rw.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush output file: %w", err)
	}
	// Sync so a crash mid-batch keeps every completed line
	if err := rw.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}
	return nil
}

// Close flushes and closes the file
func (rw *ResultWriter) Close() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.file == nil {
		return nil
	}
	flushErr := rw.writer.Flush()
	closeErr := rw.file.Close()
	rw.file = nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// Package gamelog supplies historical game records from external sources:
// a rate-limited HTTP API client and a local JSON file reader. The
// simulation core never touches these; all data is resolved before
// simulation begins.
package gamelog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/yourusername/runline/internal/models"
)

// Source fetches historical games for a date range.
type Source interface {
	FetchGameLogs(ctx context.Context, start, end time.Time) ([]models.GameLog, error)
	Name() string
}

// FileSource reads game logs from a local JSON file, the common path for
// offline backtests.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name identifies the source in logs.
func (f *FileSource) Name() string { return "file:" + f.path }

// FetchGameLogs loads and filters the file by date range.
func (f *FileSource) FetchGameLogs(_ context.Context, start, end time.Time) ([]models.GameLog, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game log file: %w", err)
	}
	var all []models.GameLog
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to parse game log file: %w", err)
	}

	games := make([]models.GameLog, 0, len(all))
	for _, g := range all {
		if g.GameDate.Before(start) || g.GameDate.After(end) {
			continue
		}
		games = append(games, g)
	}
	return games, nil
}

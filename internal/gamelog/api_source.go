package gamelog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/runline/internal/models"
)

// APISource fetches game logs from a league schedule/results API. The wire
// format mirrors the models.GameLog JSON shape.
type APISource struct {
	baseURL string
	apiKey  string
	client  *RateLimitedHTTPClient
	logger  *logrus.Logger
}

// NewAPISource creates an HTTP-backed game-log source.
func NewAPISource(baseURL, apiKey string, client *RateLimitedHTTPClient, logger *logrus.Logger) *APISource {
	if logger == nil {
		logger = logrus.New()
	}
	return &APISource{baseURL: baseURL, apiKey: apiKey, client: client, logger: logger}
}

// Name identifies the source in logs.
func (s *APISource) Name() string { return "api:" + s.baseURL }

// FetchGameLogs pages through the results endpoint for the date range.
func (s *APISource) FetchGameLogs(ctx context.Context, start, end time.Time) ([]models.GameLog, error) {
	endpoint, err := url.Parse(s.baseURL + "/v1/games")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := endpoint.Query()
	q.Set("start_date", start.Format("2006-01-02"))
	q.Set("end_date", end.Format("2006-01-02"))
	q.Set("status", "final")
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("game log request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("game log API returned %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Games []models.GameLog `json:"games"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode game log response: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"source": s.Name(),
		"games":  len(payload.Games),
		"start":  start.Format("2006-01-02"),
		"end":    end.Format("2006-01-02"),
	}).Info("Fetched game logs")
	return payload.Games, nil
}

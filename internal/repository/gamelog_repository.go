// Package repository implements Postgres-backed stores for game logs and
// player profiles.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/runline/internal/database"
	"github.com/yourusername/runline/internal/models"
)

// GameLogRepository persists and retrieves historical games.
type GameLogRepository interface {
	Upsert(ctx context.Context, game *models.GameLog) error
	GetByDateRange(ctx context.Context, start, end time.Time) ([]models.GameLog, error)
}

// PostgresGameLogRepository implements GameLogRepository for PostgreSQL
type PostgresGameLogRepository struct {
	db *database.DB
}

// NewPostgresGameLogRepository creates a new game-log repository
func NewPostgresGameLogRepository(db *database.DB) *PostgresGameLogRepository {
	return &PostgresGameLogRepository{db: db}
}

// Upsert inserts a game log, replacing any existing record for the same
// date and matchup.
func (r *PostgresGameLogRepository) Upsert(ctx context.Context, game *models.GameLog) error {
	if game.ID == uuid.Nil {
		game.ID = uuid.New()
	}
	query := `
		INSERT INTO game_logs (
			id, game_date, home_team, away_team, venue,
			home_score, away_score, closing_line,
			park_factor, temperature_f, wind_speed_mph, wind_direction, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (game_date, home_team, away_team) DO UPDATE SET
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			closing_line = EXCLUDED.closing_line
	`
	_, err := r.db.GetPool().Exec(ctx, query,
		game.ID, game.GameDate, game.HomeTeam, game.AwayTeam, game.Venue,
		game.HomeScore, game.AwayScore, game.ClosingLine,
		game.ParkFactor, game.TemperatureF, game.WindSpeedMPH, game.WindDirection,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert game log: %w", err)
	}
	return nil
}

// GetByDateRange retrieves game logs ordered by date.
func (r *PostgresGameLogRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]models.GameLog, error) {
	query := `
		SELECT id, game_date, home_team, away_team, venue,
		       home_score, away_score, closing_line,
		       park_factor, temperature_f, wind_speed_mph, wind_direction, created_at
		FROM game_logs
		WHERE game_date >= $1 AND game_date <= $2
		ORDER BY game_date ASC
	`
	rows, err := r.db.GetPool().Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query game logs: %w", err)
	}
	defer rows.Close()

	games := []models.GameLog{}
	for rows.Next() {
		var g models.GameLog
		if err := rows.Scan(
			&g.ID, &g.GameDate, &g.HomeTeam, &g.AwayTeam, &g.Venue,
			&g.HomeScore, &g.AwayScore, &g.ClosingLine,
			&g.ParkFactor, &g.TemperatureF, &g.WindSpeedMPH, &g.WindDirection, &g.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game log: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

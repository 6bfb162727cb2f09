package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/runline/internal/database"
	"github.com/yourusername/runline/internal/models"
	"github.com/yourusername/runline/internal/profile"
)

// PostgresProfileStore implements profile.Store over Postgres. Per the
// simulator's contract, unknown teams resolve to neutral profiles rather
// than errors; only infrastructure failures propagate.
type PostgresProfileStore struct {
	db *database.DB
}

// NewPostgresProfileStore creates a profile store backed by Postgres.
func NewPostgresProfileStore(db *database.DB) *PostgresProfileStore {
	return &PostgresProfileStore{db: db}
}

// Lineup loads a team's nine-slot batting order. Teams with no stored
// lineup get a neutral one; partial lineups are padded with neutral batters.
func (s *PostgresProfileStore) Lineup(ctx context.Context, team string) (models.Lineup, error) {
	query := `
		SELECT name, team, ops, iso, babip, k_rate, bb_rate, handedness, plate_appearances
		FROM batter_profiles
		WHERE team = $1
		ORDER BY lineup_slot ASC
		LIMIT 9
	`
	rows, err := s.db.GetPool().Query(ctx, query, team)
	if err != nil {
		return models.Lineup{}, fmt.Errorf("failed to query lineup: %w", err)
	}
	defer rows.Close()

	lineup := models.Lineup{Team: team}
	for rows.Next() {
		var b models.BatterProfile
		if err := rows.Scan(
			&b.Name, &b.Team, &b.OPS, &b.ISO, &b.BABIP,
			&b.KRate, &b.BBRate, &b.Handedness, &b.PlateAppearances,
		); err != nil {
			return models.Lineup{}, fmt.Errorf("failed to scan batter profile: %w", err)
		}
		lineup.Batters = append(lineup.Batters, b)
	}
	if err := rows.Err(); err != nil {
		return models.Lineup{}, err
	}

	for len(lineup.Batters) < 9 {
		lineup.Batters = append(lineup.Batters, profile.NeutralBatter(team+"_unknown", team))
	}
	return lineup, nil
}

// StartingPitcher loads a team's probable starter, falling back to a
// neutral pitcher when none is stored.
func (s *PostgresProfileStore) StartingPitcher(ctx context.Context, team string) (models.PitcherProfile, error) {
	query := `
		SELECT name, team, era, whip, k_rate, bb_rate, handedness, sample_size
		FROM pitcher_profiles
		WHERE team = $1 AND is_probable_starter
		LIMIT 1
	`
	var p models.PitcherProfile
	err := s.db.GetPool().QueryRow(ctx, query, team).Scan(
		&p.Name, &p.Team, &p.ERA, &p.WHIP, &p.KRate, &p.BBRate, &p.Handedness, &p.SampleSize,
	)
	if err == pgx.ErrNoRows {
		return profile.NeutralPitcher(team+"_starter", team), nil
	}
	if err != nil {
		return models.PitcherProfile{}, fmt.Errorf("failed to query starting pitcher: %w", err)
	}
	return p, nil
}

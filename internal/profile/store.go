package profile

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/yourusername/runline/internal/models"
)

// Store resolves profiles and lineups for the simulator. Implementations are
// read-only from the simulator's point of view; the simulator never mutates
// what it reads. Unknown entities resolve to neutral profiles, never errors.
type Store interface {
	Lineup(ctx context.Context, team string) (models.Lineup, error)
	StartingPitcher(ctx context.Context, team string) (models.PitcherProfile, error)
}

// StaticStore is an in-memory Store seeded from resolved data, used for
// single predictions and tests.
type StaticStore struct {
	lineups  map[string]models.Lineup
	pitchers map[string]models.PitcherProfile
}

// NewStaticStore builds an empty static store.
func NewStaticStore() *StaticStore {
	return &StaticStore{
		lineups:  make(map[string]models.Lineup),
		pitchers: make(map[string]models.PitcherProfile),
	}
}

// SetLineup registers a lineup for a team.
func (s *StaticStore) SetLineup(team string, lineup models.Lineup) {
	s.lineups[team] = lineup
}

// SetStartingPitcher registers a starter for a team.
func (s *StaticStore) SetStartingPitcher(team string, p models.PitcherProfile) {
	s.pitchers[team] = p
}

// Lineup returns the registered lineup or a neutral one for unknown teams.
func (s *StaticStore) Lineup(_ context.Context, team string) (models.Lineup, error) {
	if lineup, ok := s.lineups[team]; ok {
		return lineup, nil
	}
	return NeutralLineup(team), nil
}

// StartingPitcher returns the registered starter or a neutral one.
func (s *StaticStore) StartingPitcher(_ context.Context, team string) (models.PitcherProfile, error) {
	if p, ok := s.pitchers[team]; ok {
		return p, nil
	}
	return NeutralPitcher(team+"_starter", team), nil
}

// CachedStore decorates another Store with a TTL cache so profiles resolved
// for one prediction are reused across requests for the same entities.
type CachedStore struct {
	inner Store
	cache *gocache.Cache
}

// NewCachedStore wraps a store with the given TTL.
func NewCachedStore(inner Store, ttl time.Duration) *CachedStore {
	return &CachedStore{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Lineup resolves through the cache.
func (c *CachedStore) Lineup(ctx context.Context, team string) (models.Lineup, error) {
	key := fmt.Sprintf("lineup:%s", team)
	if v, ok := c.cache.Get(key); ok {
		return v.(models.Lineup), nil
	}
	lineup, err := c.inner.Lineup(ctx, team)
	if err != nil {
		return models.Lineup{}, err
	}
	c.cache.SetDefault(key, lineup)
	return lineup, nil
}

// StartingPitcher resolves through the cache.
func (c *CachedStore) StartingPitcher(ctx context.Context, team string) (models.PitcherProfile, error) {
	key := fmt.Sprintf("pitcher:%s", team)
	if v, ok := c.cache.Get(key); ok {
		return v.(models.PitcherProfile), nil
	}
	p, err := c.inner.StartingPitcher(ctx, team)
	if err != nil {
		return models.PitcherProfile{}, err
	}
	c.cache.SetDefault(key, p)
	return p, nil
}

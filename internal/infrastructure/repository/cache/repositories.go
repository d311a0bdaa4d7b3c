package cache

import (
	"context"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	basecache "github.com/riskibarqy/fantasy-cricket/internal/platform/cache"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
)

// LeagueRepository is a read-through cache over league storage. Loads run
// behind the breaker so a failing store is not hammered by cache misses.
type LeagueRepository struct {
	next    league.Repository
	cache   *basecache.Store
	breaker *resilience.CircuitBreaker
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store, breaker *resilience.CircuitBreaker) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache, breaker: breaker}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	items, err := basecache.Fetch(ctx, r.cache, "league:list", func(ctx context.Context) ([]league.League, error) {
		var items []league.League
		err := r.breaker.Execute(ctx, func(ctx context.Context) error {
			var err error
			items, err = r.next.List(ctx)
			return err
		})
		return items, err
	})
	if err != nil {
		return nil, err
	}
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	cached, err := basecache.Fetch(ctx, r.cache, "league:id:"+leagueID, func(ctx context.Context) (lookup[league.League], error) {
		var out lookup[league.League]
		err := r.breaker.Execute(ctx, func(ctx context.Context) error {
			var err error
			out.value, out.exists, err = r.next.GetByID(ctx, leagueID)
			return err
		})
		return out, err
	})
	if err != nil {
		return league.League{}, false, err
	}
	return cached.value, cached.exists, nil
}

type lookup[T any] struct {
	value  T
	exists bool
}

// PlayerRepository caches league pool listings. Point reads go to storage so
// transfers always stamp the latest pool points.
type PlayerRepository struct {
	next    player.Repository
	cache   *basecache.Store
	breaker *resilience.CircuitBreaker
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store, breaker *resilience.CircuitBreaker) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache, breaker: breaker}
}

func playerListKey(leagueID string) string {
	return "player:list:" + leagueID
}

func (r *PlayerRepository) ListByLeague(ctx context.Context, leagueID string) ([]player.Player, error) {
	items, err := basecache.Fetch(ctx, r.cache, playerListKey(leagueID), func(ctx context.Context) ([]player.Player, error) {
		var items []player.Player
		err := r.breaker.Execute(ctx, func(ctx context.Context) error {
			var err error
			items, err = r.next.ListByLeague(ctx, leagueID)
			return err
		})
		return items, err
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, leagueID string, playerIDs []string) ([]player.Player, error) {
	var items []player.Player
	err := r.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		items, err = r.next.GetByIDs(ctx, leagueID, playerIDs)
		return err
	})
	return items, err
}

func (r *PlayerRepository) GetCurrentPoints(ctx context.Context, leagueID, playerID string) (float64, bool, error) {
	var (
		points float64
		exists bool
	)
	err := r.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		points, exists, err = r.next.GetCurrentPoints(ctx, leagueID, playerID)
		return err
	})
	return points, exists, err
}

func (r *PlayerRepository) UpdatePoints(ctx context.Context, leagueID string, updates []player.PointsUpdate) error {
	err := r.breaker.Execute(ctx, func(ctx context.Context) error {
		return r.next.UpdatePoints(ctx, leagueID, updates)
	})
	r.cache.Delete(ctx, playerListKey(leagueID))
	return err
}

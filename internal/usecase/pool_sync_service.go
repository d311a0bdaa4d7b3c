package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
	"github.com/sourcegraph/conc/pool"
)

type ApplyPoolUpdatesInput struct {
	LeagueID string
	Updates  []player.PointsUpdate
}

type PoolSyncResult struct {
	LeagueID       string
	PlayersUpdated int
	SquadsTouched  int
	SquadsUpdated  int
	FailedSquadIDs []string
}

// PoolSyncService ingests pool-point feeds. Only the current Points of squad
// entries move; joining and role baselines stay as recorded.
type PoolSyncService struct {
	leagueRepo league.Repository
	playerRepo player.Repository
	squadRepo  fantasy.Repository
	locks      *resilience.KeyedMutex
	logger     *logging.Logger
	maxWorkers int
}

func NewPoolSyncService(
	leagueRepo league.Repository,
	playerRepo player.Repository,
	squadRepo fantasy.Repository,
	locks *resilience.KeyedMutex,
	logger *logging.Logger,
	maxWorkers int,
) *PoolSyncService {
	return &PoolSyncService{
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		squadRepo:  squadRepo,
		locks:      orNewLocks(locks),
		logger:     logging.OrDefault(logger),
		maxWorkers: maxWorkers,
	}
}

func (s *PoolSyncService) ApplyPoolUpdates(ctx context.Context, input ApplyPoolUpdatesInput) (PoolSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolSyncService.ApplyPoolUpdates")
	defer span.End()

	points, updates, err := normalizePointsUpdates(input.Updates)
	if err != nil {
		return PoolSyncResult{}, err
	}
	l, err := loadLeague(ctx, s.leagueRepo, input.LeagueID)
	if err != nil {
		return PoolSyncResult{}, err
	}

	if err := s.playerRepo.UpdatePoints(ctx, l.ID, updates); err != nil {
		return PoolSyncResult{}, wrapRepoErr("update pool points", err)
	}

	squads, err := s.squadRepo.ListByLeague(ctx, l.ID)
	if err != nil {
		return PoolSyncResult{}, wrapRepoErr("list squads by league", err)
	}

	result := PoolSyncResult{LeagueID: l.ID, PlayersUpdated: len(updates)}
	var (
		mu      sync.Mutex
		updated int
		failed  []string
	)

	p := pool.New().WithMaxGoroutines(normalizeWorkerCount(s.maxWorkers, len(squads))).WithContext(ctx)
	for _, squad := range squads {
		if !holdsAny(squad, points) {
			continue
		}
		result.SquadsTouched++
		squadID := squad.ID
		p.Go(func(ctx context.Context) error {
			changed, err := s.refreshSquad(ctx, squadID, l.SquadSize, points)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed = append(failed, squadID)
				return fmt.Errorf("squad=%s: %w", squadID, err)
			}
			if changed {
				updated++
			}
			return nil
		})
	}
	waitErr := p.Wait()

	sort.Strings(failed)
	result.SquadsUpdated = updated
	result.FailedSquadIDs = failed
	if waitErr != nil {
		s.logger.WarnContext(ctx, "pool points sync had squad failures",
			"league_id", l.ID,
			"failed", len(failed),
			"error", waitErr,
		)
	}

	s.logger.InfoContext(ctx, "pool points synced",
		"league_id", l.ID,
		"players", result.PlayersUpdated,
		"squads_touched", result.SquadsTouched,
		"squads_updated", result.SquadsUpdated,
		"squads_failed", len(result.FailedSquadIDs),
	)
	return result, nil
}

func (s *PoolSyncService) refreshSquad(ctx context.Context, squadID string, squadSize int, points map[string]float64) (bool, error) {
	unlock, err := lockSquad(ctx, s.locks, squadID)
	if err != nil {
		return false, err
	}
	defer unlock()

	squad, err := loadSquad(ctx, s.squadRepo, squadID)
	if err != nil {
		return false, err
	}

	changed := false
	for i := range squad.Players {
		if v, ok := points[squad.Players[i].PlayerID]; ok && squad.Players[i].Points != v {
			squad.Players[i].Points = v
			changed = true
		}
	}
	if !changed {
		return false, nil
	}

	if _, err := s.squadRepo.Save(ctx, withLedger(squad, squadSize)); err != nil {
		return false, wrapRepoErr("save synced squad", err)
	}
	return true, nil
}

func holdsAny(squad fantasy.Squad, points map[string]float64) bool {
	for _, entry := range squad.Players {
		if _, ok := points[entry.PlayerID]; ok {
			return true
		}
	}
	return false
}

func normalizePointsUpdates(updates []player.PointsUpdate) (map[string]float64, []player.PointsUpdate, error) {
	if len(updates) == 0 {
		return nil, nil, fmt.Errorf("%w: at least one points update is required", ErrInvalidInput)
	}

	points := make(map[string]float64, len(updates))
	out := make([]player.PointsUpdate, 0, len(updates))
	for _, u := range updates {
		id := strings.TrimSpace(u.PlayerID)
		if id == "" {
			return nil, nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
		}
		if math.IsNaN(u.Points) || math.IsInf(u.Points, 0) {
			return nil, nil, fmt.Errorf("%w: points for player=%s must be finite", ErrInvalidInput, id)
		}
		if _, dup := points[id]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate update for player=%s", ErrInvalidInput, id)
		}
		points[id] = u.Points
		out = append(out, player.PointsUpdate{PlayerID: id, Points: u.Points})
	}
	return points, out, nil
}

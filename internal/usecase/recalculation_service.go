package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
	"github.com/shopspring/decimal"
)

const (
	defaultRecalcWorkers = 4
	maxRecalcWorkers     = 32

	recalcStatusUpdated   = "updated"
	recalcStatusUnchanged = "unchanged"
	recalcStatusFailed    = "failed"
)

type SquadRecalculation struct {
	SquadID string
	Before  fantasy.SquadPoints
	After   fantasy.SquadPoints
	Status  string
	Message string
}

type LeagueRecalculation struct {
	LeagueID       string
	SquadCount     int
	WorkerCount    int
	UpdatedCount   int
	UnchangedCount int
	FailedCount    int
	Squads         []SquadRecalculation
}

type AdjustBankedPointsInput struct {
	SquadID string
	Delta   float64
	Reason  string
}

// RecalculationService rebuilds stored totals from the ledger and records
// historical corrections as banked points.
type RecalculationService struct {
	leagueRepo league.Repository
	squadRepo  fantasy.Repository
	locks      *resilience.KeyedMutex
	logger     *logging.Logger
	maxWorkers int
}

func NewRecalculationService(
	leagueRepo league.Repository,
	squadRepo fantasy.Repository,
	locks *resilience.KeyedMutex,
	logger *logging.Logger,
	maxWorkers int,
) *RecalculationService {
	return &RecalculationService{
		leagueRepo: leagueRepo,
		squadRepo:  squadRepo,
		locks:      orNewLocks(locks),
		logger:     logging.OrDefault(logger),
		maxWorkers: maxWorkers,
	}
}

func (s *RecalculationService) RecalculateSquad(ctx context.Context, squadID string) (SquadRecalculation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalculationService.RecalculateSquad")
	defer span.End()

	squad, err := loadSquad(ctx, s.squadRepo, squadID)
	if err != nil {
		return SquadRecalculation{}, err
	}
	l, err := loadLeague(ctx, s.leagueRepo, squad.LeagueID)
	if err != nil {
		return SquadRecalculation{}, err
	}

	row, err := s.recalculate(ctx, squad.ID, l.SquadSize)
	if err != nil {
		return SquadRecalculation{}, err
	}

	s.logger.InfoContext(ctx, "squad recalculated",
		"squad_id", row.SquadID,
		"status", row.Status,
		"before_total", row.Before.TotalPoints,
		"after_total", row.After.TotalPoints,
	)
	return row, nil
}

// RecalculateLeague repairs every squad of a league on a bounded worker pool.
// Per-squad failures are reported in the result and do not stop the run.
func (s *RecalculationService) RecalculateLeague(ctx context.Context, leagueID string) (LeagueRecalculation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalculationService.RecalculateLeague")
	defer span.End()

	l, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return LeagueRecalculation{}, err
	}
	squads, err := s.squadRepo.ListByLeague(ctx, l.ID)
	if err != nil {
		return LeagueRecalculation{}, wrapRepoErr("list squads by league", err)
	}

	workerCount := normalizeWorkerCount(s.maxWorkers, len(squads))
	result := LeagueRecalculation{
		LeagueID:    l.ID,
		SquadCount:  len(squads),
		WorkerCount: workerCount,
		Squads:      make([]SquadRecalculation, 0, len(squads)),
	}
	if len(squads) == 0 {
		return result, nil
	}

	var updatedCount atomic.Int32
	var unchangedCount atomic.Int32
	var failedCount atomic.Int32
	results := make(chan SquadRecalculation, len(squads))

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return LeagueRecalculation{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, squad := range squads {
		squadID := squad.ID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row, err := s.recalculate(ctx, squadID, l.SquadSize)
			if err != nil {
				row = SquadRecalculation{SquadID: squadID, Status: recalcStatusFailed, Message: err.Error()}
			}
			switch row.Status {
			case recalcStatusUpdated:
				updatedCount.Add(1)
			case recalcStatusUnchanged:
				unchangedCount.Add(1)
			default:
				failedCount.Add(1)
			}
			results <- row
		}); err != nil {
			workers.Done()
			return LeagueRecalculation{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Squads = append(result.Squads, row)
	}
	sort.Slice(result.Squads, func(i, j int) bool {
		return result.Squads[i].SquadID < result.Squads[j].SquadID
	})

	result.UpdatedCount = int(updatedCount.Load())
	result.UnchangedCount = int(unchangedCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "league recalculated",
		"league_id", result.LeagueID,
		"squads", result.SquadCount,
		"workers", result.WorkerCount,
		"updated", result.UpdatedCount,
		"unchanged", result.UnchangedCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

func (s *RecalculationService) recalculate(ctx context.Context, squadID string, squadSize int) (SquadRecalculation, error) {
	unlock, err := lockSquad(ctx, s.locks, squadID)
	if err != nil {
		return SquadRecalculation{}, err
	}
	defer unlock()

	squad, err := loadSquad(ctx, s.squadRepo, squadID)
	if err != nil {
		return SquadRecalculation{}, err
	}

	row := SquadRecalculation{
		SquadID: squad.ID,
		Before:  squad.Points,
		After:   fantasy.ComputeSquadPoints(squad, squadSize),
		Status:  recalcStatusUnchanged,
	}
	if row.After == row.Before {
		return row, nil
	}

	squad.Points = row.After
	if _, err := s.squadRepo.Save(ctx, squad); err != nil {
		return SquadRecalculation{}, wrapRepoErr("save recalculated squad", err)
	}
	row.Status = recalcStatusUpdated
	return row, nil
}

// AdjustBankedPoints records a historical correction. Banked points never
// drop below zero.
func (s *RecalculationService) AdjustBankedPoints(ctx context.Context, input AdjustBankedPointsInput) (fantasy.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalculationService.AdjustBankedPoints")
	defer span.End()

	input.Reason = strings.TrimSpace(input.Reason)
	if input.Reason == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: adjustment reason is required", ErrInvalidInput)
	}
	if math.IsNaN(input.Delta) || math.IsInf(input.Delta, 0) {
		return fantasy.Squad{}, fmt.Errorf("%w: adjustment delta must be a finite number", ErrInvalidInput)
	}

	unlock, err := lockSquad(ctx, s.locks, input.SquadID)
	if err != nil {
		return fantasy.Squad{}, err
	}
	defer unlock()

	squad, err := loadSquad(ctx, s.squadRepo, input.SquadID)
	if err != nil {
		return fantasy.Squad{}, err
	}
	l, err := loadLeague(ctx, s.leagueRepo, squad.LeagueID)
	if err != nil {
		return fantasy.Squad{}, err
	}

	before := squad.BankedPoints
	banked := decimal.NewFromFloat(before).Add(decimal.NewFromFloat(input.Delta))
	if banked.IsNegative() {
		banked = decimal.Zero
	}
	squad.BankedPoints = banked.InexactFloat64()

	saved, err := s.squadRepo.Save(ctx, withLedger(squad, l.SquadSize))
	if err != nil {
		return fantasy.Squad{}, wrapRepoErr("save banked points", err)
	}

	s.logger.InfoContext(ctx, "banked points adjusted",
		"squad_id", saved.ID,
		"delta", input.Delta,
		"before", before,
		"after", saved.BankedPoints,
		"reason", input.Reason,
	)
	return saved, nil
}

func normalizeWorkerCount(requested, tasks int) int {
	workers := requested
	if workers <= 0 {
		workers = defaultRecalcWorkers
	}
	if workers > maxRecalcWorkers {
		workers = maxRecalcWorkers
	}
	if tasks > 0 && workers > tasks {
		workers = tasks
	}
	if workers <= 0 {
		workers = 1
	}
	return workers
}

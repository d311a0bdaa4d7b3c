package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
)

func loadLeague(ctx context.Context, repo league.Repository, leagueID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, wrapRepoErr("get league", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return item, nil
}

func loadSquad(ctx context.Context, repo fantasy.Repository, squadID string) (fantasy.Squad, error) {
	squadID = strings.TrimSpace(squadID)
	if squadID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: squad id is required", ErrInvalidInput)
	}

	squad, exists, err := repo.GetByID(ctx, squadID)
	if err != nil {
		return fantasy.Squad{}, wrapRepoErr("get squad", err)
	}
	if !exists {
		return fantasy.Squad{}, fmt.Errorf("%w: squad=%s", ErrNotFound, squadID)
	}
	return squad, nil
}

func lockSquad(ctx context.Context, locks *resilience.KeyedMutex, squadID string) (func(), error) {
	unlock, err := locks.Lock(ctx, "squad:"+strings.TrimSpace(squadID))
	if err != nil {
		return nil, fmt.Errorf("lock squad=%s: %w", squadID, err)
	}
	return unlock, nil
}

func orNewLocks(locks *resilience.KeyedMutex) *resilience.KeyedMutex {
	if locks == nil {
		return &resilience.KeyedMutex{}
	}
	return locks
}

// withLedger returns squad with Points recomputed from its entries.
func withLedger(squad fantasy.Squad, squadSize int) fantasy.Squad {
	squad.Points = fantasy.ComputeSquadPoints(squad, squadSize)
	return squad
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
)

type PlayerService struct {
	leagueRepo league.Repository
	playerRepo player.Repository
}

func NewPlayerService(leagueRepo league.Repository, playerRepo player.Repository) *PlayerService {
	return &PlayerService{
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
	}
}

func (s *PlayerService) ListPlayersByLeague(ctx context.Context, leagueID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayersByLeague")
	defer span.End()

	l, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}

	players, err := s.playerRepo.ListByLeague(ctx, l.ID)
	if err != nil {
		return nil, wrapRepoErr("list players by league", err)
	}

	return players, nil
}

func (s *PlayerService) GetPlayerByLeagueAndID(ctx context.Context, leagueID, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayerByLeagueAndID")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	l, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return player.Player{}, err
	}

	items, err := s.playerRepo.GetByIDs(ctx, l.ID, []string{playerID})
	if err != nil {
		return player.Player{}, wrapRepoErr("get player by id", err)
	}
	if len(items) == 0 {
		return player.Player{}, fmt.Errorf("%w: player=%s league=%s", ErrNotFound, playerID, l.ID)
	}

	return items[0], nil
}

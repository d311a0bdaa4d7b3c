package usecase

import (
	"context"
	"sort"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
)

type Standing struct {
	Rank          int
	SquadID       string
	UserID        string
	SquadName     string
	TotalPoints   float64
	CaptainPoints float64
	BankedPoints  float64
}

type StandingsService struct {
	leagueRepo league.Repository
	squadRepo  fantasy.Repository
}

func NewStandingsService(leagueRepo league.Repository, squadRepo fantasy.Repository) *StandingsService {
	return &StandingsService{leagueRepo: leagueRepo, squadRepo: squadRepo}
}

// ListStandings ranks squads by ledger total. Equal totals share a dense rank;
// display order within a tie follows captain points then squad id.
func (s *StandingsService) ListStandings(ctx context.Context, leagueID string) ([]Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ListStandings")
	defer span.End()

	l, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}
	squads, err := s.squadRepo.ListByLeague(ctx, l.ID)
	if err != nil {
		return nil, wrapRepoErr("list squads by league", err)
	}

	out := make([]Standing, 0, len(squads))
	for _, squad := range squads {
		points := fantasy.ComputeSquadPoints(squad, l.SquadSize)
		out = append(out, Standing{
			SquadID:       squad.ID,
			UserID:        squad.UserID,
			SquadName:     squad.Name,
			TotalPoints:   points.TotalPoints,
			CaptainPoints: points.CaptainPoints,
			BankedPoints:  squad.BankedPoints,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		if out[i].CaptainPoints != out[j].CaptainPoints {
			return out[i].CaptainPoints > out[j].CaptainPoints
		}
		return out[i].SquadID < out[j].SquadID
	})

	// dense rank from total points order.
	currentRank := 0
	for i := range out {
		if i == 0 || out[i].TotalPoints != out[i-1].TotalPoints {
			currentRank++
		}
		out[i].Rank = currentRank
	}
	return out, nil
}

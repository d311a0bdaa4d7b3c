package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
)

type ReverseTransferInput struct {
	SquadID      string
	HistoryIndex int
}

// ReversalService is the admin path that undoes recorded transfers.
type ReversalService struct {
	leagueRepo league.Repository
	squadRepo  fantasy.Repository
	locks      *resilience.KeyedMutex
	logger     *logging.Logger
	now        func() time.Time
}

func NewReversalService(
	leagueRepo league.Repository,
	squadRepo fantasy.Repository,
	locks *resilience.KeyedMutex,
	logger *logging.Logger,
) *ReversalService {
	return &ReversalService{
		leagueRepo: leagueRepo,
		squadRepo:  squadRepo,
		locks:      orNewLocks(locks),
		logger:     logging.OrDefault(logger),
		now:        time.Now,
	}
}

func (s *ReversalService) Reverse(ctx context.Context, input ReverseTransferInput) (fantasy.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReversalService.Reverse")
	defer span.End()

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

	reversed, err := fantasy.ReverseTransfer(squad, input.HistoryIndex, l.SquadSize, s.now().UTC())
	if err != nil {
		kind, _ := fantasy.ReversalKind(err)
		s.logger.WarnContext(ctx, "transfer reversal refused",
			"squad_id", squad.ID,
			"history_index", input.HistoryIndex,
			"reason", string(kind),
			"error", err,
		)
		return fantasy.Squad{}, fmt.Errorf("reverse transfer: %w", err)
	}

	saved, err := s.squadRepo.Save(ctx, withLedger(reversed, l.SquadSize))
	if err != nil {
		return fantasy.Squad{}, wrapRepoErr("save squad after reversal", err)
	}

	s.logger.InfoContext(ctx, "transfer reversed",
		"squad_id", saved.ID,
		"history_index", input.HistoryIndex,
		"transfers_used", saved.TransfersUsed,
		"total_points", saved.Points.TotalPoints,
	)
	return saved, nil
}

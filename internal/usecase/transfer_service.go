package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
)

type SubmitTransferInput struct {
	SquadID          string
	TransferType     fantasy.TransferType
	ChangeType       fantasy.ChangeType
	PlayerOut        string
	PlayerIn         string
	NewCaptainID     string
	NewViceCaptainID string
	NewXFactorID     string
}

func (in SubmitTransferInput) request() fantasy.TransferRequest {
	return fantasy.TransferRequest{
		TransferType:     fantasy.TransferType(strings.TrimSpace(string(in.TransferType))),
		ChangeType:       fantasy.ChangeType(strings.TrimSpace(string(in.ChangeType))),
		PlayerOut:        strings.TrimSpace(in.PlayerOut),
		PlayerIn:         strings.TrimSpace(in.PlayerIn),
		NewCaptainID:     strings.TrimSpace(in.NewCaptainID),
		NewViceCaptainID: strings.TrimSpace(in.NewViceCaptainID),
		NewXFactorID:     strings.TrimSpace(in.NewXFactorID),
	}
}

// TransferResult is the saved squad plus the history entry the transfer added.
type TransferResult struct {
	Squad fantasy.Squad
	Entry fantasy.TransferHistoryEntry
}

type TransferService struct {
	leagueRepo league.Repository
	playerRepo player.Repository
	squadRepo  fantasy.Repository
	locks      *resilience.KeyedMutex
	logger     *logging.Logger
	now        func() time.Time
}

func NewTransferService(
	leagueRepo league.Repository,
	playerRepo player.Repository,
	squadRepo fantasy.Repository,
	locks *resilience.KeyedMutex,
	logger *logging.Logger,
) *TransferService {
	return &TransferService{
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		squadRepo:  squadRepo,
		locks:      orNewLocks(locks),
		logger:     logging.OrDefault(logger),
		now:        time.Now,
	}
}

// Submit validates and applies one transfer. A rejected transfer returns the
// validator's *fantasy.TransferError and leaves the stored squad untouched.
func (s *TransferService) Submit(ctx context.Context, input SubmitTransferInput) (TransferResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.Submit")
	defer span.End()

	unlock, err := lockSquad(ctx, s.locks, input.SquadID)
	if err != nil {
		return TransferResult{}, err
	}
	defer unlock()

	squad, err := loadSquad(ctx, s.squadRepo, input.SquadID)
	if err != nil {
		return TransferResult{}, err
	}
	l, err := loadLeague(ctx, s.leagueRepo, squad.LeagueID)
	if err != nil {
		return TransferResult{}, err
	}
	players, err := s.playerRepo.ListByLeague(ctx, l.ID)
	if err != nil {
		return TransferResult{}, wrapRepoErr("list player pool", err)
	}

	req := input.request()
	pool := fantasy.NewPlayerPool(players)
	if err := s.refreshStampPoints(ctx, l.ID, req, pool); err != nil {
		return TransferResult{}, err
	}
	approved, err := fantasy.ValidateTransfer(req, squad, l.TransferPolicy(), pool, s.now().UTC())
	if err != nil {
		kind, _ := fantasy.RejectionKind(err)
		s.logger.WarnContext(ctx, "transfer rejected",
			"squad_id", squad.ID,
			"transfer_type", string(req.TransferType),
			"change_type", string(req.ChangeType),
			"reason", string(kind),
			"error", err,
		)
		return TransferResult{}, fmt.Errorf("validate transfer: %w", err)
	}

	next := withLedger(fantasy.ApplyTransfer(squad, approved, l.SquadSize), l.SquadSize)
	saved, err := s.squadRepo.Save(ctx, next)
	if err != nil {
		return TransferResult{}, wrapRepoErr("save squad after transfer", err)
	}

	entry := saved.TransferHistory[len(saved.TransferHistory)-1]
	s.logger.InfoContext(ctx, "transfer applied",
		"squad_id", saved.ID,
		"transfer_type", string(entry.TransferType),
		"change_type", string(entry.ChangeType),
		"player_out", entry.PlayerOut,
		"player_in", entry.PlayerIn,
		"transfers_used", saved.TransfersUsed,
		"total_points", saved.Points.TotalPoints,
	)
	return TransferResult{Squad: saved, Entry: entry}, nil
}

// refreshStampPoints reads the live pool points of the player that will be
// stamped, so a stale pool listing never sets a baseline.
func (s *TransferService) refreshStampPoints(ctx context.Context, leagueID string, req fantasy.TransferRequest, pool fantasy.PlayerPool) error {
	target := req.PlayerIn
	if req.ChangeType == fantasy.ChangeTypeRoleReassignment {
		target = req.NewViceCaptainID
		if target == "" {
			target = req.NewXFactorID
		}
	}
	p, ok := pool[target]
	if target == "" || !ok {
		return nil
	}

	points, exists, err := s.playerRepo.GetCurrentPoints(ctx, leagueID, target)
	if err != nil {
		return wrapRepoErr("get current pool points", err)
	}
	if exists {
		p.Points = points
		pool[target] = p
	}
	return nil
}

func (s *TransferService) History(ctx context.Context, squadID string) ([]fantasy.TransferHistoryEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.History")
	defer span.End()

	squad, err := loadSquad(ctx, s.squadRepo, squadID)
	if err != nil {
		return nil, err
	}
	if squad.TransferHistory == nil {
		return []fantasy.TransferHistoryEntry{}, nil
	}
	return squad.TransferHistory, nil
}

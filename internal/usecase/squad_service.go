package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	idgen "github.com/riskibarqy/fantasy-cricket/internal/platform/id"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
)

// JoinLeagueInput creates the participant's empty squad for a league.
type JoinLeagueInput struct {
	UserID   string
	LeagueID string
	Name     string
}

// SelectSquadInput sets the initial main squad and its role holders.
type SelectSquadInput struct {
	SquadID       string
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
	XFactorID     string
}

// SquadPointsReport is the live ledger view of a squad.
type SquadPointsReport struct {
	SquadID      string
	LeagueID     string
	Points       fantasy.SquadPoints
	BankedPoints float64
	Players      []fantasy.PlayerContribution
}

type SquadService struct {
	leagueRepo league.Repository
	playerRepo player.Repository
	squadRepo  fantasy.Repository
	idGen      idgen.Generator
	locks      *resilience.KeyedMutex
	logger     *logging.Logger
	now        func() time.Time
}

func NewSquadService(
	leagueRepo league.Repository,
	playerRepo player.Repository,
	squadRepo fantasy.Repository,
	idGen idgen.Generator,
	locks *resilience.KeyedMutex,
	logger *logging.Logger,
) *SquadService {
	return &SquadService{
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		squadRepo:  squadRepo,
		idGen:      idGen,
		locks:      orNewLocks(locks),
		logger:     logging.OrDefault(logger),
		now:        time.Now,
	}
}

// JoinLeague returns the participant's existing squad for the league or
// creates an empty one.
func (s *SquadService) JoinLeague(ctx context.Context, input JoinLeagueInput) (fantasy.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.JoinLeague")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.Name = strings.TrimSpace(input.Name)
	if input.UserID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: squad name is required", ErrInvalidInput)
	}

	l, err := loadLeague(ctx, s.leagueRepo, input.LeagueID)
	if err != nil {
		return fantasy.Squad{}, err
	}

	existing, exists, err := s.squadRepo.GetByUserAndLeague(ctx, input.UserID, l.ID)
	if err != nil {
		return fantasy.Squad{}, wrapRepoErr("get existing squad", err)
	}
	if exists {
		return existing, nil
	}

	squadID, err := s.idGen.NewID()
	if err != nil {
		return fantasy.Squad{}, fmt.Errorf("generate squad id: %w", err)
	}

	now := s.now().UTC()
	squad := fantasy.Squad{
		ID:              squadID,
		UserID:          input.UserID,
		LeagueID:        l.ID,
		Name:            input.Name,
		Players:         []fantasy.PlayerEntry{},
		TransferHistory: []fantasy.TransferHistoryEntry{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := squad.ValidateBasic(); err != nil {
		return fantasy.Squad{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.squadRepo.Save(ctx, squad)
	if errors.Is(err, fantasy.ErrSquadVersionConflict) {
		// Lost a race with a concurrent join for the same user and league.
		existing, exists, getErr := s.squadRepo.GetByUserAndLeague(ctx, input.UserID, l.ID)
		if getErr == nil && exists {
			return existing, nil
		}
	}
	if err != nil {
		return fantasy.Squad{}, wrapRepoErr("save squad", err)
	}

	s.logger.InfoContext(ctx, "squad created",
		"squad_id", saved.ID,
		"user_id", saved.UserID,
		"league_id", saved.LeagueID,
	)
	return saved, nil
}

// SelectSquad sets the main squad and roles. It is only allowed before the
// squad records its first transfer.
func (s *SquadService) SelectSquad(ctx context.Context, input SelectSquadInput) (fantasy.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.SelectSquad")
	defer span.End()

	playerIDs, err := cleanPlayerIDs(input.PlayerIDs)
	if err != nil {
		return fantasy.Squad{}, err
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
	if len(squad.TransferHistory) > 0 {
		return fantasy.Squad{}, fmt.Errorf("%w: squad=%s already has transfer history, use transfers instead", ErrConflict, squad.ID)
	}

	l, err := loadLeague(ctx, s.leagueRepo, squad.LeagueID)
	if err != nil {
		return fantasy.Squad{}, err
	}

	players, err := s.playerRepo.GetByIDs(ctx, l.ID, playerIDs)
	if err != nil {
		return fantasy.Squad{}, wrapRepoErr("get players by ids", err)
	}
	pool := fantasy.NewPlayerPool(players)

	selection := fantasy.Selection{
		Picks:         make([]fantasy.SelectionPick, 0, len(playerIDs)),
		CaptainID:     strings.TrimSpace(input.CaptainID),
		ViceCaptainID: strings.TrimSpace(input.ViceCaptainID),
		XFactorID:     strings.TrimSpace(input.XFactorID),
	}
	for _, playerID := range playerIDs {
		p, ok := pool[playerID]
		if !ok {
			return fantasy.Squad{}, fmt.Errorf("%w: player id %s not found in league=%s", ErrInvalidInput, playerID, l.ID)
		}
		selection.Picks = append(selection.Picks, fantasy.SelectionPick{PlayerID: p.ID, TeamID: p.TeamID, Role: p.Role})
	}

	if err := fantasy.ValidateSelection(selection, fantasy.RulesForSquadSize(l.SquadSize)); err != nil {
		return fantasy.Squad{}, fmt.Errorf("%w: validate selection: %w", ErrInvalidInput, err)
	}

	next := squad.Clone()
	next.Players = make([]fantasy.PlayerEntry, 0, len(playerIDs))
	for _, pick := range selection.Picks {
		p := pool[pick.PlayerID]
		entry := fantasy.PlayerEntry{
			PlayerID:        p.ID,
			TeamID:          p.TeamID,
			Role:            p.Role,
			Points:          p.Points,
			PointsAtJoining: p.Points,
		}
		if p.ID == selection.CaptainID || p.ID == selection.ViceCaptainID || p.ID == selection.XFactorID {
			stamp := p.Points
			entry.PointsWhenRoleAssigned = &stamp
		}
		next.Players = append(next.Players, entry)
	}
	next.CaptainID = selection.CaptainID
	next.ViceCaptainID = selection.ViceCaptainID
	next.XFactorID = selection.XFactorID
	next.UpdatedAt = s.now().UTC()
	next = withLedger(next, l.SquadSize)

	saved, err := s.squadRepo.Save(ctx, next)
	if err != nil {
		return fantasy.Squad{}, wrapRepoErr("save squad selection", err)
	}

	s.logger.InfoContext(ctx, "squad selected",
		"squad_id", saved.ID,
		"league_id", saved.LeagueID,
		"captain_id", saved.CaptainID,
		"vice_captain_id", saved.ViceCaptainID,
		"x_factor_id", saved.XFactorID,
	)
	return saved, nil
}

func (s *SquadService) GetSquad(ctx context.Context, squadID string) (fantasy.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.GetSquad")
	defer span.End()

	return loadSquad(ctx, s.squadRepo, squadID)
}

func (s *SquadService) GetUserSquad(ctx context.Context, userID, leagueID string) (fantasy.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.GetUserSquad")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if leagueID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	squad, exists, err := s.squadRepo.GetByUserAndLeague(ctx, userID, leagueID)
	if err != nil {
		return fantasy.Squad{}, wrapRepoErr("get squad by user", err)
	}
	if !exists {
		return fantasy.Squad{}, fmt.Errorf("%w: squad for user=%s league=%s", ErrNotFound, userID, leagueID)
	}
	return squad, nil
}

// GetSquadPoints evaluates the ledger against the squad's current entries.
func (s *SquadService) GetSquadPoints(ctx context.Context, squadID string) (SquadPointsReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.GetSquadPoints")
	defer span.End()

	squad, err := loadSquad(ctx, s.squadRepo, squadID)
	if err != nil {
		return SquadPointsReport{}, err
	}
	l, err := loadLeague(ctx, s.leagueRepo, squad.LeagueID)
	if err != nil {
		return SquadPointsReport{}, err
	}

	return SquadPointsReport{
		SquadID:      squad.ID,
		LeagueID:     squad.LeagueID,
		Points:       fantasy.ComputeSquadPoints(squad, l.SquadSize),
		BankedPoints: squad.BankedPoints,
		Players:      fantasy.PlayerBreakdown(squad, l.SquadSize),
	}, nil
}

func cleanPlayerIDs(playerIDs []string) ([]string, error) {
	if len(playerIDs) == 0 {
		return nil, fmt.Errorf("%w: player ids are required", ErrInvalidInput)
	}

	out := make([]string, 0, len(playerIDs))
	seen := make(map[string]struct{}, len(playerIDs))
	for _, raw := range playerIDs {
		id := strings.TrimSpace(raw)
		if id == "" {
			return nil, fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: %w: %s", ErrInvalidInput, fantasy.ErrDuplicatePlayerInSquad, id)
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

var serviceNow = time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

// premierSelection is a valid Premier T20 main squad.
var premierSelection = SelectSquadInput{
	PlayerIDs: []string{
		"pt-wk-01",
		"pt-bat-01",
		"pt-bat-02",
		"pt-bat-03",
		"pt-bat-05",
		"pt-ar-01",
		"pt-ar-02",
		"pt-bowl-01",
		"pt-bowl-02",
		"pt-bowl-03",
		"pt-bowl-04",
	},
	CaptainID:     "pt-ar-01",
	ViceCaptainID: "pt-bat-01",
	XFactorID:     "pt-bowl-01",
}

type serviceFixture struct {
	leagues      *memory.LeagueRepository
	players      *memory.PlayerRepository
	squads       *memory.SquadRepository
	locks        *resilience.KeyedMutex
	squadSvc     *SquadService
	transferSvc  *TransferService
	reversalSvc  *ReversalService
	recalcSvc    *RecalculationService
	poolSyncSvc  *PoolSyncService
	standingsSvc *StandingsService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		leagues: memory.NewLeagueRepository(memory.SeedLeagues()),
		players: memory.NewPlayerRepository(memory.SeedPlayers()),
		squads:  memory.NewSquadRepository(),
		locks:   &resilience.KeyedMutex{},
	}
	logger := logging.NewNop()

	f.squadSvc = NewSquadService(f.leagues, f.players, f.squads, staticIDGenerator{id: "sq-001"}, f.locks, logger)
	f.squadSvc.now = func() time.Time { return serviceNow }
	f.transferSvc = NewTransferService(f.leagues, f.players, f.squads, f.locks, logger)
	f.transferSvc.now = func() time.Time { return serviceNow }
	f.reversalSvc = NewReversalService(f.leagues, f.squads, f.locks, logger)
	f.reversalSvc.now = func() time.Time { return serviceNow.Add(time.Hour) }
	f.recalcSvc = NewRecalculationService(f.leagues, f.squads, f.locks, logger, 2)
	f.poolSyncSvc = NewPoolSyncService(f.leagues, f.players, f.squads, f.locks, logger, 2)
	f.standingsSvc = NewStandingsService(f.leagues, f.squads)
	return f
}

// selectedSquad joins the Premier T20 league and applies premierSelection.
func (f *serviceFixture) selectedSquad(t *testing.T, userID, squadID string) fantasy.Squad {
	t.Helper()

	f.squadSvc.idGen = staticIDGenerator{id: squadID}
	if _, err := f.squadSvc.JoinLeague(context.Background(), JoinLeagueInput{
		UserID:   userID,
		LeagueID: memory.LeagueIDPremierT20,
		Name:     "Squad " + userID,
	}); err != nil {
		t.Fatalf("join league: %v", err)
	}

	input := premierSelection
	input.SquadID = squadID
	squad, err := f.squadSvc.SelectSquad(context.Background(), input)
	if err != nil {
		t.Fatalf("select squad: %v", err)
	}
	return squad
}

package fantasy

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
)

func TestValidateSelection(t *testing.T) {
	rules := DefaultRules()
	validPicks := []SelectionPick{
		{PlayerID: "p1", TeamID: "t1", Role: player.RoleWicketkeeper},
		{PlayerID: "p2", TeamID: "t1", Role: player.RoleBatter},
		{PlayerID: "p3", TeamID: "t2", Role: player.RoleBatter},
		{PlayerID: "p4", TeamID: "t2", Role: player.RoleBatter},
		{PlayerID: "p5", TeamID: "t1", Role: player.RoleBatter},
		{PlayerID: "p6", TeamID: "t2", Role: player.RoleAllRounder},
		{PlayerID: "p7", TeamID: "t1", Role: player.RoleAllRounder},
		{PlayerID: "p8", TeamID: "t2", Role: player.RoleBowler},
		{PlayerID: "p9", TeamID: "t1", Role: player.RoleBowler},
		{PlayerID: "p10", TeamID: "t2", Role: player.RoleBowler},
		{PlayerID: "p11", TeamID: "t1", Role: player.RoleBowler},
	}

	tests := []struct {
		name      string
		mutate    func(*Selection, *Rules)
		targetErr error
	}{
		{
			name:   "valid selection",
			mutate: func(_ *Selection, _ *Rules) {},
		},
		{
			name: "invalid size",
			mutate: func(_ *Selection, cfg *Rules) {
				cfg.SquadSize = 10
			},
			targetErr: ErrInvalidSquadSize,
		},
		{
			name: "team limit exceeded",
			mutate: func(s *Selection, _ *Rules) {
				s.Picks[2].TeamID = "t1"
				s.Picks[3].TeamID = "t1"
			},
			targetErr: ErrExceededTeamLimit,
		},
		{
			name: "missing wicketkeeper",
			mutate: func(s *Selection, _ *Rules) {
				s.Picks[0].Role = player.RoleBatter
			},
			targetErr: ErrInsufficientRoleMix,
		},
		{
			name: "unknown role",
			mutate: func(s *Selection, _ *Rules) {
				s.Picks[4].Role = "keeper-batter"
			},
			targetErr: ErrUnknownPlayerRole,
		},
		{
			name: "duplicate player",
			mutate: func(s *Selection, _ *Rules) {
				s.Picks[1].PlayerID = "p1"
			},
			targetErr: ErrDuplicatePlayerInSquad,
		},
		{
			name: "captain outside selection",
			mutate: func(s *Selection, _ *Rules) {
				s.CaptainID = "p99"
			},
			targetErr: ErrInvalidRoleSelection,
		},
		{
			name: "captain doubles as x factor",
			mutate: func(s *Selection, _ *Rules) {
				s.XFactorID = s.CaptainID
			},
			targetErr: ErrInvalidRoleSelection,
		},
		{
			name: "vice captain missing",
			mutate: func(s *Selection, _ *Rules) {
				s.ViceCaptainID = ""
			},
			targetErr: ErrInvalidRoleSelection,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			picks := make([]SelectionPick, len(validPicks))
			copy(picks, validPicks)
			selection := Selection{Picks: picks, CaptainID: "p2", ViceCaptainID: "p8", XFactorID: "p6"}
			cfg := rules
			tc.mutate(&selection, &cfg)

			err := ValidateSelection(selection, cfg)
			if tc.targetErr == nil && err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if tc.targetErr != nil && !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected error %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestRulesForSquadSizeDropsUnreachableMinimums(t *testing.T) {
	rules := RulesForSquadSize(4)
	if rules.SquadSize != 4 || len(rules.MinByRole) != 0 || rules.MaxPlayersPerTeam != 4 {
		t.Fatalf("unexpected rules: %+v", rules)
	}

	rules = RulesForSquadSize(11)
	if rules.MinByRole[player.RoleWicketkeeper] != 1 || rules.MaxPlayersPerTeam != 7 {
		t.Fatalf("unexpected default rules: %+v", rules)
	}
}

func TestTransferTypeConfigValidate(t *testing.T) {
	cfg := fixturePolicy().Transfers
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.MidSeason.WindowEnd = cfg.MidSeason.WindowStart.Add(-1)
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected inverted window to fail")
	}

	cfg = fixturePolicy().Transfers
	cfg.Bench.MaxAllowed = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected negative limit to fail")
	}
}

package fantasy

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
)

var fixtureNow = time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

func fixturePolicy() TransferPolicy {
	return TransferPolicy{
		SquadSize: 4,
		Transfers: TransferTypeConfig{
			Bench:    BenchConfig{Enabled: true, MaxAllowed: 3, BenchSlots: 3},
			Flexible: FlexibleConfig{Enabled: true, MaxAllowed: 2},
			MidSeason: MidSeasonConfig{
				Enabled:     true,
				MaxAllowed:  1,
				WindowStart: fixtureNow.Add(-24 * time.Hour),
				WindowEnd:   fixtureNow.Add(24 * time.Hour),
			},
		},
	}
}

func fixtureSquad() Squad {
	return Squad{
		ID:            "sq-1",
		UserID:        "u-1",
		LeagueID:      "ipl",
		Name:          "Chasers",
		CaptainID:     "c",
		ViceCaptainID: "v",
		XFactorID:     "x",
		Players: []PlayerEntry{
			{PlayerID: "c", TeamID: "t1", Role: player.RoleBatter, Points: 120, PointsAtJoining: 20, PointsWhenRoleAssigned: floatPtr(50)},
			{PlayerID: "v", TeamID: "t2", Role: player.RoleBowler, Points: 90, PointsAtJoining: 10},
			{PlayerID: "x", TeamID: "t3", Role: player.RoleAllRounder, Points: 60, PointsAtJoining: 0},
			{PlayerID: "r", TeamID: "t1", Role: player.RoleWicketkeeper, Points: 40, PointsAtJoining: 5},
			{PlayerID: "b", TeamID: "t2", Role: player.RoleBowler, Points: 30, PointsAtJoining: 30},
		},
	}
}

func fixturePool() PlayerPool {
	players := []player.Player{
		{ID: "c", LeagueID: "ipl", TeamID: "t1", Name: "C", Role: player.RoleBatter, Points: 120},
		{ID: "v", LeagueID: "ipl", TeamID: "t2", Name: "V", Role: player.RoleBowler, Points: 90},
		{ID: "x", LeagueID: "ipl", TeamID: "t3", Name: "X", Role: player.RoleAllRounder, Points: 60},
		{ID: "r", LeagueID: "ipl", TeamID: "t1", Name: "R", Role: player.RoleWicketkeeper, Points: 40},
		{ID: "b", LeagueID: "ipl", TeamID: "t2", Name: "B", Role: player.RoleBowler, Points: 30},
		{ID: "n1", LeagueID: "ipl", TeamID: "t4", Name: "N1", Role: player.RoleBatter, Points: 75},
		{ID: "n2", LeagueID: "ipl", TeamID: "t5", Name: "N2", Role: player.RoleBowler, Points: 150},
	}
	return NewPlayerPool(players)
}

func TestValidateTransferRejections(t *testing.T) {
	tests := []struct {
		name   string
		req    TransferRequest
		mutate func(*Squad, *TransferPolicy)
		want   ErrorKind
	}{
		{
			name: "bench role reassignment rejected regardless of payload",
			req:  TransferRequest{TransferType: TransferTypeBench, ChangeType: ChangeTypeRoleReassignment, NewViceCaptainID: "r"},
			want: KindRoleReassignmentNotAllowedForBench,
		},
		{
			name: "bench role reassignment rejected even when bench is disabled",
			req:  TransferRequest{TransferType: TransferTypeBench, ChangeType: ChangeTypeRoleReassignment},
			mutate: func(_ *Squad, p *TransferPolicy) {
				p.Transfers.Bench.Enabled = false
			},
			want: KindRoleReassignmentNotAllowedForBench,
		},
		{
			name: "flexible cannot remove captain",
			req:  TransferRequest{TransferType: TransferTypeFlexible, ChangeType: ChangeTypePlayerSubstitution, PlayerOut: "c", PlayerIn: "n1"},
			want: KindCaptainRemovalForbidden,
		},
		{
			name: "flexible cannot remove vice captain",
			req:  TransferRequest{TransferType: TransferTypeFlexible, ChangeType: ChangeTypePlayerSubstitution, PlayerOut: "v", PlayerIn: "n1"},
			want: KindViceCaptainRemovalForbidden,
		},
		{
			name: "mid season cannot remove captain",
			req:  TransferRequest{TransferType: TransferTypeMidSeason, ChangeType: ChangeTypePlayerSubstitution, PlayerOut: "c", PlayerIn: "n1"},
			want: KindCaptainRemovalForbidden,
		},
		{
			name: "both roles selected",
			req:  TransferRequest{TransferType: TransferTypeFlexible, ChangeType: ChangeTypeRoleReassignment, NewViceCaptainID: "r", NewXFactorID: "r"},
			want: KindMustSelectExactlyOneRole,
		},
		{
			name: "no role selected",
			req:  TransferRequest{TransferType: TransferTypeFlexible, ChangeType: ChangeTypeRoleReassignment},
			want: KindNoRoleSelected,
		},
		{
			name: "captain reassignment unsupported",
			req:  TransferRequest{TransferType: TransferTypeFlexible, ChangeType: ChangeTypeRoleReassignment, NewCaptainID: "r"},
			want: KindCaptainReassignmentNotSupported,
		},
		{
			name: "role target on bench",
			req:  TransferRequest{TransferType: TransferTypeFlexible, ChangeType: ChangeTypeRoleReassignment, NewXFactorID: "b"},
			want: KindPlayerNotInSquad,
		},
		{
			name: "role target already holds a role",
			req:  TransferRequest{TransferType: TransferTypeFlexible, ChangeType: ChangeTypeRoleReassignment, NewXFactorID: "c"},
			want: KindRoleConflict,
		},
		{
			name: "flexible player out on bench",
			req:  TransferRequest{TransferType: TransferTypeFlexible, ChangeType: ChangeTypePlayerSubstitution, PlayerOut: "b", PlayerIn: "n1"},
			want: KindPlayerNotInSquad,
		},
		{
			name: "bench player out unknown",
			req:  TransferRequest{TransferType: TransferTypeBench, ChangeType: ChangeTypePlayerSubstitution, PlayerOut: "zz", PlayerIn: "n1"},
			want: KindPlayerNotInSquad,
		},
		{
			name: "player in already in squad",
			req:  TransferRequest{TransferType: TransferTypeBench, ChangeType: ChangeTypePlayerSubstitution, PlayerOut: "r", PlayerIn: "b"},
			want: KindPlayerAlreadyInSquad,
		},
		{
			name: "player in not in pool",
			req:  TransferRequest{TransferType: TransferTypeFlexible, ChangeType: ChangeTypePlayerSubstitution, PlayerOut: "r", PlayerIn: "ghost"},
			want: KindPlayerNotInPool,
		},
		{
			name: "flexible disabled",
			req:  TransferRequest{TransferType: TransferTypeFlexible, ChangeType: ChangeTypePlayerSubstitution, PlayerOut: "r", PlayerIn: "n1"},
			mutate: func(_ *Squad, p *TransferPolicy) {
				p.Transfers.Flexible.Enabled = false
			},
			want: KindTransferTypeDisabled,
		},
		{
			name: "disabled wins over forbidden removal",
			req:  TransferRequest{TransferType: TransferTypeFlexible, ChangeType: ChangeTypePlayerSubstitution, PlayerOut: "c", PlayerIn: "n1"},
			mutate: func(_ *Squad, p *TransferPolicy) {
				p.Transfers.Flexible.Enabled = false
			},
			want: KindTransferTypeDisabled,
		},
		{
			name: "mid season window closed",
			req:  TransferRequest{TransferType: TransferTypeMidSeason, ChangeType: ChangeTypePlayerSubstitution, PlayerOut: "r", PlayerIn: "n1"},
			mutate: func(_ *Squad, p *TransferPolicy) {
				p.Transfers.MidSeason.WindowEnd = fixtureNow.Add(-time.Hour)
				p.Transfers.MidSeason.WindowStart = fixtureNow.Add(-48 * time.Hour)
			},
			want: KindTransferWindowClosed,
		},
		{
			name: "transfer limit reached",
			req:  TransferRequest{TransferType: TransferTypeFlexible, ChangeType: ChangeTypePlayerSubstitution, PlayerOut: "r", PlayerIn: "n1"},
			mutate: func(s *Squad, _ *TransferPolicy) {
				s.FlexibleTransfersUsed = 2
			},
			want: KindTransferLimitExceeded,
		},
		{
			name: "bench full",
			req:  TransferRequest{TransferType: TransferTypeBench, ChangeType: ChangeTypePlayerSubstitution, PlayerOut: "r", PlayerIn: "n1"},
			mutate: func(_ *Squad, p *TransferPolicy) {
				p.Transfers.Bench.BenchSlots = 1
			},
			want: KindBenchFull,
		},
		{
			name: "unknown transfer type",
			req:  TransferRequest{TransferType: "weekly", ChangeType: ChangeTypePlayerSubstitution},
			want: KindUnknownTransferType,
		},
		{
			name: "admin reversal is not a submittable transfer",
			req:  TransferRequest{TransferType: TransferTypeAdminReversal, ChangeType: ChangeTypeAdminReversal},
			want: KindUnknownTransferType,
		},
		{
			name: "unknown change type",
			req:  TransferRequest{TransferType: TransferTypeFlexible, ChangeType: "swap"},
			want: KindUnknownChangeType,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			squad := fixtureSquad()
			policy := fixturePolicy()
			if tc.mutate != nil {
				tc.mutate(&squad, &policy)
			}
			before := squad.Clone()

			_, err := ValidateTransfer(tc.req, squad, policy, fixturePool(), fixtureNow)
			if err == nil {
				t.Fatalf("expected rejection %s, got nil", tc.want)
			}
			kind, ok := RejectionKind(err)
			if !ok || kind != tc.want {
				t.Fatalf("unexpected rejection: got=%v (%s) want=%s", err, kind, tc.want)
			}
			if !errors.Is(err, &TransferError{Kind: tc.want}) {
				t.Fatalf("expected errors.Is to match kind %s", tc.want)
			}
			if !squadsEqual(before, squad) {
				t.Fatalf("validator mutated squad")
			}
		})
	}
}

func TestValidateTransferApprovals(t *testing.T) {
	tests := []struct {
		name       string
		req        TransferRequest
		wantChange ChangeType
		wantStamp  float64
	}{
		{
			name:       "bench may remove captain",
			req:        TransferRequest{TransferType: TransferTypeBench, ChangeType: ChangeTypePlayerSubstitution, PlayerOut: "c", PlayerIn: "n2"},
			wantChange: ChangeTypePlayerSubstitution,
			wantStamp:  150,
		},
		{
			name:       "bench may swap a bench player",
			req:        TransferRequest{TransferType: TransferTypeBench, ChangeType: ChangeTypePlayerSubstitution, PlayerOut: "b", PlayerIn: "n1"},
			wantChange: ChangeTypePlayerSubstitution,
			wantStamp:  75,
		},
		{
			name:       "flexible may remove x factor",
			req:        TransferRequest{TransferType: TransferTypeFlexible, ChangeType: ChangeTypePlayerSubstitution, PlayerOut: "x", PlayerIn: "n1"},
			wantChange: ChangeTypePlayerSubstitution,
			wantStamp:  75,
		},
		{
			name:       "flexible vice captain reassignment",
			req:        TransferRequest{TransferType: TransferTypeFlexible, ChangeType: ChangeTypeRoleReassignment, NewViceCaptainID: "r"},
			wantChange: ChangeTypeRoleReassignment,
			wantStamp:  40,
		},
		{
			name:       "mid season x factor reassignment",
			req:        TransferRequest{TransferType: TransferTypeMidSeason, ChangeType: ChangeTypeRoleReassignment, NewXFactorID: "r"},
			wantChange: ChangeTypeRoleReassignment,
			wantStamp:  40,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			approved, err := ValidateTransfer(tc.req, fixtureSquad(), fixturePolicy(), fixturePool(), fixtureNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if approved.TransferType() != tc.req.TransferType {
				t.Fatalf("unexpected transfer type: got=%s want=%s", approved.TransferType(), tc.req.TransferType)
			}
			if approved.ChangeType() != tc.wantChange {
				t.Fatalf("unexpected change type: got=%s want=%s", approved.ChangeType(), tc.wantChange)
			}
			if approved.StampPoints() != tc.wantStamp {
				t.Fatalf("unexpected stamp: got=%v want=%v", approved.StampPoints(), tc.wantStamp)
			}
			if !approved.At().Equal(fixtureNow) {
				t.Fatalf("unexpected timestamp: %s", approved.At())
			}
		})
	}
}

func squadsEqual(a, b Squad) bool {
	if a.CaptainID != b.CaptainID || a.ViceCaptainID != b.ViceCaptainID || a.XFactorID != b.XFactorID {
		return false
	}
	if a.BenchTransfersUsed != b.BenchTransfersUsed ||
		a.FlexibleTransfersUsed != b.FlexibleTransfersUsed ||
		a.MidSeasonTransfersUsed != b.MidSeasonTransfersUsed ||
		a.TransfersUsed != b.TransfersUsed {
		return false
	}
	if a.BankedPoints != b.BankedPoints || len(a.Players) != len(b.Players) || len(a.TransferHistory) != len(b.TransferHistory) {
		return false
	}
	for i := range a.Players {
		if !entriesEqual(a.Players[i], b.Players[i]) {
			return false
		}
	}
	for i := range a.TransferHistory {
		if a.TransferHistory[i] != b.TransferHistory[i] {
			return false
		}
	}
	return true
}

func entriesEqual(a, b PlayerEntry) bool {
	if a.PlayerID != b.PlayerID || a.TeamID != b.TeamID || a.Role != b.Role ||
		a.Points != b.Points || a.PointsAtJoining != b.PointsAtJoining {
		return false
	}
	if (a.PointsWhenRoleAssigned == nil) != (b.PointsWhenRoleAssigned == nil) {
		return false
	}
	return a.PointsWhenRoleAssigned == nil || *a.PointsWhenRoleAssigned == *b.PointsWhenRoleAssigned
}

func TestBenchPlayerSwapIgnoresFullBench(t *testing.T) {
	policy := fixturePolicy()
	policy.Transfers.Bench.BenchSlots = 1

	_, err := ValidateTransfer(TransferRequest{
		TransferType: TransferTypeBench,
		ChangeType:   ChangeTypePlayerSubstitution,
		PlayerOut:    "b",
		PlayerIn:     "n1",
	}, fixtureSquad(), policy, fixturePool(), fixtureNow)
	if err != nil {
		t.Fatalf("replacing a bench player should not need a free slot: %v", err)
	}
}

func TestMidSeasonWindowBoundaries(t *testing.T) {
	start := fixtureNow.Add(-24 * time.Hour)
	end := fixtureNow.Add(24 * time.Hour)

	tests := []struct {
		name     string
		now      time.Time
		wantOpen bool
	}{
		{name: "at window start", now: start, wantOpen: true},
		{name: "at window end", now: end, wantOpen: true},
		{name: "just before start", now: start.Add(-time.Nanosecond), wantOpen: false},
		{name: "just after end", now: end.Add(time.Nanosecond), wantOpen: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := TransferRequest{TransferType: TransferTypeMidSeason, ChangeType: ChangeTypePlayerSubstitution, PlayerOut: "r", PlayerIn: "n1"}
			_, err := ValidateTransfer(req, fixtureSquad(), fixturePolicy(), fixturePool(), tc.now)
			if tc.wantOpen {
				if err != nil {
					t.Fatalf("expected approval at %s, got %v", tc.now, err)
				}
				return
			}
			if kind, _ := RejectionKind(err); kind != KindTransferWindowClosed {
				t.Fatalf("expected window closed at %s, got %v", tc.now, err)
			}
		})
	}
}

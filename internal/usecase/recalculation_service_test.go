package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
)

func corruptStoredTotals(t *testing.T, f *serviceFixture, squadID string) {
	t.Helper()

	squad, _, err := f.squads.GetByID(context.Background(), squadID)
	if err != nil {
		t.Fatalf("get squad: %v", err)
	}
	squad.Points = fantasy.SquadPoints{TotalPoints: 9999}
	if _, err := f.squads.Save(context.Background(), squad); err != nil {
		t.Fatalf("save corrupted squad: %v", err)
	}
}

func TestRecalculationService_RecalculateSquad(t *testing.T) {
	f := newServiceFixture(t)
	f.selectedSquad(t, "user-1", "sq-001")
	corruptStoredTotals(t, f, "sq-001")

	row, err := f.recalcSvc.RecalculateSquad(context.Background(), "sq-001")
	if err != nil {
		t.Fatalf("recalculate squad: %v", err)
	}
	if row.Status != recalcStatusUpdated || row.Before.TotalPoints != 9999 || row.After.TotalPoints != 0 {
		t.Fatalf("unexpected recalculation row: %+v", row)
	}

	row, err = f.recalcSvc.RecalculateSquad(context.Background(), "sq-001")
	if err != nil {
		t.Fatalf("recalculate squad again: %v", err)
	}
	if row.Status != recalcStatusUnchanged {
		t.Fatalf("second run must be a no-op, got %s", row.Status)
	}
}

func TestRecalculationService_RecalculateLeague(t *testing.T) {
	f := newServiceFixture(t)
	f.selectedSquad(t, "user-1", "sq-001")
	f.selectedSquad(t, "user-2", "sq-002")
	f.selectedSquad(t, "user-3", "sq-003")
	corruptStoredTotals(t, f, "sq-001")
	corruptStoredTotals(t, f, "sq-003")

	result, err := f.recalcSvc.RecalculateLeague(context.Background(), memory.LeagueIDPremierT20)
	if err != nil {
		t.Fatalf("recalculate league: %v", err)
	}
	if result.SquadCount != 3 || result.WorkerCount != 2 {
		t.Fatalf("unexpected run shape: %+v", result)
	}
	if result.UpdatedCount != 2 || result.UnchangedCount != 1 || result.FailedCount != 0 {
		t.Fatalf("unexpected counts updated=%d unchanged=%d failed=%d", result.UpdatedCount, result.UnchangedCount, result.FailedCount)
	}
	if result.Squads[0].SquadID != "sq-001" || result.Squads[2].SquadID != "sq-003" {
		t.Fatalf("rows must be sorted by squad id: %+v", result.Squads)
	}
}

func TestRecalculationService_AdjustBankedPoints(t *testing.T) {
	f := newServiceFixture(t)
	f.selectedSquad(t, "user-1", "sq-001")
	ctx := context.Background()

	squad, err := f.recalcSvc.AdjustBankedPoints(ctx, AdjustBankedPointsInput{SquadID: "sq-001", Delta: 12.5, Reason: "scorer correction"})
	if err != nil {
		t.Fatalf("adjust banked points: %v", err)
	}
	if squad.BankedPoints != 12.5 || squad.Points.TotalPoints != 12.5 {
		t.Fatalf("expected banked and total 12.5, got banked=%v total=%v", squad.BankedPoints, squad.Points.TotalPoints)
	}

	squad, err = f.recalcSvc.AdjustBankedPoints(ctx, AdjustBankedPointsInput{SquadID: "sq-001", Delta: -50, Reason: "reset"})
	if err != nil {
		t.Fatalf("adjust banked points down: %v", err)
	}
	if squad.BankedPoints != 0 {
		t.Fatalf("banked points must clamp at zero, got %v", squad.BankedPoints)
	}

	if _, err := f.recalcSvc.AdjustBankedPoints(ctx, AdjustBankedPointsInput{SquadID: "sq-001", Delta: 1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without reason, got %v", err)
	}
}

func TestNormalizeWorkerCount(t *testing.T) {
	tests := []struct {
		requested, tasks, want int
	}{
		{requested: 0, tasks: 10, want: defaultRecalcWorkers},
		{requested: 100, tasks: 100, want: maxRecalcWorkers},
		{requested: 8, tasks: 3, want: 3},
		{requested: 0, tasks: 0, want: defaultRecalcWorkers},
	}
	for _, tc := range tests {
		if got := normalizeWorkerCount(tc.requested, tc.tasks); got != tc.want {
			t.Fatalf("normalizeWorkerCount(%d, %d)=%d want %d", tc.requested, tc.tasks, got, tc.want)
		}
	}
}

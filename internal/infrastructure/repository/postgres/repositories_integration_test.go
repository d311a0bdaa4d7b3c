//go:build integration

package postgres

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("fantasy"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	m, err := migrate.New("file://"+filepath.ToSlash(migrationsDir(t)), dsn)
	require.NoError(t, err, "failed to create migrator")
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		require.NoError(t, err, "failed to apply migrations")
	}
	_, _ = m.Close()

	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, BootstrapSeed(ctx, db))
	return db
}

func migrationsDir(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "db", "migrations")
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

func TestIntegrationLeagueAndPlayerRepositories(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	leagues := NewLeagueRepository(db)
	items, err := leagues.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, len(memory.SeedLeagues()))

	l, ok, err := leagues.GetByID(ctx, memory.LeagueIDPremierT20)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, l.Transfers.MidSeason.Enabled)
	require.False(t, l.Transfers.MidSeason.WindowStart.IsZero())

	players := NewPlayerRepository(db)
	pool, err := players.ListByLeague(ctx, memory.LeagueIDPremierT20)
	require.NoError(t, err)
	require.NotEmpty(t, pool)

	target := pool[0].ID
	require.NoError(t, players.UpdatePoints(ctx, memory.LeagueIDPremierT20, []player.PointsUpdate{{PlayerID: target, Points: 321.5}}))
	points, ok, err := players.GetCurrentPoints(ctx, memory.LeagueIDPremierT20, target)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 321.5, points)

	err = players.UpdatePoints(ctx, memory.LeagueIDPremierT20, []player.PointsUpdate{
		{PlayerID: target, Points: 1},
		{PlayerID: "missing", Points: 2},
	})
	require.Error(t, err)
	points, _, err = players.GetCurrentPoints(ctx, memory.LeagueIDPremierT20, target)
	require.NoError(t, err)
	require.Equal(t, 321.5, points, "failed batch must roll back")
}

func TestIntegrationSquadRepositoryVersioning(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewSquadRepository(db)

	stamp := 10.0
	squad := fantasy.Squad{
		ID:        "sq_1",
		UserID:    "u_1",
		LeagueID:  memory.LeagueIDPremierT20,
		Name:      "Strikers",
		CaptainID: "p1",
		Players: []fantasy.PlayerEntry{
			{PlayerID: "p1", TeamID: "t1", Role: player.RoleBatter, Points: 40, PointsWhenRoleAssigned: &stamp},
		},
	}

	saved, err := repo.Save(ctx, squad)
	require.NoError(t, err)
	require.Equal(t, int64(1), saved.Version)

	_, err = repo.Save(ctx, squad)
	require.ErrorIs(t, err, fantasy.ErrSquadVersionConflict, "duplicate insert must conflict")

	saved.BankedPoints = 12
	updated, err := repo.Save(ctx, saved)
	require.NoError(t, err)
	require.Equal(t, int64(2), updated.Version)

	_, err = repo.Save(ctx, saved)
	require.ErrorIs(t, err, fantasy.ErrSquadVersionConflict, "stale write must conflict")

	got, ok, err := repo.GetByUserAndLeague(ctx, "u_1", memory.LeagueIDPremierT20)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 12.0, got.BankedPoints)
	require.Equal(t, "p1", got.CaptainID)
	require.NotNil(t, got.Players[0].PointsWhenRoleAssigned)
	require.Equal(t, 10.0, *got.Players[0].PointsWhenRoleAssigned)

	list, err := repo.ListByLeague(ctx, memory.LeagueIDPremierT20)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

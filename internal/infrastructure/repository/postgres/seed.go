package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo leagues and player pools into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues WHERE deleted_at IS NULL`); err != nil {
		return crerr.Wrap(err, "count leagues for bootstrap seed")
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin seed tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, l := range memory.SeedLeagues() {
		cfg := l.Transfers
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO leagues (
    public_id, name, country_code, season, is_default, squad_size,
    bench_enabled, bench_max_allowed, bench_slots,
    flexible_enabled, flexible_max_allowed,
    mid_season_enabled, mid_season_max_allowed, mid_season_window_start, mid_season_window_end
) VALUES (
    :public_id, :name, :country_code, :season, :is_default, :squad_size,
    :bench_enabled, :bench_max_allowed, :bench_slots,
    :flexible_enabled, :flexible_max_allowed,
    :mid_season_enabled, :mid_season_max_allowed, :mid_season_window_start, :mid_season_window_end
)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":               l.ID,
			"name":                    l.Name,
			"country_code":            l.CountryCode,
			"season":                  l.Season,
			"is_default":              l.IsDefault,
			"squad_size":              l.SquadSize,
			"bench_enabled":           cfg.Bench.Enabled,
			"bench_max_allowed":       cfg.Bench.MaxAllowed,
			"bench_slots":             cfg.Bench.BenchSlots,
			"flexible_enabled":        cfg.Flexible.Enabled,
			"flexible_max_allowed":    cfg.Flexible.MaxAllowed,
			"mid_season_enabled":      cfg.MidSeason.Enabled,
			"mid_season_max_allowed":  cfg.MidSeason.MaxAllowed,
			"mid_season_window_start": timeToNullTime(cfg.MidSeason.WindowStart),
			"mid_season_window_end":   timeToNullTime(cfg.MidSeason.WindowEnd),
		})
		if err != nil {
			return crerr.Wrapf(err, "bind seed league %s query", l.ID)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return crerr.Wrapf(err, "seed league %s", l.ID)
		}
	}

	for _, p := range memory.SeedPlayers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO pool_players (public_id, league_public_id, team_public_id, name, role, points)
VALUES (:public_id, :league_public_id, :team_public_id, :name, :role, :points)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":        p.ID,
			"league_public_id": p.LeagueID,
			"team_public_id":   p.TeamID,
			"name":             p.Name,
			"role":             string(p.Role),
			"points":           p.Points,
		})
		if err != nil {
			return crerr.Wrapf(err, "bind seed player %s query", p.ID)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return crerr.Wrapf(err, "seed player %s", p.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit seed tx")
	}
	return nil
}

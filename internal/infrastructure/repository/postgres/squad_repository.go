package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	qb "github.com/riskibarqy/fantasy-cricket/internal/platform/querybuilder"
)

type SquadRepository struct {
	db *sqlx.DB
}

func NewSquadRepository(db *sqlx.DB) *SquadRepository {
	return &SquadRepository{db: db}
}

func (r *SquadRepository) GetByID(ctx context.Context, squadID string) (fantasy.Squad, bool, error) {
	query, args, err := qb.Select("*").From("fantasy_squads").
		Where(
			qb.Eq("public_id", squadID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fantasy.Squad{}, false, crerr.Wrap(err, "build get squad by id query")
	}
	return r.getOne(ctx, query, args)
}

func (r *SquadRepository) GetByUserAndLeague(ctx context.Context, userID, leagueID string) (fantasy.Squad, bool, error) {
	query, args, err := qb.Select("*").From("fantasy_squads").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fantasy.Squad{}, false, crerr.Wrap(err, "build get squad by user query")
	}
	return r.getOne(ctx, query, args)
}

func (r *SquadRepository) getOne(ctx context.Context, query string, args []any) (fantasy.Squad, bool, error) {
	var row squadTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.Squad{}, false, nil
		}
		return fantasy.Squad{}, false, crerr.Wrap(err, "get fantasy squad")
	}

	squad, err := row.toDomain()
	if err != nil {
		return fantasy.Squad{}, false, err
	}
	return squad, true, nil
}

func (r *SquadRepository) ListByLeague(ctx context.Context, leagueID string) ([]fantasy.Squad, error) {
	query, args, err := qb.Select("*").From("fantasy_squads").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list squads by league query")
	}

	var rows []squadTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrapf(err, "list squads league=%s", leagueID)
	}

	out := make([]fantasy.Squad, 0, len(rows))
	for _, row := range rows {
		squad, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, squad)
	}
	return out, nil
}

const insertSquadQuery = `
INSERT INTO fantasy_squads (
    public_id, user_id, league_public_id, name,
    captain_public_id, vice_captain_public_id, x_factor_public_id,
    banked_points, bench_transfers_used, flexible_transfers_used, mid_season_transfers_used, transfers_used,
    players, transfer_history,
    total_points, captain_points, vice_captain_points, x_factor_points,
    version
) VALUES (
    :public_id, :user_id, :league_public_id, :name,
    :captain_public_id, :vice_captain_public_id, :x_factor_public_id,
    :banked_points, :bench_transfers_used, :flexible_transfers_used, :mid_season_transfers_used, :transfers_used,
    CAST(:players AS JSONB), CAST(:transfer_history AS JSONB),
    :total_points, :captain_points, :vice_captain_points, :x_factor_points,
    1
)
RETURNING version, created_at, updated_at`

const updateSquadQuery = `
UPDATE fantasy_squads SET
    name = :name,
    captain_public_id = :captain_public_id,
    vice_captain_public_id = :vice_captain_public_id,
    x_factor_public_id = :x_factor_public_id,
    banked_points = :banked_points,
    bench_transfers_used = :bench_transfers_used,
    flexible_transfers_used = :flexible_transfers_used,
    mid_season_transfers_used = :mid_season_transfers_used,
    transfers_used = :transfers_used,
    players = CAST(:players AS JSONB),
    transfer_history = CAST(:transfer_history AS JSONB),
    total_points = :total_points,
    captain_points = :captain_points,
    vice_captain_points = :vice_captain_points,
    x_factor_points = :x_factor_points,
    version = version + 1,
    updated_at = NOW()
WHERE public_id = :public_id
  AND version = :version
  AND deleted_at IS NULL
RETURNING version, created_at, updated_at`

// Save inserts a squad with Version 0 and otherwise replaces the stored row
// only when its version still matches. Stale writes and duplicate
// user+league inserts return fantasy.ErrSquadVersionConflict.
func (r *SquadRepository) Save(ctx context.Context, squad fantasy.Squad) (fantasy.Squad, error) {
	args, err := squadWriteArgs(squad)
	if err != nil {
		return fantasy.Squad{}, err
	}

	stmt := updateSquadQuery
	if squad.Version == 0 {
		stmt = insertSquadQuery
	}
	query, queryArgs, err := sqlx.Named(stmt, args)
	if err != nil {
		return fantasy.Squad{}, crerr.Wrap(err, "bind save fantasy squad query")
	}
	query = r.db.Rebind(query)

	var returned struct {
		Version   int64     `db:"version"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	if err := r.db.GetContext(ctx, &returned, query, queryArgs...); err != nil {
		switch {
		case isNotFound(err):
			return fantasy.Squad{}, crerr.Wrapf(fantasy.ErrSquadVersionConflict, "squad=%s version=%d", squad.ID, squad.Version)
		case isUniqueViolation(err):
			return fantasy.Squad{}, crerr.Wrapf(fantasy.ErrSquadVersionConflict, "squad=%s already exists", squad.ID)
		default:
			return fantasy.Squad{}, crerr.Wrapf(err, "save fantasy squad=%s", squad.ID)
		}
	}

	saved := squad.Clone()
	saved.Version = returned.Version
	saved.CreatedAt = returned.CreatedAt.UTC()
	saved.UpdatedAt = returned.UpdatedAt.UTC()
	return saved, nil
}

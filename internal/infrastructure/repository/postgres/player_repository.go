package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	qb "github.com/riskibarqy/fantasy-cricket/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByLeague(ctx context.Context, leagueID string) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("pool_players").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select pool players by league query")
	}

	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, leagueID string, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select("*").From("pool_players").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.In("public_id", stringSliceToAny(playerIDs)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select pool players by ids query")
	}

	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, query string, args []any) ([]player.Player, error) {
	var rows []poolPlayerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select pool players")
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) GetCurrentPoints(ctx context.Context, leagueID, playerID string) (float64, bool, error) {
	query, args, err := qb.Select("points").From("pool_players").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("public_id", playerID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return 0, false, crerr.Wrap(err, "build select pool player points query")
	}

	var points float64
	if err := r.db.GetContext(ctx, &points, query, args...); err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, crerr.Wrapf(err, "get points for player=%s", playerID)
	}
	return points, true, nil
}

// UpdatePoints writes the whole feed batch in one transaction. An unknown
// player aborts the batch.
func (r *PlayerRepository) UpdatePoints(ctx context.Context, leagueID string, updates []player.PointsUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin tx for pool points update")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, u := range updates {
		query, args, err := qb.Update("pool_players").
			Set("points", u.Points).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("league_public_id", leagueID),
				qb.Eq("public_id", u.PlayerID),
				qb.IsNull("deleted_at"),
			).
			ToSQL()
		if err != nil {
			return crerr.Wrap(err, "build update pool player points query")
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return crerr.Wrapf(err, "update points for player=%s", u.PlayerID)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return crerr.Wrap(err, "read affected rows")
		}
		if affected == 0 {
			return crerr.Newf("player %s not found in league %s", u.PlayerID, leagueID)
		}
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit pool points update tx")
	}
	return nil
}

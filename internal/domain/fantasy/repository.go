package fantasy

import (
	"context"
	"errors"
)

// ErrSquadVersionConflict is returned by Save when the stored squad moved on
// since it was loaded.
var ErrSquadVersionConflict = errors.New("squad version conflict")

// Repository describes squad persistence needs from use cases. Save replaces
// the whole squad atomically and bumps Version.
type Repository interface {
	GetByID(ctx context.Context, squadID string) (Squad, bool, error)
	GetByUserAndLeague(ctx context.Context, userID, leagueID string) (Squad, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Squad, error)
	Save(ctx context.Context, squad Squad) (Squad, error)
}

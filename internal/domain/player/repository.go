package player

import "context"

// Repository describes player pool persistence needs from use cases.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Player, error)
	GetByIDs(ctx context.Context, leagueID string, playerIDs []string) ([]Player, error)
	GetCurrentPoints(ctx context.Context, leagueID, playerID string) (float64, bool, error)
	UpdatePoints(ctx context.Context, leagueID string, updates []PointsUpdate) error
}

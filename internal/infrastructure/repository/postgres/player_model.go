package postgres

import (
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
)

type poolPlayerTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	LeagueID  string     `db:"league_public_id"`
	TeamID    string     `db:"team_public_id"`
	Name      string     `db:"name"`
	Role      string     `db:"role"`
	Points    float64    `db:"points"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

func (m poolPlayerTableModel) toDomain() player.Player {
	return player.Player{
		ID:       m.PublicID,
		LeagueID: m.LeagueID,
		TeamID:   m.TeamID,
		Name:     m.Name,
		Role:     player.Role(m.Role),
		Points:   m.Points,
	}
}

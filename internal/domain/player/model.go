package player

import (
	"fmt"
	"math"
)

// Role is the positional role of a cricketer. It drives squad composition
// rules only and never affects scoring.
type Role string

const (
	RoleBatter       Role = "batter"
	RoleBowler       Role = "bowler"
	RoleAllRounder   Role = "all-rounder"
	RoleWicketkeeper Role = "wicketkeeper"
)

var AllRoles = map[Role]struct{}{
	RoleBatter:       {},
	RoleBowler:       {},
	RoleAllRounder:   {},
	RoleWicketkeeper: {},
}

// Player is a selectable cricketer in a league pool. Points is the running
// pool total fed by real-world performance.
type Player struct {
	ID       string
	LeagueID string
	TeamID   string
	Name     string
	Role     Role
	Points   float64
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.LeagueID == "" {
		return fmt.Errorf("player league id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllRoles[p.Role]; !ok {
		return fmt.Errorf("invalid player role: %s", p.Role)
	}
	if math.IsNaN(p.Points) || math.IsInf(p.Points, 0) {
		return fmt.Errorf("player points must be a finite number")
	}

	return nil
}

// PointsUpdate is one entry of a pool-point feed. Corrections may lower a
// player's points.
type PointsUpdate struct {
	PlayerID string
	Points   float64
}

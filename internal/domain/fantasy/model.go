package fantasy

import (
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
)

// PlayerEntry is one player held by a squad together with the pool-point
// baselines captured when the player joined and when a role was granted.
type PlayerEntry struct {
	PlayerID               string      `json:"playerId"`
	TeamID                 string      `json:"teamId"`
	Role                   player.Role `json:"role"`
	Points                 float64     `json:"points"`
	PointsAtJoining        float64     `json:"pointsAtJoining"`
	PointsWhenRoleAssigned *float64    `json:"pointsWhenRoleAssigned,omitempty"`
}

// Squad contains a participant's selection for one league. The first
// squadSize entries of Players are the main squad, the rest is the bench.
type Squad struct {
	ID                     string
	UserID                 string
	LeagueID               string
	Name                   string
	Players                []PlayerEntry
	CaptainID              string
	ViceCaptainID          string
	XFactorID              string
	BankedPoints           float64
	BenchTransfersUsed     int
	FlexibleTransfersUsed  int
	MidSeasonTransfersUsed int
	TransfersUsed          int
	TransferHistory        []TransferHistoryEntry
	Points                 SquadPoints
	Version                int64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// SquadRole is a scoring role that multiplies post-assignment points.
type SquadRole string

const (
	SquadRoleNone        SquadRole = ""
	SquadRoleCaptain     SquadRole = "captain"
	SquadRoleViceCaptain SquadRole = "viceCaptain"
	SquadRoleXFactor     SquadRole = "xFactor"
)

func (r SquadRole) Multiplier() float64 {
	switch r {
	case SquadRoleCaptain:
		return 2.0
	case SquadRoleViceCaptain:
		return 1.5
	case SquadRoleXFactor:
		return 1.25
	default:
		return 1.0
	}
}

func (s Squad) ValidateBasic() error {
	if s.ID == "" {
		return fmt.Errorf("squad id is required")
	}
	if s.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if s.LeagueID == "" {
		return fmt.Errorf("league id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("squad name is required")
	}
	if s.BankedPoints < 0 {
		return fmt.Errorf("banked points cannot be negative")
	}

	return nil
}

// ValidateRoles checks that every assigned role sits in the main squad and
// that no player holds more than one role.
func (s Squad) ValidateRoles(squadSize int) error {
	seen := make(map[string]SquadRole, 3)
	for _, assignment := range []struct {
		role SquadRole
		id   string
	}{
		{SquadRoleCaptain, s.CaptainID},
		{SquadRoleViceCaptain, s.ViceCaptainID},
		{SquadRoleXFactor, s.XFactorID},
	} {
		if assignment.id == "" {
			continue
		}
		if other, dup := seen[assignment.id]; dup {
			return fmt.Errorf("%w: player %s holds both %s and %s", ErrRoleConflict, assignment.id, other, assignment.role)
		}
		seen[assignment.id] = assignment.role

		idx := s.IndexOf(assignment.id)
		if idx < 0 || idx >= squadSize {
			return fmt.Errorf("%w: %s %s must be in the main squad", ErrPlayerNotInSquad, assignment.role, assignment.id)
		}
	}

	return nil
}

// IndexOf returns the position of playerID in the combined player list or -1.
func (s Squad) IndexOf(playerID string) int {
	for i, entry := range s.Players {
		if entry.PlayerID == playerID {
			return i
		}
	}
	return -1
}

func (s Squad) InMainSquad(playerID string, squadSize int) bool {
	idx := s.IndexOf(playerID)
	return idx >= 0 && idx < squadSize
}

func (s Squad) RoleOf(playerID string) SquadRole {
	if playerID == "" {
		return SquadRoleNone
	}
	switch playerID {
	case s.CaptainID:
		return SquadRoleCaptain
	case s.ViceCaptainID:
		return SquadRoleViceCaptain
	case s.XFactorID:
		return SquadRoleXFactor
	default:
		return SquadRoleNone
	}
}

// BenchSize is the number of entries past the main squad.
func (s Squad) BenchSize(squadSize int) int {
	if len(s.Players) <= squadSize {
		return 0
	}
	return len(s.Players) - squadSize
}

func (s *Squad) setRoleHolder(role SquadRole, playerID string) {
	switch role {
	case SquadRoleCaptain:
		s.CaptainID = playerID
	case SquadRoleViceCaptain:
		s.ViceCaptainID = playerID
	case SquadRoleXFactor:
		s.XFactorID = playerID
	}
}

// Clone deep-copies the squad so transforms never alias the caller's slices.
func (s Squad) Clone() Squad {
	copied := s
	if s.Players != nil {
		copied.Players = make([]PlayerEntry, len(s.Players))
		for i, entry := range s.Players {
			copied.Players[i] = entry.clone()
		}
	}
	if s.TransferHistory != nil {
		copied.TransferHistory = make([]TransferHistoryEntry, len(s.TransferHistory))
		for i, entry := range s.TransferHistory {
			copied.TransferHistory[i] = entry.clone()
		}
	}
	return copied
}

func (e PlayerEntry) clone() PlayerEntry {
	copied := e
	if e.PointsWhenRoleAssigned != nil {
		v := *e.PointsWhenRoleAssigned
		copied.PointsWhenRoleAssigned = &v
	}
	return copied
}

func floatPtr(v float64) *float64 {
	return &v
}

package fantasy

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
)

var (
	ErrInvalidSquadSize       = errors.New("invalid squad size")
	ErrExceededTeamLimit      = errors.New("max players from same team exceeded")
	ErrInsufficientRoleMix    = errors.New("minimum role requirement not met")
	ErrUnknownPlayerRole      = errors.New("unknown player role")
	ErrDuplicatePlayerInSquad = errors.New("duplicate player in squad")
	ErrInvalidRoleSelection   = errors.New("invalid role selection")
)

// Rules stores squad composition parameters for the initial selection.
type Rules struct {
	SquadSize         int
	MaxPlayersPerTeam int
	MinByRole         map[player.Role]int
}

func DefaultRules() Rules {
	return Rules{
		SquadSize:         11,
		MaxPlayersPerTeam: 7,
		MinByRole: map[player.Role]int{
			player.RoleWicketkeeper: 1,
			player.RoleBatter:       3,
			player.RoleBowler:       3,
			player.RoleAllRounder:   1,
		},
	}
}

// RulesForSquadSize keeps the default composition minimums for any squad size
// large enough to hold them.
func RulesForSquadSize(squadSize int) Rules {
	rules := DefaultRules()
	rules.SquadSize = squadSize

	required := 0
	for _, minRequired := range rules.MinByRole {
		required += minRequired
	}
	if squadSize < required {
		rules.MinByRole = map[player.Role]int{}
	}
	if rules.MaxPlayersPerTeam > squadSize {
		rules.MaxPlayersPerTeam = squadSize
	}
	return rules
}

// SelectionPick is one player of an initial squad selection.
type SelectionPick struct {
	PlayerID string
	TeamID   string
	Role     player.Role
}

// Selection is the initial main squad plus the role holders chosen from it.
type Selection struct {
	Picks         []SelectionPick
	CaptainID     string
	ViceCaptainID string
	XFactorID     string
}

func ValidateSelection(selection Selection, rules Rules) error {
	picks := selection.Picks
	if len(picks) != rules.SquadSize {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidSquadSize, rules.SquadSize, len(picks))
	}

	teamCounter := make(map[string]int)
	roleCounter := make(map[player.Role]int)
	playerSet := make(map[string]struct{}, len(picks))

	for _, pick := range picks {
		if pick.PlayerID == "" {
			return fmt.Errorf("player id is required")
		}
		if _, exists := playerSet[pick.PlayerID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayerInSquad, pick.PlayerID)
		}
		playerSet[pick.PlayerID] = struct{}{}

		if _, ok := player.AllRoles[pick.Role]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPlayerRole, pick.Role)
		}
		if pick.TeamID == "" {
			return fmt.Errorf("team id is required for player %s", pick.PlayerID)
		}

		teamCounter[pick.TeamID]++
		if rules.MaxPlayersPerTeam > 0 && teamCounter[pick.TeamID] > rules.MaxPlayersPerTeam {
			return fmt.Errorf("%w: team=%s max=%d", ErrExceededTeamLimit, pick.TeamID, rules.MaxPlayersPerTeam)
		}

		roleCounter[pick.Role]++
	}

	for role, minRequired := range rules.MinByRole {
		if roleCounter[role] < minRequired {
			return fmt.Errorf("%w: role=%s min=%d current=%d", ErrInsufficientRoleMix, role, minRequired, roleCounter[role])
		}
	}

	if selection.CaptainID == "" || selection.ViceCaptainID == "" {
		return fmt.Errorf("%w: captain and vice captain are required", ErrInvalidRoleSelection)
	}
	holders := []string{selection.CaptainID, selection.ViceCaptainID}
	if selection.XFactorID != "" {
		holders = append(holders, selection.XFactorID)
	}
	seen := make(map[string]struct{}, len(holders))
	for _, id := range holders {
		if _, ok := playerSet[id]; !ok {
			return fmt.Errorf("%w: role holder %s is not in the selection", ErrInvalidRoleSelection, id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: player %s holds more than one role", ErrInvalidRoleSelection, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

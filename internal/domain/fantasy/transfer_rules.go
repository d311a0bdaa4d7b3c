package fantasy

import (
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
)

// TransferRequest is the raw transfer payload as submitted by a participant.
type TransferRequest struct {
	TransferType     TransferType
	ChangeType       ChangeType
	PlayerOut        string
	PlayerIn         string
	NewCaptainID     string
	NewViceCaptainID string
	NewXFactorID     string
}

// PlayerPool indexes the league pool by player id.
type PlayerPool map[string]player.Player

func NewPlayerPool(players []player.Player) PlayerPool {
	pool := make(PlayerPool, len(players))
	for _, p := range players {
		pool[p.ID] = p
	}
	return pool
}

// Substitution swaps PlayerOut for the pool player PlayerIn.
type Substitution struct {
	PlayerOut string
	PlayerIn  player.Player
}

// RoleReassignment hands Role to PlayerID.
type RoleReassignment struct {
	Role     SquadRole
	PlayerID string
}

// ApprovedTransfer is a transfer the validator accepted. It can only be built
// by ValidateTransfer and carries exactly one change variant.
type ApprovedTransfer struct {
	transferType TransferType
	substitution *Substitution
	reassignment *RoleReassignment
	stampPoints  float64
	at           time.Time
}

func (a ApprovedTransfer) TransferType() TransferType {
	return a.transferType
}

func (a ApprovedTransfer) ChangeType() ChangeType {
	if a.reassignment != nil {
		return ChangeTypeRoleReassignment
	}
	return ChangeTypePlayerSubstitution
}

func (a ApprovedTransfer) Substitution() (Substitution, bool) {
	if a.substitution == nil {
		return Substitution{}, false
	}
	return *a.substitution, true
}

func (a ApprovedTransfer) RoleReassignment() (RoleReassignment, bool) {
	if a.reassignment == nil {
		return RoleReassignment{}, false
	}
	return *a.reassignment, true
}

// StampPoints is the current pool points of the player receiving an entry or role.
func (a ApprovedTransfer) StampPoints() float64 {
	return a.stampPoints
}

func (a ApprovedTransfer) At() time.Time {
	return a.at
}

// ValidateTransfer decides whether req may be applied to squad. Rejections
// wrap one of the ErrorKind sentinels; the squad is never modified.
func ValidateTransfer(req TransferRequest, squad Squad, policy TransferPolicy, pool PlayerPool, now time.Time) (ApprovedTransfer, error) {
	switch req.TransferType {
	case TransferTypeBench, TransferTypeFlexible, TransferTypeMidSeason:
	default:
		return ApprovedTransfer{}, reject(ErrUnknownTransferType, "%q", req.TransferType)
	}
	switch req.ChangeType {
	case ChangeTypePlayerSubstitution, ChangeTypeRoleReassignment:
	default:
		return ApprovedTransfer{}, reject(ErrUnknownChangeType, "%q", req.ChangeType)
	}

	if req.TransferType == TransferTypeBench && req.ChangeType == ChangeTypeRoleReassignment {
		return ApprovedTransfer{}, ErrRoleReassignmentNotAllowedForBench
	}
	if !policy.enabled(req.TransferType) {
		return ApprovedTransfer{}, reject(ErrTransferTypeDisabled, "%s", req.TransferType)
	}
	if req.TransferType == TransferTypeMidSeason && !policy.Transfers.MidSeason.WindowOpen(now) {
		return ApprovedTransfer{}, reject(ErrTransferWindowClosed, "now=%s", now.UTC().Format(time.RFC3339))
	}
	if used, limit := squad.TransfersUsedFor(req.TransferType), policy.maxAllowed(req.TransferType); used >= limit {
		return ApprovedTransfer{}, reject(ErrTransferLimitExceeded, "%s used=%d max=%d", req.TransferType, used, limit)
	}

	if req.ChangeType == ChangeTypeRoleReassignment {
		return validateRoleReassignment(req, squad, policy, pool, now)
	}
	return validateSubstitution(req, squad, policy, pool, now)
}

func validateSubstitution(req TransferRequest, squad Squad, policy TransferPolicy, pool PlayerPool, now time.Time) (ApprovedTransfer, error) {
	if req.PlayerOut == "" {
		return ApprovedTransfer{}, reject(ErrPlayerNotInSquad, "playerOut is required")
	}

	outIdx := squad.IndexOf(req.PlayerOut)
	if req.TransferType == TransferTypeBench {
		if outIdx < 0 {
			return ApprovedTransfer{}, reject(ErrPlayerNotInSquad, "%s", req.PlayerOut)
		}
	} else {
		if outIdx < 0 || outIdx >= policy.SquadSize {
			return ApprovedTransfer{}, reject(ErrPlayerNotInSquad, "%s is not in the main squad", req.PlayerOut)
		}
		switch squad.RoleOf(req.PlayerOut) {
		case SquadRoleCaptain:
			return ApprovedTransfer{}, reject(ErrCaptainRemovalForbidden, "%s", req.PlayerOut)
		case SquadRoleViceCaptain:
			return ApprovedTransfer{}, reject(ErrViceCaptainRemovalForbidden, "%s", req.PlayerOut)
		}
	}

	if req.PlayerIn == "" {
		return ApprovedTransfer{}, reject(ErrPlayerNotInPool, "playerIn is required")
	}
	incoming, ok := pool[req.PlayerIn]
	if !ok {
		return ApprovedTransfer{}, reject(ErrPlayerNotInPool, "%s", req.PlayerIn)
	}
	if squad.IndexOf(req.PlayerIn) >= 0 {
		return ApprovedTransfer{}, reject(ErrPlayerAlreadyInSquad, "%s", req.PlayerIn)
	}

	// Only a main squad player moving down takes a new bench slot.
	if req.TransferType == TransferTypeBench && outIdx < policy.SquadSize {
		capacity := policy.SquadSize + policy.Transfers.Bench.BenchSlots
		if len(squad.Players) >= capacity {
			return ApprovedTransfer{}, reject(ErrBenchFull, "slots=%d", policy.Transfers.Bench.BenchSlots)
		}
	}

	return ApprovedTransfer{
		transferType: req.TransferType,
		substitution: &Substitution{PlayerOut: req.PlayerOut, PlayerIn: incoming},
		stampPoints:  incoming.Points,
		at:           now,
	}, nil
}

func validateRoleReassignment(req TransferRequest, squad Squad, policy TransferPolicy, pool PlayerPool, now time.Time) (ApprovedTransfer, error) {
	if req.NewCaptainID != "" {
		return ApprovedTransfer{}, ErrCaptainReassignmentNotSupported
	}

	var reassignment RoleReassignment
	switch {
	case req.NewViceCaptainID != "" && req.NewXFactorID != "":
		return ApprovedTransfer{}, ErrMustSelectExactlyOneRole
	case req.NewViceCaptainID != "":
		reassignment = RoleReassignment{Role: SquadRoleViceCaptain, PlayerID: req.NewViceCaptainID}
	case req.NewXFactorID != "":
		reassignment = RoleReassignment{Role: SquadRoleXFactor, PlayerID: req.NewXFactorID}
	default:
		return ApprovedTransfer{}, ErrNoRoleSelected
	}

	idx := squad.IndexOf(reassignment.PlayerID)
	if idx < 0 || idx >= policy.SquadSize {
		return ApprovedTransfer{}, reject(ErrPlayerNotInSquad, "%s is not in the main squad", reassignment.PlayerID)
	}
	if held := squad.RoleOf(reassignment.PlayerID); held != SquadRoleNone {
		return ApprovedTransfer{}, reject(ErrRoleConflict, "%s already holds %s", reassignment.PlayerID, held)
	}

	stamp := squad.Players[idx].Points
	if current, ok := pool[reassignment.PlayerID]; ok {
		stamp = current.Points
	}

	return ApprovedTransfer{
		transferType: req.TransferType,
		reassignment: &reassignment,
		stampPoints:  stamp,
		at:           now,
	}, nil
}

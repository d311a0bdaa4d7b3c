package fantasy

// ApplyTransfer returns the squad that results from an approved transfer. The
// input squad is left untouched.
func ApplyTransfer(squad Squad, approved ApprovedTransfer, squadSize int) Squad {
	next := squad.Clone()
	entry := TransferHistoryEntry{
		Timestamp:    approved.At(),
		TransferType: approved.TransferType(),
		ChangeType:   approved.ChangeType(),
	}

	if sub, ok := approved.Substitution(); ok {
		entry.Released = applySubstitution(&next, approved.TransferType(), sub, approved.StampPoints(), squadSize)
		entry.PlayerOut = sub.PlayerOut
		entry.PlayerIn = sub.PlayerIn.ID
	} else if reassign, ok := approved.RoleReassignment(); ok {
		applyRoleReassignment(&next, reassign, approved.StampPoints())
		switch reassign.Role {
		case SquadRoleViceCaptain:
			entry.NewViceCaptainID = reassign.PlayerID
		case SquadRoleXFactor:
			entry.NewXFactorID = reassign.PlayerID
		}
	} else {
		return next
	}

	next.TransferHistory = append(next.TransferHistory, entry)
	next.addTransfersUsed(approved.TransferType(), 1)
	return next
}

// applySubstitution writes playerIn into playerOut's slot. A main squad player
// leaving through a bench transfer moves to the end of the bench; a bench
// player leaving goes back to the pool and its entry is returned.
func applySubstitution(squad *Squad, transferType TransferType, sub Substitution, stamp float64, squadSize int) *PlayerEntry {
	idx := squad.IndexOf(sub.PlayerOut)
	if idx < 0 {
		return nil
	}
	outgoing := squad.Players[idx]

	incoming := PlayerEntry{
		PlayerID:        sub.PlayerIn.ID,
		TeamID:          sub.PlayerIn.TeamID,
		Role:            sub.PlayerIn.Role,
		Points:          stamp,
		PointsAtJoining: stamp,
	}
	if role := squad.RoleOf(sub.PlayerOut); role != SquadRoleNone {
		squad.setRoleHolder(role, incoming.PlayerID)
		incoming.PointsWhenRoleAssigned = floatPtr(stamp)
	}
	squad.Players[idx] = incoming

	if transferType != TransferTypeBench {
		return nil
	}
	if idx < squadSize {
		squad.Players = append(squad.Players, outgoing)
		return nil
	}
	released := outgoing.clone()
	return &released
}

func applyRoleReassignment(squad *Squad, reassign RoleReassignment, stamp float64) {
	idx := squad.IndexOf(reassign.PlayerID)
	if idx < 0 {
		return
	}
	squad.setRoleHolder(reassign.Role, reassign.PlayerID)
	squad.Players[idx].PointsWhenRoleAssigned = floatPtr(stamp)
}

package fantasy

import (
	"fmt"
	"time"
)

// ReverseTransfer undoes the history entry at historyIndex. It either returns
// the fully restored squad or a ReversalError with the input left unmodified.
func ReverseTransfer(squad Squad, historyIndex int, squadSize int, now time.Time) (Squad, error) {
	if historyIndex < 0 || historyIndex >= len(squad.TransferHistory) {
		return Squad{}, fmt.Errorf("%w: index=%d entries=%d", ErrHistoryEntryNotFound, historyIndex, len(squad.TransferHistory))
	}
	entry := squad.TransferHistory[historyIndex]
	if entry.IsReversalMarker() {
		return Squad{}, fmt.Errorf("%w: index=%d is an admin reversal marker", ErrEntryNotReversible, historyIndex)
	}

	switch entry.ChangeType {
	case ChangeTypeRoleReassignment:
		return Squad{}, fmt.Errorf("%w: index=%d", ErrManualReassignmentRequired, historyIndex)
	case ChangeTypePlayerSubstitution:
	default:
		return Squad{}, fmt.Errorf("%w: index=%d change type %q", ErrEntryNotReversible, historyIndex, entry.ChangeType)
	}

	next := squad.Clone()
	if err := restoreSubstitution(&next, entry); err != nil {
		return Squad{}, fmt.Errorf("%w: index=%d", err, historyIndex)
	}
	if err := next.ValidateRoles(squadSize); err != nil {
		return Squad{}, fmt.Errorf("%w: index=%d restoring would break roles: %v", ErrEntryNotReversible, historyIndex, err)
	}

	next.addTransfersUsed(entry.TransferType, -1)
	next.TransferHistory = append(next.TransferHistory[:historyIndex], next.TransferHistory[historyIndex+1:]...)
	next.TransferHistory = append(next.TransferHistory, TransferHistoryEntry{
		Timestamp:    now,
		TransferType: TransferTypeAdminReversal,
		ChangeType:   ChangeTypeAdminReversal,
		PlayerOut:    entry.PlayerIn,
		PlayerIn:     entry.PlayerOut,
		Note:         fmt.Sprintf("reversed history entry %d (%s %s)", historyIndex, entry.TransferType, entry.ChangeType),
	})
	return next, nil
}

// restoreSubstitution puts PlayerOut back into the slot PlayerIn holds and
// hands any role held by PlayerIn back to it.
func restoreSubstitution(squad *Squad, entry TransferHistoryEntry) error {
	inIdx := squad.IndexOf(entry.PlayerIn)
	if inIdx < 0 {
		return fmt.Errorf("%w: %s", ErrIncomingPlayerNotInSquad, entry.PlayerIn)
	}
	outIdx := squad.IndexOf(entry.PlayerOut)
	if outIdx < 0 {
		if entry.TransferType == TransferTypeBench && entry.Released != nil && entry.Released.PlayerID == entry.PlayerOut {
			if squad.RoleOf(entry.PlayerIn) != SquadRoleNone {
				return fmt.Errorf("%w: %s holds a role", ErrEntryNotReversible, entry.PlayerIn)
			}
			squad.Players[inIdx] = entry.Released.clone()
			return nil
		}
		return fmt.Errorf("%w: %s left the squad with a %s transfer", ErrOriginalPlayerDataUnavailable, entry.PlayerOut, entry.TransferType)
	}

	original := squad.Players[outIdx]
	players := make([]PlayerEntry, 0, len(squad.Players))
	players = append(players, squad.Players[:outIdx]...)
	players = append(players, squad.Players[outIdx+1:]...)
	if outIdx < inIdx {
		inIdx--
	}
	players[inIdx] = original
	squad.Players = players

	if role := squad.RoleOf(entry.PlayerIn); role != SquadRoleNone {
		squad.setRoleHolder(role, entry.PlayerOut)
	}
	return nil
}

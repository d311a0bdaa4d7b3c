package fantasy

import (
	"errors"
	"fmt"
)

// ErrorKind names why a transfer request was rejected. The values are part of
// the API contract and surface as the error reason over HTTP.
type ErrorKind string

const (
	KindCaptainRemovalForbidden            ErrorKind = "CaptainRemovalForbidden"
	KindViceCaptainRemovalForbidden        ErrorKind = "ViceCaptainRemovalForbidden"
	KindRoleReassignmentNotAllowedForBench ErrorKind = "RoleReassignmentNotAllowedForBench"
	KindMustSelectExactlyOneRole           ErrorKind = "MustSelectExactlyOneRole"
	KindNoRoleSelected                     ErrorKind = "NoRoleSelected"
	KindCaptainReassignmentNotSupported    ErrorKind = "CaptainReassignmentNotSupported"
	KindPlayerNotInSquad                   ErrorKind = "PlayerNotInSquad"
	KindPlayerAlreadyInSquad               ErrorKind = "PlayerAlreadyInSquad"
	KindTransferLimitExceeded              ErrorKind = "TransferLimitExceeded"
	KindTransferWindowClosed               ErrorKind = "TransferWindowClosed"
	KindTransferTypeDisabled               ErrorKind = "TransferTypeDisabled"
	KindUnknownTransferType                ErrorKind = "UnknownTransferType"
	KindUnknownChangeType                  ErrorKind = "UnknownChangeType"
	KindPlayerNotInPool                    ErrorKind = "PlayerNotInPool"
	KindBenchFull                          ErrorKind = "BenchFull"
	KindRoleConflict                       ErrorKind = "RoleConflict"
)

// TransferError is a rejection raised by the transfer validator.
type TransferError struct {
	Kind ErrorKind
	Msg  string
}

func (e *TransferError) Error() string {
	if e.Msg == "" {
		return string(e.Kind)
	}
	return e.Msg
}

// Is matches any TransferError carrying the same kind.
func (e *TransferError) Is(target error) bool {
	t, ok := target.(*TransferError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newTransferError(kind ErrorKind, msg string) *TransferError {
	return &TransferError{Kind: kind, Msg: msg}
}

var (
	ErrCaptainRemovalForbidden            = newTransferError(KindCaptainRemovalForbidden, "captain cannot be removed with this transfer type")
	ErrViceCaptainRemovalForbidden        = newTransferError(KindViceCaptainRemovalForbidden, "vice captain cannot be removed with this transfer type")
	ErrRoleReassignmentNotAllowedForBench = newTransferError(KindRoleReassignmentNotAllowedForBench, "role reassignment is not allowed for bench transfers")
	ErrMustSelectExactlyOneRole           = newTransferError(KindMustSelectExactlyOneRole, "select exactly one role to reassign")
	ErrNoRoleSelected                     = newTransferError(KindNoRoleSelected, "no role selected for reassignment")
	ErrCaptainReassignmentNotSupported    = newTransferError(KindCaptainReassignmentNotSupported, "captain reassignment is not supported")
	ErrPlayerNotInSquad                   = newTransferError(KindPlayerNotInSquad, "player is not in squad")
	ErrPlayerAlreadyInSquad               = newTransferError(KindPlayerAlreadyInSquad, "player is already in squad")
	ErrTransferLimitExceeded              = newTransferError(KindTransferLimitExceeded, "transfer limit exceeded")
	ErrTransferWindowClosed               = newTransferError(KindTransferWindowClosed, "transfer window is closed")
	ErrTransferTypeDisabled               = newTransferError(KindTransferTypeDisabled, "transfer type is disabled")
	ErrUnknownTransferType                = newTransferError(KindUnknownTransferType, "unknown transfer type")
	ErrUnknownChangeType                  = newTransferError(KindUnknownChangeType, "unknown change type")
	ErrPlayerNotInPool                    = newTransferError(KindPlayerNotInPool, "player is not in the league pool")
	ErrBenchFull                          = newTransferError(KindBenchFull, "no free bench slot")
	ErrRoleConflict                       = newTransferError(KindRoleConflict, "player already holds a role")
)

// RejectionKind reports the transfer rejection kind carried by err.
func RejectionKind(err error) (ErrorKind, bool) {
	var transferErr *TransferError
	if errors.As(err, &transferErr) {
		return transferErr.Kind, true
	}
	return "", false
}

func reject(sentinel *TransferError, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
}

// ReversalErrorKind names why a history entry could not be reversed.
type ReversalErrorKind string

const (
	KindOriginalPlayerDataUnavailable ReversalErrorKind = "OriginalPlayerDataUnavailable"
	KindManualReassignmentRequired    ReversalErrorKind = "ManualReassignmentRequired"
	KindHistoryEntryNotFound          ReversalErrorKind = "HistoryEntryNotFound"
	KindEntryNotReversible            ReversalErrorKind = "EntryNotReversible"
	KindIncomingPlayerNotInSquad      ReversalErrorKind = "IncomingPlayerNotInSquad"
)

// ReversalError is a terminal failure of the reversal engine.
type ReversalError struct {
	Kind ReversalErrorKind
	Msg  string
}

func (e *ReversalError) Error() string {
	if e.Msg == "" {
		return string(e.Kind)
	}
	return e.Msg
}

func (e *ReversalError) Is(target error) bool {
	t, ok := target.(*ReversalError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrOriginalPlayerDataUnavailable = &ReversalError{Kind: KindOriginalPlayerDataUnavailable, Msg: "original player data unavailable"}
	ErrManualReassignmentRequired    = &ReversalError{Kind: KindManualReassignmentRequired, Msg: "role reassignment must be reverted manually"}
	ErrHistoryEntryNotFound          = &ReversalError{Kind: KindHistoryEntryNotFound, Msg: "history entry not found"}
	ErrEntryNotReversible            = &ReversalError{Kind: KindEntryNotReversible, Msg: "history entry is not reversible"}
	ErrIncomingPlayerNotInSquad      = &ReversalError{Kind: KindIncomingPlayerNotInSquad, Msg: "incoming player is no longer in squad"}
)

// ReversalKind reports the reversal failure kind carried by err.
func ReversalKind(err error) (ReversalErrorKind, bool) {
	var reversalErr *ReversalError
	if errors.As(err, &reversalErr) {
		return reversalErr.Kind, true
	}
	return "", false
}

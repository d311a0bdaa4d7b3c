package fantasy

import (
	"fmt"
	"time"
)

type TransferType string

const (
	TransferTypeBench         TransferType = "bench"
	TransferTypeFlexible      TransferType = "flexible"
	TransferTypeMidSeason     TransferType = "midSeason"
	TransferTypeAdminReversal TransferType = "admin_reversal"
)

type ChangeType string

const (
	ChangeTypePlayerSubstitution ChangeType = "playerSubstitution"
	ChangeTypeRoleReassignment   ChangeType = "roleReassignment"
	ChangeTypeAdminReversal      ChangeType = "admin_reversal"
)

// TransferHistoryEntry is one record of the squad's append-only transfer log.
// The JSON shape is a storage contract: optional fields are omitted when unset.
type TransferHistoryEntry struct {
	Timestamp        time.Time    `json:"timestamp"`
	TransferType     TransferType `json:"transferType"`
	ChangeType       ChangeType   `json:"changeType"`
	PlayerOut        string       `json:"playerOut,omitempty"`
	PlayerIn         string       `json:"playerIn,omitempty"`
	NewViceCaptainID string       `json:"newViceCaptainId,omitempty"`
	NewXFactorID     string       `json:"newXFactorId,omitempty"`
	Note             string       `json:"note,omitempty"`
	// Released is the bench entry a bench substitution sent back to the pool.
	Released         *PlayerEntry `json:"released,omitempty"`
}

func (e TransferHistoryEntry) IsReversalMarker() bool {
	return e.TransferType == TransferTypeAdminReversal || e.ChangeType == ChangeTypeAdminReversal
}

// Validate checks the shape of a stored entry.
func (e TransferHistoryEntry) Validate() error {
	switch e.TransferType {
	case TransferTypeBench, TransferTypeFlexible, TransferTypeMidSeason, TransferTypeAdminReversal:
	default:
		return fmt.Errorf("unknown transfer type %q", e.TransferType)
	}

	switch e.ChangeType {
	case ChangeTypePlayerSubstitution:
		if e.PlayerOut == "" || e.PlayerIn == "" {
			return fmt.Errorf("player substitution requires playerOut and playerIn")
		}
	case ChangeTypeRoleReassignment:
		if (e.NewViceCaptainID == "") == (e.NewXFactorID == "") {
			return fmt.Errorf("role reassignment requires exactly one of newViceCaptainId and newXFactorId")
		}
	case ChangeTypeAdminReversal:
	default:
		return fmt.Errorf("unknown change type %q", e.ChangeType)
	}

	if e.IsReversalMarker() && (e.TransferType != TransferTypeAdminReversal || e.ChangeType != ChangeTypeAdminReversal) {
		return fmt.Errorf("reversal marker must use admin_reversal for both types")
	}

	return nil
}

func (e TransferHistoryEntry) clone() TransferHistoryEntry {
	copied := e
	if e.Released != nil {
		released := e.Released.clone()
		copied.Released = &released
	}
	return copied
}

type BenchConfig struct {
	Enabled    bool
	MaxAllowed int
	BenchSlots int
}

type FlexibleConfig struct {
	Enabled    bool
	MaxAllowed int
}

type MidSeasonConfig struct {
	Enabled     bool
	MaxAllowed  int
	WindowStart time.Time
	WindowEnd   time.Time
}

// WindowOpen reports whether now falls inside the inclusive mid-season window.
func (c MidSeasonConfig) WindowOpen(now time.Time) bool {
	if c.WindowStart.IsZero() || c.WindowEnd.IsZero() {
		return false
	}
	return !now.Before(c.WindowStart) && !now.After(c.WindowEnd)
}

// TransferTypeConfig is the per-league transfer policy.
type TransferTypeConfig struct {
	Bench     BenchConfig
	Flexible  FlexibleConfig
	MidSeason MidSeasonConfig
}

func (c TransferTypeConfig) Validate() error {
	if c.Bench.MaxAllowed < 0 || c.Flexible.MaxAllowed < 0 || c.MidSeason.MaxAllowed < 0 {
		return fmt.Errorf("transfer limits cannot be negative")
	}
	if c.Bench.BenchSlots < 0 {
		return fmt.Errorf("bench slots cannot be negative")
	}
	if c.MidSeason.Enabled {
		if c.MidSeason.WindowStart.IsZero() || c.MidSeason.WindowEnd.IsZero() {
			return fmt.Errorf("mid-season window is required when mid-season transfers are enabled")
		}
		if c.MidSeason.WindowEnd.Before(c.MidSeason.WindowStart) {
			return fmt.Errorf("mid-season window end must not be before start")
		}
	}
	return nil
}

// TransferPolicy is the slice of league settings the transfer engine reads.
type TransferPolicy struct {
	SquadSize int
	Transfers TransferTypeConfig
}

func (p TransferPolicy) enabled(t TransferType) bool {
	switch t {
	case TransferTypeBench:
		return p.Transfers.Bench.Enabled
	case TransferTypeFlexible:
		return p.Transfers.Flexible.Enabled
	case TransferTypeMidSeason:
		return p.Transfers.MidSeason.Enabled
	default:
		return false
	}
}

func (p TransferPolicy) maxAllowed(t TransferType) int {
	switch t {
	case TransferTypeBench:
		return p.Transfers.Bench.MaxAllowed
	case TransferTypeFlexible:
		return p.Transfers.Flexible.MaxAllowed
	case TransferTypeMidSeason:
		return p.Transfers.MidSeason.MaxAllowed
	default:
		return 0
	}
}

// TransfersUsedFor returns the per-type counter for t.
func (s Squad) TransfersUsedFor(t TransferType) int {
	switch t {
	case TransferTypeBench:
		return s.BenchTransfersUsed
	case TransferTypeFlexible:
		return s.FlexibleTransfersUsed
	case TransferTypeMidSeason:
		return s.MidSeasonTransfersUsed
	default:
		return 0
	}
}

func (s *Squad) addTransfersUsed(t TransferType, delta int) {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		return v
	}
	switch t {
	case TransferTypeBench:
		s.BenchTransfersUsed = clamp(s.BenchTransfersUsed + delta)
	case TransferTypeFlexible:
		s.FlexibleTransfersUsed = clamp(s.FlexibleTransfersUsed + delta)
	case TransferTypeMidSeason:
		s.MidSeasonTransfersUsed = clamp(s.MidSeasonTransfersUsed + delta)
	default:
		return
	}
	s.TransfersUsed = clamp(s.TransfersUsed + delta)
}

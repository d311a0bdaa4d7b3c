package league

import (
	"fmt"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
)

// League is a fantasy competition with its own pool, squad size and
// transfer policy.
type League struct {
	ID          string
	Name        string
	CountryCode string
	Season      string
	IsDefault   bool
	SquadSize   int
	Transfers   fantasy.TransferTypeConfig
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Season == "" {
		return fmt.Errorf("league season is required")
	}
	if l.SquadSize <= 0 {
		return fmt.Errorf("league squad size must be greater than zero")
	}
	if err := l.Transfers.Validate(); err != nil {
		return fmt.Errorf("league transfer config: %w", err)
	}

	return nil
}

// TransferPolicy returns the settings the transfer engine evaluates.
func (l League) TransferPolicy() fantasy.TransferPolicy {
	return fantasy.TransferPolicy{SquadSize: l.SquadSize, Transfers: l.Transfers}
}

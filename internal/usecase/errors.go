package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("conflict")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// wrapRepoErr tags storage failures with the usecase sentinel callers map on.
func wrapRepoErr(op string, err error) error {
	switch {
	case errors.Is(err, resilience.ErrCircuitOpen):
		return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, op, err)
	case errors.Is(err, fantasy.ErrSquadVersionConflict):
		return fmt.Errorf("%w: %s: %w", ErrConflict, op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

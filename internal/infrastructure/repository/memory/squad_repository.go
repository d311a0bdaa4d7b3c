package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
)

// SquadRepository stores deep copies and enforces Squad.Version on Save.
type SquadRepository struct {
	mu     sync.RWMutex
	items  map[string]fantasy.Squad
	byUser map[string]string
	now    func() time.Time
}

func NewSquadRepository() *SquadRepository {
	return &SquadRepository{
		items:  make(map[string]fantasy.Squad),
		byUser: make(map[string]string),
		now:    time.Now,
	}
}

func (r *SquadRepository) GetByID(_ context.Context, squadID string) (fantasy.Squad, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	squad, ok := r.items[squadID]
	if !ok {
		return fantasy.Squad{}, false, nil
	}
	return squad.Clone(), true, nil
}

func (r *SquadRepository) GetByUserAndLeague(_ context.Context, userID, leagueID string) (fantasy.Squad, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	squadID, ok := r.byUser[squadKey(userID, leagueID)]
	if !ok {
		return fantasy.Squad{}, false, nil
	}
	return r.items[squadID].Clone(), true, nil
}

func (r *SquadRepository) ListByLeague(_ context.Context, leagueID string) ([]fantasy.Squad, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.Squad, 0)
	for _, squad := range r.items {
		if squad.LeagueID == leagueID {
			out = append(out, squad.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Save inserts a squad with Version 0 or replaces one whose Version matches
// the stored copy. The returned squad carries the bumped Version.
func (r *SquadRepository) Save(_ context.Context, squad fantasy.Squad) (fantasy.Squad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	stored, exists := r.items[squad.ID]
	switch {
	case !exists && squad.Version != 0:
		return fantasy.Squad{}, fantasy.ErrSquadVersionConflict
	case !exists:
		key := squadKey(squad.UserID, squad.LeagueID)
		if _, taken := r.byUser[key]; taken {
			return fantasy.Squad{}, fantasy.ErrSquadVersionConflict
		}
		r.byUser[key] = squad.ID
		squad.CreatedAt = now
	case stored.Version != squad.Version:
		return fantasy.Squad{}, fantasy.ErrSquadVersionConflict
	default:
		squad.CreatedAt = stored.CreatedAt
	}

	squad.Version++
	squad.UpdatedAt = now
	r.items[squad.ID] = squad.Clone()
	return squad.Clone(), nil
}

func squadKey(userID, leagueID string) string {
	return userID + "::" + leagueID
}

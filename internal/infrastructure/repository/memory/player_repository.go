package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
)

// PlayerRepository keeps each league pool in insertion order.
type PlayerRepository struct {
	mu       sync.RWMutex
	byLeague map[string][]player.Player
	index    map[string]map[string]int
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{
		byLeague: make(map[string][]player.Player),
		index:    make(map[string]map[string]int),
	}
	for _, p := range players {
		if _, ok := r.index[p.LeagueID]; !ok {
			r.index[p.LeagueID] = make(map[string]int)
		}
		if pos, exists := r.index[p.LeagueID][p.ID]; exists {
			r.byLeague[p.LeagueID][pos] = p
			continue
		}
		r.index[p.LeagueID][p.ID] = len(r.byLeague[p.LeagueID])
		r.byLeague[p.LeagueID] = append(r.byLeague[p.LeagueID], p)
	}
	return r
}

func (r *PlayerRepository) ListByLeague(_ context.Context, leagueID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]player.Player(nil), r.byLeague[leagueID]...), nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, leagueID string, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index := r.index[leagueID]
	pool := r.byLeague[leagueID]
	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if pos, ok := index[id]; ok {
			out = append(out, pool[pos])
		}
	}
	return out, nil
}

func (r *PlayerRepository) GetCurrentPoints(_ context.Context, leagueID, playerID string) (float64, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[leagueID][playerID]
	if !ok {
		return 0, false, nil
	}
	return r.byLeague[leagueID][pos].Points, true, nil
}

// UpdatePoints applies the whole batch or nothing.
func (r *PlayerRepository) UpdatePoints(_ context.Context, leagueID string, updates []player.PointsUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.index[leagueID]
	for _, u := range updates {
		if _, ok := index[u.PlayerID]; !ok {
			return fmt.Errorf("player %s not found in league %s", u.PlayerID, leagueID)
		}
	}
	for _, u := range updates {
		r.byLeague[leagueID][index[u.PlayerID]].Points = u.Points
	}
	return nil
}

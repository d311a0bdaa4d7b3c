package postgres

import (
	"database/sql"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
)

type squadTableModel struct {
	ID                     int64          `db:"id"`
	PublicID               string         `db:"public_id"`
	UserID                 string         `db:"user_id"`
	LeagueID               string         `db:"league_public_id"`
	Name                   string         `db:"name"`
	CaptainID              sql.NullString `db:"captain_public_id"`
	ViceCaptainID          sql.NullString `db:"vice_captain_public_id"`
	XFactorID              sql.NullString `db:"x_factor_public_id"`
	BankedPoints           float64        `db:"banked_points"`
	BenchTransfersUsed     int            `db:"bench_transfers_used"`
	FlexibleTransfersUsed  int            `db:"flexible_transfers_used"`
	MidSeasonTransfersUsed int            `db:"mid_season_transfers_used"`
	TransfersUsed          int            `db:"transfers_used"`
	Players                []byte         `db:"players"`
	TransferHistory        []byte         `db:"transfer_history"`
	TotalPoints            float64        `db:"total_points"`
	CaptainPoints          float64        `db:"captain_points"`
	ViceCaptainPoints      float64        `db:"vice_captain_points"`
	XFactorPoints          float64        `db:"x_factor_points"`
	Version                int64          `db:"version"`
	CreatedAt              time.Time      `db:"created_at"`
	UpdatedAt              time.Time      `db:"updated_at"`
	DeletedAt              *time.Time     `db:"deleted_at"`
}

// squadPlayerDocument is the JSONB shape of one entry in fantasy_squads.players.
type squadPlayerDocument struct {
	PlayerID               string   `json:"playerId"`
	TeamID                 string   `json:"teamId"`
	Role                   string   `json:"role"`
	Points                 float64  `json:"points"`
	PointsAtJoining        float64  `json:"pointsAtJoining"`
	PointsWhenRoleAssigned *float64 `json:"pointsWhenRoleAssigned,omitempty"`
}

func encodePlayers(entries []fantasy.PlayerEntry) ([]byte, error) {
	docs := make([]squadPlayerDocument, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, squadPlayerDocument{
			PlayerID:               e.PlayerID,
			TeamID:                 e.TeamID,
			Role:                   string(e.Role),
			Points:                 e.Points,
			PointsAtJoining:        e.PointsAtJoining,
			PointsWhenRoleAssigned: e.PointsWhenRoleAssigned,
		})
	}
	raw, err := sonic.Marshal(docs)
	if err != nil {
		return nil, crerr.Wrap(err, "encode squad players")
	}
	return raw, nil
}

func decodePlayers(raw []byte) ([]fantasy.PlayerEntry, error) {
	if len(raw) == 0 {
		return []fantasy.PlayerEntry{}, nil
	}
	var docs []squadPlayerDocument
	if err := sonic.Unmarshal(raw, &docs); err != nil {
		return nil, crerr.Wrap(err, "decode squad players")
	}
	out := make([]fantasy.PlayerEntry, 0, len(docs))
	for _, d := range docs {
		out = append(out, fantasy.PlayerEntry{
			PlayerID:               d.PlayerID,
			TeamID:                 d.TeamID,
			Role:                   player.Role(d.Role),
			Points:                 d.Points,
			PointsAtJoining:        d.PointsAtJoining,
			PointsWhenRoleAssigned: d.PointsWhenRoleAssigned,
		})
	}
	return out, nil
}

func encodeHistory(entries []fantasy.TransferHistoryEntry) ([]byte, error) {
	if entries == nil {
		entries = []fantasy.TransferHistoryEntry{}
	}
	raw, err := sonic.Marshal(entries)
	if err != nil {
		return nil, crerr.Wrap(err, "encode transfer history")
	}
	return raw, nil
}

func decodeHistory(raw []byte) ([]fantasy.TransferHistoryEntry, error) {
	if len(raw) == 0 {
		return []fantasy.TransferHistoryEntry{}, nil
	}
	var out []fantasy.TransferHistoryEntry
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, crerr.Wrap(err, "decode transfer history")
	}
	for i := range out {
		out[i].Timestamp = out[i].Timestamp.UTC()
	}
	return out, nil
}

func (m squadTableModel) toDomain() (fantasy.Squad, error) {
	players, err := decodePlayers(m.Players)
	if err != nil {
		return fantasy.Squad{}, crerr.Wrapf(err, "squad=%s", m.PublicID)
	}
	history, err := decodeHistory(m.TransferHistory)
	if err != nil {
		return fantasy.Squad{}, crerr.Wrapf(err, "squad=%s", m.PublicID)
	}

	return fantasy.Squad{
		ID:                     m.PublicID,
		UserID:                 m.UserID,
		LeagueID:               m.LeagueID,
		Name:                   m.Name,
		Players:                players,
		CaptainID:              nullStringToString(m.CaptainID),
		ViceCaptainID:          nullStringToString(m.ViceCaptainID),
		XFactorID:              nullStringToString(m.XFactorID),
		BankedPoints:           m.BankedPoints,
		BenchTransfersUsed:     m.BenchTransfersUsed,
		FlexibleTransfersUsed:  m.FlexibleTransfersUsed,
		MidSeasonTransfersUsed: m.MidSeasonTransfersUsed,
		TransfersUsed:          m.TransfersUsed,
		TransferHistory:        history,
		Points: fantasy.SquadPoints{
			TotalPoints:       m.TotalPoints,
			CaptainPoints:     m.CaptainPoints,
			ViceCaptainPoints: m.ViceCaptainPoints,
			XFactorPoints:     m.XFactorPoints,
		},
		Version:   m.Version,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}, nil
}

// squadWriteArgs returns the named arguments shared by insert and update.
func squadWriteArgs(squad fantasy.Squad) (map[string]any, error) {
	players, err := encodePlayers(squad.Players)
	if err != nil {
		return nil, err
	}
	history, err := encodeHistory(squad.TransferHistory)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"public_id":                 squad.ID,
		"user_id":                   squad.UserID,
		"league_public_id":          squad.LeagueID,
		"name":                      squad.Name,
		"captain_public_id":         stringToNullString(squad.CaptainID),
		"vice_captain_public_id":    stringToNullString(squad.ViceCaptainID),
		"x_factor_public_id":        stringToNullString(squad.XFactorID),
		"banked_points":             squad.BankedPoints,
		"bench_transfers_used":      squad.BenchTransfersUsed,
		"flexible_transfers_used":   squad.FlexibleTransfersUsed,
		"mid_season_transfers_used": squad.MidSeasonTransfersUsed,
		"transfers_used":            squad.TransfersUsed,
		"players":                   string(players),
		"transfer_history":          string(history),
		"total_points":              squad.Points.TotalPoints,
		"captain_points":            squad.Points.CaptainPoints,
		"vice_captain_points":       squad.Points.ViceCaptainPoints,
		"x_factor_points":           squad.Points.XFactorPoints,
		"version":                   squad.Version,
	}, nil
}

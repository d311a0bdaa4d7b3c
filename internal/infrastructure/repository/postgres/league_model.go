package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
)

type leagueTableModel struct {
	ID                   int64        `db:"id"`
	PublicID             string       `db:"public_id"`
	Name                 string       `db:"name"`
	CountryCode          string       `db:"country_code"`
	Season               string       `db:"season"`
	IsDefault            bool         `db:"is_default"`
	SquadSize            int          `db:"squad_size"`
	BenchEnabled         bool         `db:"bench_enabled"`
	BenchMaxAllowed      int          `db:"bench_max_allowed"`
	BenchSlots           int          `db:"bench_slots"`
	FlexibleEnabled      bool         `db:"flexible_enabled"`
	FlexibleMaxAllowed   int          `db:"flexible_max_allowed"`
	MidSeasonEnabled     bool         `db:"mid_season_enabled"`
	MidSeasonMaxAllowed  int          `db:"mid_season_max_allowed"`
	MidSeasonWindowStart sql.NullTime `db:"mid_season_window_start"`
	MidSeasonWindowEnd   sql.NullTime `db:"mid_season_window_end"`
	CreatedAt            time.Time    `db:"created_at"`
	UpdatedAt            time.Time    `db:"updated_at"`
	DeletedAt            *time.Time   `db:"deleted_at"`
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:          m.PublicID,
		Name:        m.Name,
		CountryCode: m.CountryCode,
		Season:      m.Season,
		IsDefault:   m.IsDefault,
		SquadSize:   m.SquadSize,
		Transfers: fantasy.TransferTypeConfig{
			Bench: fantasy.BenchConfig{
				Enabled:    m.BenchEnabled,
				MaxAllowed: m.BenchMaxAllowed,
				BenchSlots: m.BenchSlots,
			},
			Flexible: fantasy.FlexibleConfig{
				Enabled:    m.FlexibleEnabled,
				MaxAllowed: m.FlexibleMaxAllowed,
			},
			MidSeason: fantasy.MidSeasonConfig{
				Enabled:     m.MidSeasonEnabled,
				MaxAllowed:  m.MidSeasonMaxAllowed,
				WindowStart: nullTimeToTime(m.MidSeasonWindowStart),
				WindowEnd:   nullTimeToTime(m.MidSeasonWindowEnd),
			},
		},
	}
}

package httpapi

import (
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

type joinLeagueRequest struct {
	UserID    string `json:"user_id" validate:"required,max=100"`
	SquadName string `json:"squad_name" validate:"required,max=100"`
}

type selectSquadRequest struct {
	PlayerIDs     []string `json:"player_ids" validate:"required,min=1,dive,required"`
	CaptainID     string   `json:"captain_id" validate:"required"`
	ViceCaptainID string   `json:"vice_captain_id" validate:"required"`
	XFactorID     string   `json:"x_factor_id" validate:"omitempty"`
}

type submitTransferRequest struct {
	TransferType     string `json:"transfer_type" validate:"required"`
	ChangeType       string `json:"change_type" validate:"required"`
	PlayerOut        string `json:"player_out"`
	PlayerIn         string `json:"player_in"`
	NewCaptainID     string `json:"new_captain_id"`
	NewViceCaptainID string `json:"new_vice_captain_id"`
	NewXFactorID     string `json:"new_x_factor_id"`
}

type adjustBankedPointsRequest struct {
	Delta  *float64 `json:"delta" validate:"required"`
	Reason string   `json:"reason" validate:"required,max=200"`
}

type poolPointsRequest struct {
	Updates []poolPointUpdateRequest `json:"updates" validate:"required,min=1,dive"`
}

type poolPointUpdateRequest struct {
	PlayerID string   `json:"player_id" validate:"required"`
	Points   *float64 `json:"points" validate:"required"`
}

type leagueDTO struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	CountryCode string            `json:"country_code,omitempty"`
	Season      string            `json:"season"`
	IsDefault   bool              `json:"is_default"`
	SquadSize   int               `json:"squad_size"`
	Transfers   transferConfigDTO `json:"transfers"`
}

type transferConfigDTO struct {
	Bench     benchConfigDTO     `json:"bench"`
	Flexible  transferLimitDTO   `json:"flexible"`
	MidSeason midSeasonConfigDTO `json:"mid_season"`
}

type benchConfigDTO struct {
	Enabled    bool `json:"enabled"`
	MaxAllowed int  `json:"max_allowed"`
	BenchSlots int  `json:"bench_slots"`
}

type transferLimitDTO struct {
	Enabled    bool `json:"enabled"`
	MaxAllowed int  `json:"max_allowed"`
}

type midSeasonConfigDTO struct {
	Enabled     bool   `json:"enabled"`
	MaxAllowed  int    `json:"max_allowed"`
	WindowStart string `json:"window_start,omitempty"`
	WindowEnd   string `json:"window_end,omitempty"`
}

type playerDTO struct {
	ID       string  `json:"id"`
	LeagueID string  `json:"league_id"`
	TeamID   string  `json:"team_id"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	Points   float64 `json:"points"`
}

type squadDTO struct {
	ID                     string           `json:"id"`
	UserID                 string           `json:"user_id"`
	LeagueID               string           `json:"league_id"`
	Name                   string           `json:"name"`
	Players                []squadPlayerDTO `json:"players"`
	CaptainID              string           `json:"captain_id,omitempty"`
	ViceCaptainID          string           `json:"vice_captain_id,omitempty"`
	XFactorID              string           `json:"x_factor_id,omitempty"`
	TotalPoints            float64          `json:"total_points"`
	CaptainPoints          float64          `json:"captain_points"`
	ViceCaptainPoints      float64          `json:"vice_captain_points"`
	XFactorPoints          float64          `json:"x_factor_points"`
	BankedPoints           float64          `json:"banked_points"`
	TransfersUsed          int              `json:"transfers_used"`
	BenchTransfersUsed     int              `json:"bench_transfers_used"`
	FlexibleTransfersUsed  int              `json:"flexible_transfers_used"`
	MidSeasonTransfersUsed int              `json:"mid_season_transfers_used"`
	Version                int64            `json:"version"`
	UpdatedAt              string           `json:"updated_at,omitempty"`
}

type squadPlayerDTO struct {
	PlayerID               string   `json:"player_id"`
	TeamID                 string   `json:"team_id"`
	Role                   string   `json:"role"`
	Points                 float64  `json:"points"`
	PointsAtJoining        float64  `json:"points_at_joining"`
	PointsWhenRoleAssigned *float64 `json:"points_when_role_assigned,omitempty"`
}

type transferHistoryEntryDTO struct {
	Index            int    `json:"index"`
	Timestamp        string `json:"timestamp"`
	TransferType     string `json:"transfer_type"`
	ChangeType       string `json:"change_type"`
	PlayerOut        string `json:"player_out,omitempty"`
	PlayerIn         string `json:"player_in,omitempty"`
	NewViceCaptainID string `json:"new_vice_captain_id,omitempty"`
	NewXFactorID     string `json:"new_x_factor_id,omitempty"`
	Note             string `json:"note,omitempty"`

	Released *squadPlayerDTO `json:"released,omitempty"`
}

type transferResultDTO struct {
	Squad squadDTO                `json:"squad"`
	Entry transferHistoryEntryDTO `json:"entry"`
}

type squadPointsDTO struct {
	SquadID           string                  `json:"squad_id"`
	LeagueID          string                  `json:"league_id"`
	TotalPoints       float64                 `json:"total_points"`
	CaptainPoints     float64                 `json:"captain_points"`
	ViceCaptainPoints float64                 `json:"vice_captain_points"`
	XFactorPoints     float64                 `json:"x_factor_points"`
	BankedPoints      float64                 `json:"banked_points"`
	Players           []playerContributionDTO `json:"players"`
}

type playerContributionDTO struct {
	PlayerID     string  `json:"player_id"`
	Role         string  `json:"role,omitempty"`
	OnBench      bool    `json:"on_bench"`
	Effective    float64 `json:"effective"`
	Base         float64 `json:"base"`
	Bonus        float64 `json:"bonus"`
	Contribution float64 `json:"contribution"`
}

type standingDTO struct {
	Rank          int     `json:"rank"`
	SquadID       string  `json:"squad_id"`
	UserID        string  `json:"user_id"`
	SquadName     string  `json:"squad_name"`
	TotalPoints   float64 `json:"total_points"`
	CaptainPoints float64 `json:"captain_points"`
	BankedPoints  float64 `json:"banked_points"`
}

type squadRecalculationDTO struct {
	SquadID     string  `json:"squad_id"`
	Status      string  `json:"status"`
	BeforeTotal float64 `json:"before_total"`
	AfterTotal  float64 `json:"after_total"`
	Message     string  `json:"message,omitempty"`
}

type leagueRecalculationDTO struct {
	LeagueID       string                  `json:"league_id"`
	SquadCount     int                     `json:"squad_count"`
	WorkerCount    int                     `json:"worker_count"`
	UpdatedCount   int                     `json:"updated_count"`
	UnchangedCount int                     `json:"unchanged_count"`
	FailedCount    int                     `json:"failed_count"`
	Squads         []squadRecalculationDTO `json:"squads"`
}

type poolSyncDTO struct {
	LeagueID       string   `json:"league_id"`
	PlayersUpdated int      `json:"players_updated"`
	SquadsTouched  int      `json:"squads_touched"`
	SquadsUpdated  int      `json:"squads_updated"`
	FailedSquadIDs []string `json:"failed_squad_ids"`
}

func leagueToDTO(v league.League) leagueDTO {
	t := v.Transfers
	return leagueDTO{
		ID:          v.ID,
		Name:        v.Name,
		CountryCode: v.CountryCode,
		Season:      v.Season,
		IsDefault:   v.IsDefault,
		SquadSize:   v.SquadSize,
		Transfers: transferConfigDTO{
			Bench: benchConfigDTO{
				Enabled:    t.Bench.Enabled,
				MaxAllowed: t.Bench.MaxAllowed,
				BenchSlots: t.Bench.BenchSlots,
			},
			Flexible: transferLimitDTO{
				Enabled:    t.Flexible.Enabled,
				MaxAllowed: t.Flexible.MaxAllowed,
			},
			MidSeason: midSeasonConfigDTO{
				Enabled:     t.MidSeason.Enabled,
				MaxAllowed:  t.MidSeason.MaxAllowed,
				WindowStart: formatTime(t.MidSeason.WindowStart),
				WindowEnd:   formatTime(t.MidSeason.WindowEnd),
			},
		},
	}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:       v.ID,
		LeagueID: v.LeagueID,
		TeamID:   v.TeamID,
		Name:     v.Name,
		Role:     string(v.Role),
		Points:   v.Points,
	}
}

func squadToDTO(v fantasy.Squad) squadDTO {
	players := make([]squadPlayerDTO, 0, len(v.Players))
	for _, p := range v.Players {
		players = append(players, squadPlayerToDTO(p))
	}

	return squadDTO{
		ID:                     v.ID,
		UserID:                 v.UserID,
		LeagueID:               v.LeagueID,
		Name:                   v.Name,
		Players:                players,
		CaptainID:              v.CaptainID,
		ViceCaptainID:          v.ViceCaptainID,
		XFactorID:              v.XFactorID,
		TotalPoints:            v.Points.TotalPoints,
		CaptainPoints:          v.Points.CaptainPoints,
		ViceCaptainPoints:      v.Points.ViceCaptainPoints,
		XFactorPoints:          v.Points.XFactorPoints,
		BankedPoints:           v.BankedPoints,
		TransfersUsed:          v.TransfersUsed,
		BenchTransfersUsed:     v.BenchTransfersUsed,
		FlexibleTransfersUsed:  v.FlexibleTransfersUsed,
		MidSeasonTransfersUsed: v.MidSeasonTransfersUsed,
		Version:                v.Version,
		UpdatedAt:              formatTime(v.UpdatedAt),
	}
}

func squadPlayerToDTO(p fantasy.PlayerEntry) squadPlayerDTO {
	item := squadPlayerDTO{
		PlayerID:        p.PlayerID,
		TeamID:          p.TeamID,
		Role:            string(p.Role),
		Points:          p.Points,
		PointsAtJoining: p.PointsAtJoining,
	}
	if p.PointsWhenRoleAssigned != nil {
		stamp := *p.PointsWhenRoleAssigned
		item.PointsWhenRoleAssigned = &stamp
	}
	return item
}

func historyEntryToDTO(index int, v fantasy.TransferHistoryEntry) transferHistoryEntryDTO {
	var released *squadPlayerDTO
	if v.Released != nil {
		item := squadPlayerToDTO(*v.Released)
		released = &item
	}
	return transferHistoryEntryDTO{
		Released:         released,
		Index:            index,
		Timestamp:        formatTime(v.Timestamp),
		TransferType:     string(v.TransferType),
		ChangeType:       string(v.ChangeType),
		PlayerOut:        v.PlayerOut,
		PlayerIn:         v.PlayerIn,
		NewViceCaptainID: v.NewViceCaptainID,
		NewXFactorID:     v.NewXFactorID,
		Note:             v.Note,
	}
}

func squadPointsToDTO(v usecase.SquadPointsReport) squadPointsDTO {
	players := make([]playerContributionDTO, 0, len(v.Players))
	for _, p := range v.Players {
		players = append(players, playerContributionDTO{
			PlayerID:     p.PlayerID,
			Role:         string(p.Role),
			OnBench:      p.OnBench,
			Effective:    p.Effective,
			Base:         p.Base,
			Bonus:        p.Bonus,
			Contribution: p.Contribution,
		})
	}

	return squadPointsDTO{
		SquadID:           v.SquadID,
		LeagueID:          v.LeagueID,
		TotalPoints:       v.Points.TotalPoints,
		CaptainPoints:     v.Points.CaptainPoints,
		ViceCaptainPoints: v.Points.ViceCaptainPoints,
		XFactorPoints:     v.Points.XFactorPoints,
		BankedPoints:      v.BankedPoints,
		Players:           players,
	}
}

func standingToDTO(v usecase.Standing) standingDTO {
	return standingDTO{
		Rank:          v.Rank,
		SquadID:       v.SquadID,
		UserID:        v.UserID,
		SquadName:     v.SquadName,
		TotalPoints:   v.TotalPoints,
		CaptainPoints: v.CaptainPoints,
		BankedPoints:  v.BankedPoints,
	}
}

func squadRecalculationToDTO(v usecase.SquadRecalculation) squadRecalculationDTO {
	return squadRecalculationDTO{
		SquadID:     v.SquadID,
		Status:      v.Status,
		BeforeTotal: v.Before.TotalPoints,
		AfterTotal:  v.After.TotalPoints,
		Message:     v.Message,
	}
}

func leagueRecalculationToDTO(v usecase.LeagueRecalculation) leagueRecalculationDTO {
	squads := make([]squadRecalculationDTO, 0, len(v.Squads))
	for _, row := range v.Squads {
		squads = append(squads, squadRecalculationToDTO(row))
	}

	return leagueRecalculationDTO{
		LeagueID:       v.LeagueID,
		SquadCount:     v.SquadCount,
		WorkerCount:    v.WorkerCount,
		UpdatedCount:   v.UpdatedCount,
		UnchangedCount: v.UnchangedCount,
		FailedCount:    v.FailedCount,
		Squads:         squads,
	}
}

func poolSyncToDTO(v usecase.PoolSyncResult) poolSyncDTO {
	failed := v.FailedSquadIDs
	if failed == nil {
		failed = []string{}
	}

	return poolSyncDTO{
		LeagueID:       v.LeagueID,
		PlayersUpdated: v.PlayersUpdated,
		SquadsTouched:  v.SquadsTouched,
		SquadsUpdated:  v.SquadsUpdated,
		FailedSquadIDs: failed,
	}
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

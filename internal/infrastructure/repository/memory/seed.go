package memory

import (
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
)

const (
	LeagueIDPremierT20 = "premier-t20-2026"
	LeagueIDCounty     = "county-championship-2026"
)

func SeedLeagues() []league.League {
	midSeasonStart := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	return []league.League{
		{
			ID:          LeagueIDPremierT20,
			Name:        "Premier T20",
			CountryCode: "IN",
			Season:      "2026",
			IsDefault:   true,
			SquadSize:   11,
			Transfers: fantasy.TransferTypeConfig{
				Bench:    fantasy.BenchConfig{Enabled: true, MaxAllowed: 6, BenchSlots: 4},
				Flexible: fantasy.FlexibleConfig{Enabled: true, MaxAllowed: 4},
				MidSeason: fantasy.MidSeasonConfig{
					Enabled:     true,
					MaxAllowed:  2,
					WindowStart: midSeasonStart,
					WindowEnd:   midSeasonStart.Add(7 * 24 * time.Hour),
				},
			},
		},
		{
			ID:          LeagueIDCounty,
			Name:        "County Championship",
			CountryCode: "GB",
			Season:      "2026",
			SquadSize:   11,
			Transfers: fantasy.TransferTypeConfig{
				Bench:    fantasy.BenchConfig{Enabled: true, MaxAllowed: 3, BenchSlots: 2},
				Flexible: fantasy.FlexibleConfig{Enabled: false},
			},
		},
	}
}

func SeedPlayers() []player.Player {
	type row struct {
		id, team, name string
		role           player.Role
		points         float64
	}
	t20 := []row{
		{"pt-wk-01", "mumbai-mariners", "Arjun Mehta", player.RoleWicketkeeper, 182},
		{"pt-wk-02", "delhi-dynamos", "Kabir Rao", player.RoleWicketkeeper, 141},
		{"pt-bat-01", "mumbai-mariners", "Rohan Iyer", player.RoleBatter, 236},
		{"pt-bat-02", "mumbai-mariners", "Dev Kulkarni", player.RoleBatter, 158},
		{"pt-bat-03", "delhi-dynamos", "Vikram Sethi", player.RoleBatter, 204},
		{"pt-bat-04", "delhi-dynamos", "Nikhil Bose", player.RoleBatter, 117},
		{"pt-bat-05", "chennai-chargers", "Aditya Raman", player.RoleBatter, 221},
		{"pt-bat-06", "kolkata-comets", "Sameer Das", player.RoleBatter, 96},
		{"pt-ar-01", "chennai-chargers", "Farhan Qureshi", player.RoleAllRounder, 264},
		{"pt-ar-02", "kolkata-comets", "Ishaan Ghosh", player.RoleAllRounder, 190},
		{"pt-ar-03", "mumbai-mariners", "Yash Pandit", player.RoleAllRounder, 133},
		{"pt-bowl-01", "chennai-chargers", "Manoj Pillai", player.RoleBowler, 210},
		{"pt-bowl-02", "delhi-dynamos", "Harsh Tyagi", player.RoleBowler, 175},
		{"pt-bowl-03", "kolkata-comets", "Aman Chatterjee", player.RoleBowler, 162},
		{"pt-bowl-04", "kolkata-comets", "Rahul Sen", player.RoleBowler, 88},
		{"pt-bowl-05", "chennai-chargers", "Suresh Nair", player.RoleBowler, 149},
		{"pt-bowl-06", "mumbai-mariners", "Tarun Joshi", player.RoleBowler, 71},
	}
	county := []row{
		{"cc-wk-01", "yorkshire", "Tom Hartley", player.RoleWicketkeeper, 88},
		{"cc-bat-01", "yorkshire", "James Whitaker", player.RoleBatter, 120},
		{"cc-bat-02", "surrey", "Oliver Penn", player.RoleBatter, 97},
		{"cc-bat-03", "surrey", "Harry Cole", player.RoleBatter, 64},
		{"cc-bat-04", "lancashire", "George Lamb", player.RoleBatter, 101},
		{"cc-ar-01", "lancashire", "Sam Ridley", player.RoleAllRounder, 130},
		{"cc-ar-02", "yorkshire", "Ben Crossley", player.RoleAllRounder, 77},
		{"cc-bowl-01", "surrey", "Jack Ashby", player.RoleBowler, 110},
		{"cc-bowl-02", "lancashire", "Will Drury", player.RoleBowler, 93},
		{"cc-bowl-03", "yorkshire", "Ed Morland", player.RoleBowler, 58},
		{"cc-bowl-04", "surrey", "Luke Barnes", player.RoleBowler, 82},
		{"cc-bowl-05", "lancashire", "Max Tiller", player.RoleBowler, 49},
	}

	out := make([]player.Player, 0, len(t20)+len(county))
	for _, r := range t20 {
		out = append(out, player.Player{ID: r.id, LeagueID: LeagueIDPremierT20, TeamID: r.team, Name: r.name, Role: r.role, Points: r.points})
	}
	for _, r := range county {
		out = append(out, player.Player{ID: r.id, LeagueID: LeagueIDCounty, TeamID: r.team, Name: r.name, Role: r.role, Points: r.points})
	}
	return out
}

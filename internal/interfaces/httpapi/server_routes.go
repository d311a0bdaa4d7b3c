package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/players", handler.ListPlayersByLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.ListStandings)
	mux.HandleFunc("POST /v1/leagues/{leagueID}/squads", handler.JoinLeague)
}

func registerSquadRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/squads/{squadID}", handler.GetSquad)
	mux.HandleFunc("PUT /v1/squads/{squadID}/selection", handler.SelectSquad)
	mux.HandleFunc("GET /v1/squads/{squadID}/points", handler.GetSquadPoints)
	mux.HandleFunc("POST /v1/squads/{squadID}/transfers", handler.SubmitTransfer)
	mux.HandleFunc("GET /v1/squads/{squadID}/transfers", handler.ListTransfers)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAdminToken(adminToken, h)
	}

	mux.Handle("POST /v1/admin/squads/{squadID}/transfers/{index}/reverse", admin(handler.ReverseTransfer))
	mux.Handle("POST /v1/admin/squads/{squadID}/recalculate", admin(handler.RecalculateSquad))
	mux.Handle("POST /v1/admin/squads/{squadID}/banked-points", admin(handler.AdjustBankedPoints))
	mux.Handle("POST /v1/admin/leagues/{leagueID}/recalculate", admin(handler.RecalculateLeague))
	mux.Handle("POST /v1/admin/leagues/{leagueID}/pool-points", admin(handler.ApplyPoolPoints))
}

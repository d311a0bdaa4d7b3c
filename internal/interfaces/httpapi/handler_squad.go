package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

func (h *Handler) JoinLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinLeague")
	defer span.End()

	var req joinLeagueRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := pathValue(r, "leagueID")
	squad, err := h.squadService.JoinLeague(ctx, usecase.JoinLeagueInput{
		UserID:   req.UserID,
		LeagueID: leagueID,
		Name:     req.SquadName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "join league failed", "user_id", req.UserID, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(squad))
}

func (h *Handler) GetSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSquad")
	defer span.End()

	squadID := pathValue(r, "squadID")
	squad, err := h.squadService.GetSquad(ctx, squadID)
	if err != nil {
		h.logger.WarnContext(ctx, "get squad failed", "squad_id", squadID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(squad))
}

func (h *Handler) SelectSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectSquad")
	defer span.End()

	var req selectSquadRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	squadID := pathValue(r, "squadID")
	squad, err := h.squadService.SelectSquad(ctx, usecase.SelectSquadInput{
		SquadID:       squadID,
		PlayerIDs:     req.PlayerIDs,
		CaptainID:     req.CaptainID,
		ViceCaptainID: req.ViceCaptainID,
		XFactorID:     req.XFactorID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "select squad failed", "squad_id", squadID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(squad))
}

func (h *Handler) GetSquadPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSquadPoints")
	defer span.End()

	squadID := pathValue(r, "squadID")
	report, err := h.squadService.GetSquadPoints(ctx, squadID)
	if err != nil {
		h.logger.WarnContext(ctx, "get squad points failed", "squad_id", squadID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadPointsToDTO(report))
}

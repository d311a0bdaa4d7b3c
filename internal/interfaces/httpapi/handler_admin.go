package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

func (h *Handler) ReverseTransfer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReverseTransfer")
	defer span.End()

	squadID := pathValue(r, "squadID")
	index, err := strconv.Atoi(pathValue(r, "index"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: history index must be an integer", usecase.ErrInvalidInput))
		return
	}

	squad, err := h.reversalService.Reverse(ctx, usecase.ReverseTransferInput{
		SquadID:      squadID,
		HistoryIndex: index,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(squad))
}

func (h *Handler) RecalculateSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateSquad")
	defer span.End()

	squadID := pathValue(r, "squadID")
	row, err := h.recalcService.RecalculateSquad(ctx, squadID)
	if err != nil {
		h.logger.WarnContext(ctx, "recalculate squad failed", "squad_id", squadID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadRecalculationToDTO(row))
}

func (h *Handler) AdjustBankedPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdjustBankedPoints")
	defer span.End()

	var req adjustBankedPointsRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	squadID := pathValue(r, "squadID")
	squad, err := h.recalcService.AdjustBankedPoints(ctx, usecase.AdjustBankedPointsInput{
		SquadID: squadID,
		Delta:   *req.Delta,
		Reason:  req.Reason,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "adjust banked points failed", "squad_id", squadID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(squad))
}

func (h *Handler) RecalculateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateLeague")
	defer span.End()

	leagueID := pathValue(r, "leagueID")
	result, err := h.recalcService.RecalculateLeague(ctx, leagueID)
	if err != nil {
		h.logger.ErrorContext(ctx, "recalculate league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueRecalculationToDTO(result))
}

func (h *Handler) ApplyPoolPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplyPoolPoints")
	defer span.End()

	var req poolPointsRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updates := make([]player.PointsUpdate, 0, len(req.Updates))
	for _, item := range req.Updates {
		updates = append(updates, player.PointsUpdate{PlayerID: item.PlayerID, Points: *item.Points})
	}

	leagueID := pathValue(r, "leagueID")
	result, err := h.poolSyncService.ApplyPoolUpdates(ctx, usecase.ApplyPoolUpdatesInput{
		LeagueID: leagueID,
		Updates:  updates,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "apply pool points failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, poolSyncToDTO(result))
}

package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

func (h *Handler) SubmitTransfer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitTransfer")
	defer span.End()

	var req submitTransferRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	squadID := pathValue(r, "squadID")
	result, err := h.transferService.Submit(ctx, usecase.SubmitTransferInput{
		SquadID:          squadID,
		TransferType:     fantasy.TransferType(req.TransferType),
		ChangeType:       fantasy.ChangeType(req.ChangeType),
		PlayerOut:        req.PlayerOut,
		PlayerIn:         req.PlayerIn,
		NewCaptainID:     req.NewCaptainID,
		NewViceCaptainID: req.NewViceCaptainID,
		NewXFactorID:     req.NewXFactorID,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, transferResultDTO{
		Squad: squadToDTO(result.Squad),
		Entry: historyEntryToDTO(len(result.Squad.TransferHistory)-1, result.Entry),
	})
}

func (h *Handler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTransfers")
	defer span.End()

	squadID := pathValue(r, "squadID")
	history, err := h.transferService.History(ctx, squadID)
	if err != nil {
		h.logger.WarnContext(ctx, "list transfers failed", "squad_id", squadID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]transferHistoryEntryDTO, 0, len(history))
	for i, entry := range history {
		items = append(items, historyEntryToDTO(i, entry))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

type Handler struct {
	leagueService    *usecase.LeagueService
	playerService    *usecase.PlayerService
	squadService     *usecase.SquadService
	transferService  *usecase.TransferService
	reversalService  *usecase.ReversalService
	recalcService    *usecase.RecalculationService
	poolSyncService  *usecase.PoolSyncService
	standingsService *usecase.StandingsService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	playerService *usecase.PlayerService,
	squadService *usecase.SquadService,
	transferService *usecase.TransferService,
	reversalService *usecase.ReversalService,
	recalcService *usecase.RecalculationService,
	poolSyncService *usecase.PoolSyncService,
	standingsService *usecase.StandingsService,
	logger *logging.Logger,
) *Handler {
	return &Handler{
		leagueService:    leagueService,
		playerService:    playerService,
		squadService:     squadService,
		transferService:  transferService,
		reversalService:  reversalService,
		recalcService:    recalcService,
		poolSyncService:  poolSyncService,
		standingsService: standingsService,
		logger:           logging.OrDefault(logger),
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeAndValidate reads a strict JSON body into dst and runs the struct
// validation tags. An empty body decodes to the zero value.
func (h *Handler) decodeAndValidate(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}

func pathValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.PathValue(name))
}

package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/porra/internal/usecase"
)

func (h *Handler) GetBootstrapStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBootstrapStatus")
	defer span.End()

	status, err := h.bootstrapService.Status(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get bootstrap status failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bootstrapStatusDTO{
		NeedsSeeding: status.NeedsSeeding,
		Players:      status.Players,
		Riders:       status.Riders,
	})
}

func (h *Handler) RunBootstrap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunBootstrap")
	defer span.End()

	result, err := h.bootstrapService.Seed(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run bootstrap failed",
			"players", result.Players,
			"riders", result.Riders,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bootstrapResultDTO{
		Players:    result.Players,
		Riders:     result.Riders,
		SeasonYear: result.SeasonYear,
		Races:      result.Races,
	})
}

func (h *Handler) ImportCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportCalendar")
	defer span.End()

	result, err := h.calendarService.Import(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "import calendar failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, calendarImportDTO{
		SeasonYear: result.SeasonYear,
		Races:      toRaceDTOs(result.Races),
	})
}

func (h *Handler) RunResultsSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunResultsSync")
	defer span.End()

	if h.resultsSyncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: results sync is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.resultsSyncService.Sync(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run results sync failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

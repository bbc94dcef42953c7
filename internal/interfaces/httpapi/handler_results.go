package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	items, err := h.resultsService.Seasons(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list seasons failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]seasonDTO, 0, len(items))
	for _, item := range items {
		out = append(out, seasonDTO{ID: item.ID, Name: item.Name, Year: item.Year, Current: item.Current})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCategories")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	items, err := h.resultsService.Categories(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list categories failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]categoryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, categoryDTO{ID: item.ID, Name: item.Name})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListFinishedEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFinishedEvents")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	items, err := h.resultsService.FinishedEvents(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list finished events failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]eventDTO, 0, len(items))
	for _, item := range items {
		out = append(out, eventDTO{
			ID:            item.ID,
			Name:          item.Name,
			SponsoredName: item.SponsoredName,
			CountryISO:    item.CountryISO,
			CountryName:   item.CountryName,
			CircuitName:   item.CircuitName,
			DateStart:     item.DateStart,
			DateEnd:       item.DateEnd,
			Status:        item.Status,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSessions")
	defer span.End()

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	categoryID := strings.TrimSpace(r.URL.Query().Get("category"))
	items, err := h.resultsService.Sessions(ctx, eventID, categoryID)
	if err != nil {
		h.logger.WarnContext(ctx, "list sessions failed", "event_id", eventID, "category_id", categoryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]sessionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toSessionDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetClassification(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClassification")
	defer span.End()

	sessionID := strings.TrimSpace(r.PathValue("sessionID"))
	items, err := h.resultsService.Classification(ctx, sessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get classification failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]classificationEntryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, classificationEntryDTO{
			Position:    item.Position,
			RiderNumber: item.RiderNumber,
			RiderName:   item.RiderName,
			Team:        item.Team,
			Constructor: item.Constructor,
			Points:      item.Points,
			Time:        item.Time,
			BestLap:     item.BestLap,
			Gap:         item.Gap,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListWorldStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWorldStandings")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	categoryID := strings.TrimSpace(r.URL.Query().Get("category"))
	items, err := h.resultsService.WorldStandings(ctx, seasonID, categoryID)
	if err != nil {
		h.logger.WarnContext(ctx, "list world standings failed", "season_id", seasonID, "category_id", categoryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]worldStandingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, worldStandingDTO{
			Position:    item.Position,
			RiderNumber: item.RiderNumber,
			RiderName:   item.RiderName,
			Team:        item.Team,
			Constructor: item.Constructor,
			Points:      item.Points,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

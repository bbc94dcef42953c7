package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerVotingRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/votes", handler.CastVote)
	mux.HandleFunc("GET /v1/bootstrap", handler.GetBootstrapStatus)
}

func registerReadRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/dashboard", handler.GetDashboard)
	mux.HandleFunc("GET /v1/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/stats", handler.GetStats)
	mux.HandleFunc("GET /v1/races", handler.ListRaces)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}/history", handler.GetPlayerHistory)
	mux.HandleFunc("GET /v1/riders", handler.ListRiders)
}

// Passthrough views over the results feed.
func registerResultsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/results/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /v1/results/seasons/{seasonID}/categories", handler.ListCategories)
	mux.HandleFunc("GET /v1/results/seasons/{seasonID}/events", handler.ListFinishedEvents)
	mux.HandleFunc("GET /v1/results/seasons/{seasonID}/standings", handler.ListWorldStandings)
	mux.HandleFunc("GET /v1/results/events/{eventID}/sessions", handler.ListSessions)
	mux.HandleFunc("GET /v1/results/sessions/{sessionID}/classification", handler.GetClassification)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/bootstrap", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunBootstrap)))
	mux.Handle("POST /v1/internal/calendar/import", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ImportCalendar)))
	mux.Handle("POST /v1/internal/scoring/sessions", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.AwardSession)))
	mux.Handle("POST /v1/internal/jobs/sync-results", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunResultsSync)))
}

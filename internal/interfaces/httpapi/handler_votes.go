package httpapi

import (
	"errors"
	"net/http"

	"github.com/riskibarqy/porra/internal/usecase"
)

func (h *Handler) CastVote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CastVote")
	defer span.End()

	var req castVoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out := h.voteService.Cast(ctx, usecase.CastVoteInput{
		PlayerID: req.PlayerID,
		RiderID:  req.RiderID,
	})
	if !out.Success {
		h.logger.WarnContext(ctx, "cast vote declined", "player_id", req.PlayerID, "rider_id", req.RiderID, "error", out.Err)
		writeError(ctx, w, out.Err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, outcomeDTO{Success: true, Message: out.Message})
}

// AwardSession scores one session. Re-submitting a scored session is a
// no-op reported with success=false and status 200.
func (h *Handler) AwardSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AwardSession")
	defer span.End()

	var req awardSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	classification := make([]usecase.ClassificationEntry, 0, len(req.Classification))
	for _, entry := range req.Classification {
		classification = append(classification, usecase.ClassificationEntry{
			RiderNumber: entry.RiderNumber,
			Points:      entry.Points,
		})
	}

	out := h.scoringService.AwardSession(ctx, usecase.AwardSessionInput{
		ExternalEventID: req.ExternalEventID,
		Session: usecase.ExternalSession{
			ID:     req.Session.ID,
			Type:   req.Session.Type,
			Number: req.Session.Number,
		},
		Classification: classification,
	})
	dto := scoringOutcomeDTO{
		Success: out.Success,
		Message: out.Message,
		RaceID:  out.RaceID,
		Awarded: out.Awarded,
	}
	switch {
	case out.Success:
		writeSuccess(ctx, w, http.StatusOK, dto)
	case errors.Is(out.Err, usecase.ErrAlreadyScored):
		h.logger.InfoContext(ctx, "session already scored", "event_id", req.ExternalEventID, "session_id", req.Session.ID)
		writeSuccess(ctx, w, http.StatusOK, dto)
	default:
		h.logger.WarnContext(ctx, "award session failed", "event_id", req.ExternalEventID, "session_id", req.Session.ID, "error", out.Err)
		writeError(ctx, w, out.Err)
	}
}

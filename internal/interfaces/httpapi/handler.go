package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/porra/internal/platform/logging"
	"github.com/riskibarqy/porra/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

// Services groups the use cases served over HTTP. ResultsSync may be nil
// when the feed is not wired.
type Services struct {
	Votes       *usecase.VoteService
	Scoring     *usecase.ScoringService
	Stats       *usecase.StatsService
	Bootstrap   *usecase.BootstrapService
	Calendar    *usecase.CalendarService
	Results     *usecase.ResultsService
	ResultsSync *usecase.ResultsSyncService
}

type Handler struct {
	voteService        *usecase.VoteService
	scoringService     *usecase.ScoringService
	statsService       *usecase.StatsService
	bootstrapService   *usecase.BootstrapService
	calendarService    *usecase.CalendarService
	resultsService     *usecase.ResultsService
	resultsSyncService *usecase.ResultsSyncService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(services Services, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		voteService:        services.Votes,
		scoringService:     services.Scoring,
		statsService:       services.Stats,
		bootstrapService:   services.Bootstrap,
		calendarService:    services.Calendar,
		resultsService:     services.Results,
		resultsSyncService: services.ResultsSync,
		logger:             logger,
		validator:          validator.New(),
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

// decodeJSON rejects unknown fields and leaves out untouched on an empty body.
func decodeJSON(r *http.Request, out any) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(raw) > maxRequestBodyBytes {
		return fmt.Errorf("%w: request body too large", usecase.ErrInvalidInput)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := strictJSON.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func parsePathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return id, nil
}

package motogp

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/porra/internal/platform/logging"
	"github.com/riskibarqy/porra/internal/platform/resilience"
	"github.com/riskibarqy/porra/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL      = "https://api.motogp.pulselive.com/motogp/v1"
	defaultRetryBackoff = 500 * time.Millisecond
	maxResponseBytes    = 6 << 20
)

var errTransient = crerr.New("motogp transient failure")

// RequestObserver receives one call per finished feed request.
type RequestObserver interface {
	FeedRequest(endpoint, outcome string)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Observer       RequestObserver
}

// Client reads the public MotoGP results API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       resilience.SingleFlight
	observer     RequestObserver
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	retryBackoff := cfg.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = defaultRetryBackoff
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		maxRetries:   maxRetries,
		retryBackoff: retryBackoff,
		logger:       logger.Named("motogp"),
		breaker:      resilience.NewCircuitBreaker(resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)),
		observer:     cfg.Observer,
	}
}

func (c *Client) ListSeasons(ctx context.Context) ([]usecase.ExternalSeason, error) {
	var payload []apiSeason
	if err := c.doJSON(ctx, "seasons", "/seasons", nil, &payload); err != nil {
		return nil, err
	}

	out := make([]usecase.ExternalSeason, 0, len(payload))
	for _, item := range payload {
		season := usecase.ExternalSeason{ID: item.ID, Year: item.Year, Current: item.Current}
		if item.Name != nil {
			season.Name = *item.Name
		}
		out = append(out, season)
	}
	return out, nil
}

func (c *Client) ListCategories(ctx context.Context, seasonID string) ([]usecase.ExternalCategory, error) {
	var payload []apiCategory
	query := url.Values{"seasonUuid": {seasonID}}
	if err := c.doJSON(ctx, "categories", "/categories", query, &payload); err != nil {
		return nil, err
	}

	out := make([]usecase.ExternalCategory, 0, len(payload))
	for _, item := range payload {
		out = append(out, usecase.ExternalCategory{ID: item.ID, Name: item.Name})
	}
	return out, nil
}

func (c *Client) ListEvents(ctx context.Context, seasonID string, finishedOnly bool) ([]usecase.ExternalEvent, error) {
	var payload []apiEvent
	query := url.Values{"seasonUuid": {seasonID}}
	if finishedOnly {
		query.Set("isFinished", "true")
	}
	if err := c.doJSON(ctx, "events", "/events", query, &payload); err != nil {
		return nil, err
	}

	out := make([]usecase.ExternalEvent, 0, len(payload))
	for _, item := range payload {
		out = append(out, usecase.ExternalEvent{
			ID:            item.ID,
			Name:          item.Name,
			SponsoredName: item.SponsoredName,
			CountryISO:    item.Country.ISO,
			CountryName:   item.Country.Name,
			CircuitName:   item.Circuit.Name,
			DateStart:     parseTime(item.DateStart),
			DateEnd:       parseTime(item.DateEnd),
			Status:        item.Status,
			Test:          item.Test,
		})
	}
	return out, nil
}

func (c *Client) ListSessions(ctx context.Context, eventID, categoryID string) ([]usecase.ExternalSession, error) {
	var payload []apiSession
	query := url.Values{"eventUuid": {eventID}, "categoryUuid": {categoryID}}
	if err := c.doJSON(ctx, "sessions", "/results/sessions", query, &payload); err != nil {
		return nil, err
	}

	out := make([]usecase.ExternalSession, 0, len(payload))
	for _, item := range payload {
		out = append(out, usecase.ExternalSession{
			ID:     item.ID,
			Type:   item.Type,
			Number: item.Number,
			Date:   parseTime(item.Date),
			Status: item.Status,
		})
	}
	return out, nil
}

func (c *Client) GetClassification(ctx context.Context, sessionID string) ([]usecase.ClassificationEntry, error) {
	var payload apiClassificationResponse
	path := "/results/session/" + url.PathEscape(sessionID) + "/classification"
	if err := c.doJSON(ctx, "classification", path, url.Values{"test": {"false"}}, &payload); err != nil {
		return nil, err
	}

	out := make([]usecase.ClassificationEntry, 0, len(payload.Classification))
	for _, item := range payload.Classification {
		entry := usecase.ClassificationEntry{
			Position:    item.Position,
			RiderNumber: item.Rider.Number,
			RiderName:   item.Rider.FullName,
			Team:        item.Team.Name,
			Constructor: item.Constructor.Name,
			Time:        item.Time,
			Gap:         item.Gap.First,
		}
		if item.Points != nil {
			entry.Points = *item.Points
		}
		if item.BestLap != nil {
			entry.BestLap = item.BestLap.Time
		}
		out = append(out, entry)
	}
	return out, nil
}

func (c *Client) GetWorldStandings(ctx context.Context, seasonID, categoryID string) ([]usecase.StandingEntry, error) {
	var payload apiStandingResponse
	query := url.Values{"seasonUuid": {seasonID}, "categoryUuid": {categoryID}}
	if err := c.doJSON(ctx, "worldstanding", "/results/standings/worldstanding", query, &payload); err != nil {
		return nil, err
	}

	out := make([]usecase.StandingEntry, 0, len(payload.Classification))
	for _, item := range payload.Classification {
		out = append(out, usecase.StandingEntry{
			Position:    item.Position,
			RiderNumber: item.Rider.Number,
			RiderName:   item.Rider.FullName,
			Team:        item.Team.Name,
			Constructor: item.Constructor.Name,
			Points:      item.Points,
		})
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, endpoint, path string, query url.Values, target any) error {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "motogp circuit breaker rejected request", "endpoint", endpoint, "state", c.breaker.State())
		c.observe(endpoint, "circuit_open")
		return fmt.Errorf("%w: results feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if reqErr != nil && stderrors.Is(reqErr, errTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return raw, reqErr
	})
	if err != nil {
		c.observe(endpoint, "error")
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		c.observe(endpoint, "error")
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		c.observe(endpoint, "decode_error")
		return fmt.Errorf("%w: decode %s payload: %w", usecase.ErrDependencyUnavailable, endpoint, err)
	}

	c.observe(endpoint, "ok")
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, status, err := c.fetch(ctx, fullURL)
		switch {
		case err != nil:
			lastErr = crerr.Wrapf(errTransient, "%v", err)
		case status >= 200 && status < 300:
			return raw, nil
		case status == http.StatusNotFound:
			return nil, fmt.Errorf("%w: results feed status=%d", usecase.ErrNotFound, status)
		case isRetryableStatus(status):
			lastErr = crerr.Wrapf(errTransient, "results feed status=%d body=%s", status, abbreviateBody(raw))
		default:
			return nil, fmt.Errorf("%w: results feed status=%d body=%s", usecase.ErrDependencyUnavailable, status, abbreviateBody(raw))
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(resilience.Backoff(c.retryBackoff, attempt+1))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "motogp request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, lastErr)
}

func (c *Client) fetch(ctx context.Context, fullURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxResponseBytes)); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}

	return append([]byte(nil), buf.B...), resp.StatusCode, nil
}

func (c *Client) observe(endpoint, outcome string) {
	if c.observer != nil {
		c.observer.FeedRequest(endpoint, outcome)
	}
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTime accepts the timestamp shapes the feed has used; unknown shapes
// yield the zero time.
func parseTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsOutcomes(t *testing.T) {
	m := NewMetrics()

	m.VoteCast("accepted")
	m.VoteCast("accepted")
	m.VoteCast("declined")
	m.SessionScored("awarded", 4)
	m.SessionScored("already_scored", 0)
	m.FeedRequest("classification", "ok")

	if got := testutil.ToFloat64(m.votes.WithLabelValues("accepted")); got != 2 {
		t.Fatalf("unexpected accepted votes: got=%v want=2", got)
	}
	if got := testutil.ToFloat64(m.pointsAwarded); got != 4 {
		t.Fatalf("unexpected awarded rows: got=%v want=4", got)
	}
	if got := testutil.ToFloat64(m.scoringPasses.WithLabelValues("already_scored")); got != 1 {
		t.Fatalf("unexpected already scored passes: got=%v want=1", got)
	}
	if got := testutil.ToFloat64(m.feedRequests.WithLabelValues("classification", "ok")); got != 1 {
		t.Fatalf("unexpected feed requests: got=%v want=1", got)
	}
}

func TestMetrics_HandlerExposesRegistry(t *testing.T) {
	m := NewMetrics()
	m.ObserveHTTP(http.MethodPost, "/v1/votes", http.StatusOK, 12*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `porra_http_requests_total{method="POST",route="/v1/votes",status="200"} 1`) {
		t.Fatalf("expected http request counter in output")
	}
}

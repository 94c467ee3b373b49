package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/ishantk2507/ZeroWasteAI/core/metrics"
)

type lineServer struct {
	mu     sync.Mutex
	bodies []string
	srv    *httptest.Server
}

func newLineServer(t *testing.T) *lineServer {
	t.Helper()
	ls := &lineServer{}
	ls.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		ls.mu.Lock()
		ls.bodies = append(ls.bodies, strings.TrimSpace(string(data)))
		ls.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(ls.srv.Close)
	return ls
}

func (ls *lineServer) last() string {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if len(ls.bodies) == 0 {
		return ""
	}
	return ls.bodies[len(ls.bodies)-1]
}

func lineProtocol(p *write.Point) string {
	return strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
}

func TestInfluxSinkRecordMatch(t *testing.T) {
	ls := newLineServer(t)
	sink := NewInfluxSink(ls.srv.URL, "token", "org", "bucket")
	defer func() { _ = sink.Close() }()

	ev := coremetrics.MatchEvent{
		ItemID:          "p1",
		Category:        "Dairy",
		Level:           "warning",
		Status:          "matches_found",
		Matches:         2,
		BestRecipientID: "n1",
		BestDistanceKm:  11.1234,
		BestCO2Kg:       3.11,
		BestScore:       0.81234,
		Time:            time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, sink.RecordMatch(ev))

	body := ls.last()
	assert.Equal(t, lineProtocol(matchPoint(ev)), body)
	assert.True(t, strings.HasPrefix(body, "item_evaluated,"))
	assert.Contains(t, body, "recipient_id=n1")
	assert.Contains(t, body, "matches=2i")
	assert.Contains(t, body, "best_distance_km=11.123")
}

func TestInfluxSinkRecordRouteAndImpact(t *testing.T) {
	ls := newLineServer(t)
	sink := NewInfluxSink(ls.srv.URL+"/api/v2/write", "token", "org", "bucket")
	defer func() { _ = sink.Close() }()
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

	route := coremetrics.RouteEvent{PlanID: "plan", RouteID: "R1", VehicleType: "van", Stops: 3, Deliveries: 2, DistanceKm: 40, Time: now}
	require.NoError(t, sink.RecordRoute(route))
	assert.Equal(t, lineProtocol(routePoint(route)), ls.last())
	assert.Contains(t, ls.last(), "deliveries=2i")

	imp := coremetrics.ImpactEvent{PlanID: "plan", Routes: 1, Deliveries: 2, EmissionsSavedKg: 11.2, Time: now}
	require.NoError(t, sink.RecordImpact(imp))
	assert.True(t, strings.HasPrefix(ls.last(), "impact_report,"))
}

func TestMatchPointWithoutRecipient(t *testing.T) {
	body := lineProtocol(matchPoint(coremetrics.MatchEvent{ItemID: "p2", Category: "Meat", Level: "critical", Status: "not_redistributable", Time: time.Unix(0, 0)}))
	assert.NotContains(t, body, "recipient_id")
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(srv.URL+"/api/v2/write", "tok", "org", "bucket")
	assert.IsType(t, coremetrics.NopSink{}, sink)
	assert.True(t, called, "health endpoint not called")
}

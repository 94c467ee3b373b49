package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/ishantk2507/ZeroWasteAI/core/metrics"
	"github.com/ishantk2507/ZeroWasteAI/infra/logger"
)

// InfluxSink writes redistribution events to an InfluxDB instance.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordMatch writes an item_evaluated point.
func (s *InfluxSink) RecordMatch(ev coremetrics.MatchEvent) error {
	return s.write(matchPoint(ev))
}

// RecordRoute writes a route_planned point.
func (s *InfluxSink) RecordRoute(ev coremetrics.RouteEvent) error {
	return s.write(routePoint(ev))
}

// RecordImpact writes an impact_report point.
func (s *InfluxSink) RecordImpact(ev coremetrics.ImpactEvent) error {
	return s.write(impactPoint(ev))
}

// Close releases the client resources.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

func (s *InfluxSink) write(p *write.Point) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, p)
}

func matchPoint(ev coremetrics.MatchEvent) *write.Point {
	p := write.NewPointWithMeasurement("item_evaluated").
		AddTag("item_id", ev.ItemID).
		AddTag("category", ev.Category).
		AddTag("level", ev.Level).
		AddTag("status", ev.Status).
		AddTag("component", "engine")
	if ev.BestRecipientID != "" {
		p = p.AddTag("recipient_id", ev.BestRecipientID)
	}
	return p.AddField("matches", ev.Matches).
		AddField("best_distance_km", round3(ev.BestDistanceKm)).
		AddField("best_co2_kg", round3(ev.BestCO2Kg)).
		AddField("best_score", round3(ev.BestScore)).
		SetTime(ev.Time)
}

func routePoint(ev coremetrics.RouteEvent) *write.Point {
	return write.NewPointWithMeasurement("route_planned").
		AddTag("plan_id", ev.PlanID).
		AddTag("route_id", ev.RouteID).
		AddTag("vehicle_type", ev.VehicleType).
		AddTag("component", "routing").
		AddField("stops", ev.Stops).
		AddField("deliveries", ev.Deliveries).
		AddField("distance_km", round3(ev.DistanceKm)).
		AddField("load_kg", round3(ev.LoadKg)).
		AddField("emissions_saved_kg", round3(ev.EmissionsSavedKg)).
		AddField("utilization", round3(ev.Utilization)).
		AddField("green_score", round3(ev.GreenScore)).
		SetTime(ev.Time)
}

func impactPoint(ev coremetrics.ImpactEvent) *write.Point {
	return write.NewPointWithMeasurement("impact_report").
		AddTag("plan_id", ev.PlanID).
		AddTag("component", "impact").
		AddField("routes", ev.Routes).
		AddField("deliveries", ev.Deliveries).
		AddField("distance_km", round3(ev.DistanceKm)).
		AddField("emissions_saved_kg", round3(ev.EmissionsSavedKg)).
		AddField("avg_green_score", round3(ev.AvgGreenScore)).
		SetTime(ev.Time)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/ishantk2507/ZeroWasteAI/app/plugins"
	"github.com/ishantk2507/ZeroWasteAI/config"
	"github.com/ishantk2507/ZeroWasteAI/core/engine"
	"github.com/ishantk2507/ZeroWasteAI/core/events"
	"github.com/ishantk2507/ZeroWasteAI/core/geo"
	"github.com/ishantk2507/ZeroWasteAI/core/impact"
	coremetrics "github.com/ishantk2507/ZeroWasteAI/core/metrics"
	"github.com/ishantk2507/ZeroWasteAI/core/model"
	"github.com/ishantk2507/ZeroWasteAI/core/monitor"
	coremqtt "github.com/ishantk2507/ZeroWasteAI/core/mqtt"
	"github.com/ishantk2507/ZeroWasteAI/core/prediction"
	"github.com/ishantk2507/ZeroWasteAI/core/routing"
	"github.com/ishantk2507/ZeroWasteAI/infra/dataset"
	"github.com/ishantk2507/ZeroWasteAI/infra/logger"
	"github.com/ishantk2507/ZeroWasteAI/infra/metrics"
	"github.com/ishantk2507/ZeroWasteAI/infra/mqtt"
	"github.com/ishantk2507/ZeroWasteAI/internal/eventbus"
)

const (
	busBuffer       = 256
	collectorDrain  = 2 * time.Second
	publishDeadline = 5 * time.Second
)

// Option customises a Service.
type Option func(*options)

type options struct {
	now       func() time.Time
	estimator prediction.RiskEstimator
	estimated bool
	sink      coremetrics.MetricsSink
	publisher coremqtt.Publisher
	log       logger.Logger
}

// WithClock fixes the reference time used for freshness.
func WithClock(now func() time.Time) Option { return func(o *options) { o.now = now } }

// WithRiskEstimator replaces the configured estimator. nil selects the
// analyzer fallback risk.
func WithRiskEstimator(est prediction.RiskEstimator) Option {
	return func(o *options) { o.estimator, o.estimated = est, true }
}

// WithSink replaces the metrics sinks built from the configuration.
func WithSink(s coremetrics.MetricsSink) Option { return func(o *options) { o.sink = s } }

// WithPublisher replaces the MQTT client built from the configuration.
func WithPublisher(p coremqtt.Publisher) Option { return func(o *options) { o.publisher = p } }

// WithLogger replaces the service logger.
func WithLogger(l logger.Logger) Option { return func(o *options) { o.log = l } }

// Service runs redistribution passes over a snapshot and fans the results out
// to metrics sinks and MQTT.
type Service struct {
	cfg       *config.Config
	engine    *engine.Engine
	optimizer *routing.Optimizer
	assigner  *routing.Assigner
	impact    impact.Aggregator

	sink      coremetrics.MetricsSink
	bus       *eventbus.Bus[events.Event]
	publisher coremqtt.Publisher
	paho      *mqtt.PahoClient
	log       logger.Logger
	now       func() time.Time

	mu       sync.Mutex
	stats    monitor.Stats
	snapshot model.Snapshot

	collectorDone <-chan struct{}
	closeOnce     sync.Once
}

// New builds a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	logger.SetLevel(cfg.Logging.Level)
	log := o.log
	if log == nil {
		log = logger.New("service")
	}

	est := o.estimator
	if !o.estimated {
		var err error
		est, err = plugins.NewEstimator(cfg.Prediction)
		if err != nil {
			return nil, fmt.Errorf("risk estimator: %w", err)
		}
	}

	sink := o.sink
	if sink == nil {
		var err error
		sink, err = coremetrics.NewMetricsSink(cfg.Metrics.ModuleConfigs())
		if err != nil {
			return nil, fmt.Errorf("metrics sink: %w", err)
		}
	}

	s := &Service{
		cfg:       cfg,
		engine:    engine.New(cfg.Policy, o.now, est),
		optimizer: routing.NewOptimizer(cfg.Policy, geo.NewModel(cfg.Policy)),
		assigner:  routing.NewAssigner(cfg.Policy, geo.NewModel(cfg.Policy), cfg.Routing.DefaultItemWeightKg),
		impact:    impact.NewAggregator(cfg.Policy),
		sink:      sink,
		bus:       eventbus.New[events.Event](eventbus.WithBuffer(busBuffer)),
		publisher: o.publisher,
		log:       log,
		now:       o.now,
		stats:     monitor.New(),
	}
	if s.publisher == nil && cfg.MQTT.Enabled {
		client, err := mqtt.NewPahoClient(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		s.paho = client
		s.publisher = client
	}
	return s, nil
}

// Engine exposes the underlying pipeline for read-only queries.
func (s *Service) Engine() *engine.Engine { return s.engine }

// Config returns the configuration the service was built from.
func (s *Service) Config() *config.Config { return s.cfg }

// PlanThreshold is the configured minimum priority for planned items.
func (s *Service) PlanThreshold() float64 { return s.cfg.Routing.PlanThreshold }

// Bus returns the event bus results are published on.
func (s *Service) Bus() *eventbus.Bus[events.Event] { return s.bus }

// LoadData reads the configured CSV files and makes them the current
// snapshot.
func (s *Service) LoadData() (model.Snapshot, error) {
	snap, err := dataset.LoadSnapshot(s.cfg.Data.InventoryPath, s.cfg.Data.RecipientsPath)
	if err != nil {
		return model.Snapshot{}, err
	}
	s.log.Infof("loaded %d items and %d recipients", len(snap.Items), len(snap.Recipients))
	s.SetSnapshot(snap)
	return snap, nil
}

// SetSnapshot replaces the snapshot used for MQTT requests.
func (s *Service) SetSnapshot(snap model.Snapshot) {
	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
}

// Snapshot returns the current snapshot.
func (s *Service) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// EvaluateItem runs the pipeline for one item, merges the statistics and
// publishes the outcome.
func (s *Service) EvaluateItem(ctx context.Context, snap model.Snapshot, id string) engine.ItemResult {
	res, delta := s.engine.RunForItem(snap, id)
	s.mu.Lock()
	s.stats.Merge(delta)
	s.mu.Unlock()
	s.log.Debugw("item evaluated", map[string]any{"item_id": id, "status": res.Status, "reason": res.Reason})
	if res.Status != engine.StatusNotFound {
		s.emit(ctx, id, res)
	}
	return res
}

// EvaluateAll evaluates every item of the snapshot on up to workers
// goroutines. Results keep the snapshot order.
func (s *Service) EvaluateAll(ctx context.Context, snap model.Snapshot, workers int) []engine.ItemResult {
	if workers < 1 {
		workers = 1
	}
	results := make([]engine.ItemResult, len(snap.Items))
	deltas := make([]monitor.Stats, workers)
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		deltas[w] = monitor.New()
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := range jobs {
				res, delta := s.engine.Evaluate(snap.Items[i], snap.Recipients)
				deltas[w].Merge(delta)
				results[i] = res
			}
		}(w)
	}
feed:
	for i := range snap.Items {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	s.mu.Lock()
	for _, d := range deltas {
		s.stats.Merge(d)
	}
	s.mu.Unlock()
	for i, res := range results {
		if res.Status == "" {
			continue
		}
		s.emit(ctx, snap.Items[i].ID, res)
	}
	return results
}

func (s *Service) emit(ctx context.Context, id string, res engine.ItemResult) {
	ev := events.ItemEvaluatedEvent{
		ID:       events.NewID(),
		Time:     s.now(),
		ItemID:   id,
		Category: res.Item.Category,
		Level:    string(res.Freshness.Level),
		Status:   res.Status,
		Reason:   res.Reason,
	}
	if res.Match != nil {
		ev.Matches = len(res.Match.Matches)
		if best, ok := res.Match.Best(); ok {
			ev.Best = &best
		}
	}
	s.bus.Publish(ev)
	s.publish(ctx, coremqtt.KindMatch, id, res)
}

// RoutePlan is the outcome of a planning run.
type RoutePlan struct {
	ID       string             `json:"plan_id"`
	Plan     engine.Plan        `json:"plan"`
	Routes   []model.Route      `json:"routes"`
	Unserved []string           `json:"unserved"`
	Impact   impact.RouteReport `json:"impact"`
}

// PlanRoutes builds the redistribution plan for the snapshot, routes the
// fleet over the chosen recipients and publishes routes and impact.
func (s *Service) PlanRoutes(ctx context.Context, snap model.Snapshot) RoutePlan {
	plan := s.engine.Plan(snap, s.cfg.Routing.PlanThreshold)
	points := s.DeliveryPoints(snap, plan)
	depot := routing.Point{ID: s.cfg.Routing.DepotID, Coordinates: s.cfg.Routing.Depot}
	fleet := s.optimizer.BuildFleet(depot, points, s.cfg.Routing.Vehicles)
	for i := range fleet.Routes {
		fleet.Routes[i].ID = fmt.Sprintf("R%d", i+1)
	}

	out := RoutePlan{
		ID:       events.NewID(),
		Plan:     plan,
		Routes:   fleet.Routes,
		Unserved: fleet.Unserved,
		Impact:   s.impact.FromRoutes(fleet.Routes),
	}
	s.log.Infow("routes planned", map[string]any{
		"plan_id":  out.ID,
		"entries":  len(plan.Entries),
		"routes":   len(out.Routes),
		"unserved": len(out.Unserved),
	})

	at := s.now()
	for _, r := range out.Routes {
		s.bus.Publish(events.RoutePlannedEvent{ID: events.NewID(), PlanID: out.ID, Time: at, Route: r})
		s.publish(ctx, coremqtt.KindRoute, r.ID, r)
	}
	s.bus.Publish(events.ImpactEvent{ID: events.NewID(), PlanID: out.ID, Time: at, Report: out.Impact})
	s.publish(ctx, coremqtt.KindImpact, out.ID, out.Impact)
	return out
}

// DeliveryPoints turns plan entries into one routing point per recipient.
// Demand is the summed item weight and priority follows the most urgent
// item delivered there. Points are ordered by recipient id.
func (s *Service) DeliveryPoints(snap model.Snapshot, plan engine.Plan) []routing.Point {
	recipients := make(map[string]model.Recipient, len(snap.Recipients))
	for _, r := range snap.Recipients {
		recipients[r.ID] = r
	}
	byID := map[string]*routing.Point{}
	for _, e := range plan.Entries {
		item, ok := snap.FindItem(e.ItemID)
		if !ok {
			continue
		}
		rec, ok := recipients[e.BestMatch.RecipientID]
		if !ok {
			continue
		}
		priority := s.engine.Freshness(item).Level.Priority() + 1
		p := byID[rec.ID]
		if p == nil {
			p = &routing.Point{ID: rec.ID, Coordinates: rec.Coordinates, Priority: priority}
			byID[rec.ID] = p
		}
		p.DemandKg += item.Weight(s.cfg.Routing.DefaultItemWeightKg)
		if priority < p.Priority {
			p.Priority = priority
		}
	}
	points := make([]routing.Point, 0, len(byID))
	for _, p := range byID {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].ID < points[j].ID })
	return points
}

// Assign runs the global greedy assignment over the configured fleet.
func (s *Service) Assign(items []model.InventoryItem, recipients []model.Recipient) routing.Assignment {
	return s.assigner.Assign(items, recipients, s.cfg.Routing.Vehicles)
}

// publish sends a report when a publisher is configured. Failures are logged
// since reports are best effort.
func (s *Service) publish(ctx context.Context, kind, key string, data any) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, publishDeadline)
	defer cancel()
	if _, err := s.publisher.PublishReport(ctx, kind, key, data); err != nil {
		s.log.Warnf("publish %s report %s: %v", kind, key, err)
	}
}

// Start launches the event collector, the Prometheus endpoint and the MQTT
// request handler. It returns immediately.
func (s *Service) Start(ctx context.Context) {
	s.collectorDone = metrics.StartEventCollector(ctx, s.bus, s.sink)
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.paho != nil {
		s.paho.OnRequest(func(req coremqtt.Request) {
			res := s.EvaluateItem(ctx, s.Snapshot(), req.ItemID)
			s.log.Infof("request %s for %s: %s", req.RequestID, req.ItemID, res.Status)
		})
	}
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	s.Start(ctx)
	<-ctx.Done()
	return nil
}

// Stats returns a copy of the accumulated statistics.
func (s *Service) Stats() monitor.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.Clone()
}

// Close stops the bus, waits for buffered events to be recorded and releases
// the sinks and the MQTT connection.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.bus.Close()
		if s.collectorDone != nil {
			select {
			case <-s.collectorDone:
			case <-time.After(collectorDrain):
				s.log.Warnf("event collector did not drain within %s", collectorDrain)
			}
		}
		if dropped := s.bus.Dropped(); dropped > 0 {
			s.log.Warnf("%d events dropped", dropped)
		}
		if c, ok := s.sink.(io.Closer); ok {
			err = c.Close()
		}
		if s.paho != nil {
			s.paho.Disconnect()
		}
	})
	return err
}

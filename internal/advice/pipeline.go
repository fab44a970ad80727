package advice

import (
	"context"
	"fmt"
	"time"

	"carbon_netzero/internal/logger"
	"carbon_netzero/internal/models"
)

// Request bounds and defaults.
const (
	DefaultWindowHours = 6
	MinWindowHours     = 1
	MaxWindowHours     = 48
	DefaultTopN        = 5
	MinTopN            = 1
	MaxTopN            = 10

	DefaultCacheTTL        = 5 * time.Minute
	DefaultGenerateTimeout = 2 * time.Minute

	NoDataNote = "No recent data to analyze."
)

// State is the branch of the pipeline that produced a payload.
type State string

const (
	StateCacheHit      State = "cache_hit"
	StateNoData        State = "no_data"
	StateModelPath     State = "model"
	StateHeuristicPath State = "heuristic"
	StateSafetyNet     State = "safety_net"
)

// TelemetrySource is the read side of the telemetry store. Records must be
// returned in ascending timestamp order.
type TelemetrySource interface {
	Query(ctx context.Context, from, to time.Time, department string) ([]models.TelemetryRecord, error)
}

// Request asks for advice over the last WindowHours, keeping TopN departments.
// Zero values select the defaults; out-of-range values are clamped.
type Request struct {
	WindowHours int
	TopN        int
	NoCache     bool
}

// Normalize applies defaults and clamps.
func (r Request) Normalize() Request {
	if r.WindowHours == 0 {
		r.WindowHours = DefaultWindowHours
	}
	if r.TopN == 0 {
		r.TopN = DefaultTopN
	}
	r.WindowHours = clamp(r.WindowHours, MinWindowHours, MaxWindowHours)
	r.TopN = clamp(r.TopN, MinTopN, MaxTopN)
	return r
}

// Config tunes the pipeline.
type Config struct {
	Policy          Policy
	CacheTTL        time.Duration
	GenerateTimeout time.Duration // 0 disables the bound
}

// Outcome is what a pipeline run resolved to.
type Outcome struct {
	Payload models.AdvicePayload
	State   State
}

// Deps are the collaborators of a Pipeline. Cache, Clock, Log and Metrics
// are optional.
type Deps struct {
	Source  TelemetrySource
	Invoker *Invoker
	Cache   *Cache
	Clock   Clock
	Log     *logger.Logger
	Metrics *Metrics
}

// Pipeline turns a telemetry window into advice and never fails: every
// error is converted into a heuristic payload.
type Pipeline struct {
	source  TelemetrySource
	invoker *Invoker
	cache   *Cache
	clock   Clock
	log     *logger.Logger
	metrics *Metrics
	cfg     Config
}

// NewPipeline wires a pipeline. The pipeline owns its cache; pass one in
// only to share or inspect it.
func NewPipeline(d Deps, cfg Config) *Pipeline {
	if d.Clock == nil {
		d.Clock = RealClock{}
	}
	if d.Cache == nil {
		d.Cache = NewCache(d.Clock)
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	return &Pipeline{
		source:  d.Source,
		invoker: d.Invoker,
		cache:   d.Cache,
		clock:   d.Clock,
		log:     logger.OrNop(d.Log),
		metrics: d.Metrics,
		cfg:     cfg,
	}
}

// Strategies returns advice for req. The returned payload is always
// structurally valid, whatever the provider or the store did.
func (p *Pipeline) Strategies(ctx context.Context, req Request) (out Outcome) {
	start := p.clock.Now()
	req = req.Normalize()
	defer func() {
		p.metrics.observeOutcome(out.State, p.clock.Now().Sub(start))
	}()

	key := CacheKey{WindowHours: req.WindowHours, TopN: req.TopN}
	if !req.NoCache {
		if payload, ok := p.cache.Get(key); ok {
			payload.Cached = true
			return Outcome{Payload: payload, State: StateCacheHit}
		}
	}

	var snap *models.Snapshot
	defer func() {
		if r := recover(); r != nil {
			p.log.Errorw("ai_safety_net", "panic", r, "window_hours", req.WindowHours)
			out = p.safetyNet(req, snap)
		}
	}()

	res, err := p.compute(ctx, req, &snap)
	if err != nil {
		p.log.Errorw("ai_safety_net", "err", err, "window_hours", req.WindowHours)
		return p.safetyNet(req, snap)
	}
	p.cache.Put(key, res.Payload, p.cfg.CacheTTL)
	return res
}

// compute covers fetch → aggregate → generate. snap is set as soon as a
// snapshot exists so the safety net can reuse it.
func (p *Pipeline) compute(ctx context.Context, req Request, snap **models.Snapshot) (Outcome, error) {
	// The result is cached for later callers even if this one goes away.
	ctx = context.WithoutCancel(ctx)

	now := p.clock.Now().UTC()
	from := now.Add(-time.Duration(req.WindowHours) * time.Hour)
	records, err := p.source.Query(ctx, from, now, "")
	if err != nil {
		return Outcome{}, fmt.Errorf("query telemetry: %w", err)
	}
	if len(records) == 0 {
		return Outcome{Payload: emptyPayload(req.WindowHours), State: StateNoData}, nil
	}

	s := BuildSnapshot(req.WindowHours, records)
	*snap = &s

	payload, state := p.generate(ctx, s, req.TopN)
	return Outcome{Payload: payload, State: state}, nil
}

func (p *Pipeline) generate(ctx context.Context, snap models.Snapshot, topN int) (models.AdvicePayload, State) {
	if p.invoker == nil {
		p.log.Warnw("ai_heuristic_used", "reason", "no model configured")
		return Heuristic(snap, topN), StateHeuristicPath
	}

	if p.cfg.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.GenerateTimeout)
		defer cancel()
	}

	res, err := p.invoker.Invoke(ctx, BuildPrompt(snap), p.cfg.Policy)
	if err != nil {
		p.log.Warnw("ai_heuristic_used", "reason", "model exhausted", "err", err)
		return Heuristic(snap, topN), StateHeuristicPath
	}

	parsed, ok := ParseModelJSON(res.Text)
	if !ok {
		p.log.Warnw("ai_heuristic_used", "reason", "unparsable model output", "model", res.Model)
		return Heuristic(snap, topN), StateHeuristicPath
	}
	payload, ok := fromModel(parsed, snap.WindowHours, topN, res.UsedFallback)
	if !ok {
		p.log.Warnw("ai_heuristic_used", "reason", "empty model output", "model", res.Model)
		return Heuristic(snap, topN), StateHeuristicPath
	}
	p.log.Infow("ai_model_advice", "model", res.Model, "attempts", res.Attempts, "departments", len(payload.StrategiesByDepartment))
	return payload, StateModelPath
}

// safetyNet is the last resort: heuristic advice over whatever snapshot was
// built, or an empty one. Its result is not cached.
func (p *Pipeline) safetyNet(req Request, snap *models.Snapshot) Outcome {
	s := models.Snapshot{WindowHours: req.WindowHours, Departments: []models.DepartmentRollup{}}
	if snap != nil {
		s = *snap
	}
	return Outcome{Payload: Heuristic(s, req.TopN), State: StateSafetyNet}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package advice

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"carbon_netzero/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var fixedBase = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

const modelJSON = "```json\n" + `{
  "strategies_by_department": [
    {"department": "Casting", "summary": {"co2_kg": 6, "energy_kWh": 3},
     "strategies": [{"title": "Shorten preheat", "rationale": "r", "expected_impact_kg_co2_per_day": 1.2, "difficulty": "low", "actions": ["a"]}]},
    {"department": "Forging", "summary": {"co2_kg": 9, "energy_kWh": 3},
     "strategies": [{"title": "Recover heat", "rationale": "r", "expected_impact_kg_co2_per_day": 2, "difficulty": "high", "actions": []}]}
  ],
  "global_recommendations": [{"title": "Sub-meter", "rationale": "r", "expected_impact_kg_co2_per_day": 1, "difficulty": "med", "actions": []}]
}` + "\n```"

type pipelineFixture struct {
	clock  *fakeClock
	source *stubSource
	gen    *scriptedGenerator
	sleep  *recordingSleep
	cache  *Cache
	pipe   *Pipeline
}

func newPipelineFixture(t *testing.T, fn func(model string, call int) (string, error)) *pipelineFixture {
	t.Helper()
	f := &pipelineFixture{
		clock:  newFakeClock(fixedBase.Add(time.Hour)),
		source: &stubSource{records: sampleRecords(fixedBase)},
		gen:    &scriptedGenerator{fn: fn},
		sleep:  &recordingSleep{},
	}
	f.cache = NewCache(f.clock)
	f.pipe = NewPipeline(Deps{
		Source:  f.source,
		Invoker: newTestInvoker(f.gen, f.sleep),
		Cache:   f.cache,
		Clock:   f.clock,
	}, Config{Policy: testPolicy(2), CacheTTL: 5 * time.Minute})
	return f
}

func alwaysText(text string) func(string, int) (string, error) {
	return func(string, int) (string, error) { return text, nil }
}

func assertWellFormed(t *testing.T, p models.AdvicePayload, topN int) {
	t.Helper()
	if p.StrategiesByDepartment == nil || p.GlobalRecommendations == nil {
		t.Fatalf("payload has nil slices: %+v", p)
	}
	if len(p.StrategiesByDepartment) > topN {
		t.Fatalf("departments = %d, exceeds topN %d", len(p.StrategiesByDepartment), topN)
	}
	for i := 1; i < len(p.StrategiesByDepartment); i++ {
		if p.StrategiesByDepartment[i-1].Summary.CO2Kg < p.StrategiesByDepartment[i].Summary.CO2Kg {
			t.Fatalf("departments not sorted by co2: %+v", p.StrategiesByDepartment)
		}
	}
}

func TestRequestNormalize(t *testing.T) {
	cases := []struct {
		in, want Request
	}{
		{Request{}, Request{WindowHours: 6, TopN: 5}},
		{Request{WindowHours: -3, TopN: -1}, Request{WindowHours: 1, TopN: 1}},
		{Request{WindowHours: 100, TopN: 50}, Request{WindowHours: 48, TopN: 10}},
		{Request{WindowHours: 12, TopN: 3, NoCache: true}, Request{WindowHours: 12, TopN: 3, NoCache: true}},
	}
	for _, tc := range cases {
		if got := tc.in.Normalize(); got != tc.want {
			t.Errorf("Normalize(%+v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestPipeline_ModelPath(t *testing.T) {
	f := newPipelineFixture(t, alwaysText(modelJSON))

	out := f.pipe.Strategies(context.Background(), Request{WindowHours: 3, TopN: 5})
	if out.State != StateModelPath {
		t.Fatalf("state = %s, want %s", out.State, StateModelPath)
	}
	p := out.Payload
	assertWellFormed(t, p, 5)
	if p.IsHeuristic || p.UsedFallbackModel || p.Cached {
		t.Fatalf("unexpected flags: %+v", p)
	}
	if p.WindowHours != 3 {
		t.Fatalf("window = %d, want 3", p.WindowHours)
	}
	if p.StrategiesByDepartment[0].Department != "Forging" {
		t.Fatalf("top department = %s, want Forging", p.StrategiesByDepartment[0].Department)
	}
	if want := f.clock.Now().UTC().Add(-3 * time.Hour); !f.source.from.Equal(want) {
		t.Fatalf("query from = %v, want %v", f.source.from, want)
	}
	if !f.source.to.Equal(f.clock.Now().UTC()) {
		t.Fatalf("query to = %v, want now", f.source.to)
	}
}

func TestPipeline_EmptyWindowIsCachedWithNote(t *testing.T) {
	f := newPipelineFixture(t, alwaysText(modelJSON))
	f.source.records = nil

	out := f.pipe.Strategies(context.Background(), Request{})
	if out.State != StateNoData {
		t.Fatalf("state = %s, want %s", out.State, StateNoData)
	}
	p := out.Payload
	if p.Note != NoDataNote || len(p.StrategiesByDepartment) != 0 || len(p.GlobalRecommendations) != 0 {
		t.Fatalf("unexpected payload: %+v", p)
	}
	if p.IsHeuristic || p.UsedFallbackModel {
		t.Fatalf("empty window must not be flagged: %+v", p)
	}
	if len(f.gen.Calls()) != 0 {
		t.Fatal("model must not be called for an empty window")
	}

	again := f.pipe.Strategies(context.Background(), Request{})
	if again.State != StateCacheHit || !again.Payload.Cached || again.Payload.Note != NoDataNote {
		t.Fatalf("second call should be a cached empty payload: %+v", again)
	}
}

func TestPipeline_UnparsableOutputFallsBackToHeuristic(t *testing.T) {
	f := newPipelineFixture(t, alwaysText("Sorry, I can't produce JSON {oops"))

	out := f.pipe.Strategies(context.Background(), Request{WindowHours: 6, TopN: 2})
	if out.State != StateHeuristicPath {
		t.Fatalf("state = %s, want %s", out.State, StateHeuristicPath)
	}
	p := out.Payload
	assertWellFormed(t, p, 2)
	if !p.IsHeuristic || p.Note != HeuristicNote {
		t.Fatalf("expected heuristic payload: %+v", p)
	}
	if p.StrategiesByDepartment[0].Department != "Forging" || p.StrategiesByDepartment[1].Department != "Casting" {
		t.Fatalf("unexpected ranking: %+v", p.StrategiesByDepartment)
	}
	if len(f.gen.Calls()) != 1 {
		t.Fatalf("a successful generation is not retried, calls = %v", f.gen.Calls())
	}
}

func TestPipeline_EmptyModelObjectFallsBackToHeuristic(t *testing.T) {
	f := newPipelineFixture(t, alwaysText(`{"strategies_by_department": [], "global_recommendations": []}`))

	out := f.pipe.Strategies(context.Background(), Request{})
	if out.State != StateHeuristicPath || !out.Payload.IsHeuristic {
		t.Fatalf("state = %s, payload = %+v", out.State, out.Payload)
	}
}

func TestPipeline_FallbackModelAfterPrimaryExhausted(t *testing.T) {
	f := newPipelineFixture(t, func(model string, _ int) (string, error) {
		if model == "primary" {
			return "", &ProviderError{Status: http.StatusServiceUnavailable, Message: "overloaded"}
		}
		return modelJSON, nil
	})

	out := f.pipe.Strategies(context.Background(), Request{})
	if out.State != StateModelPath {
		t.Fatalf("state = %s, want %s", out.State, StateModelPath)
	}
	if !out.Payload.UsedFallbackModel || out.Payload.IsHeuristic {
		t.Fatalf("expected usedFallbackModel=true fallback=false, got %+v", out.Payload)
	}
	if n := f.gen.count("primary"); n != 3 {
		t.Fatalf("primary calls = %d, want 3", n)
	}
	if n := f.gen.count("fallback"); n != 1 {
		t.Fatalf("fallback calls = %d, want 1", n)
	}
}

func TestPipeline_ExhaustedUsesHeuristic(t *testing.T) {
	f := newPipelineFixture(t, func(string, int) (string, error) {
		return "", &ProviderError{Status: http.StatusTooManyRequests}
	})

	out := f.pipe.Strategies(context.Background(), Request{TopN: 1})
	if out.State != StateHeuristicPath {
		t.Fatalf("state = %s", out.State)
	}
	assertWellFormed(t, out.Payload, 1)
	if got := len(f.gen.Calls()); got != 6 {
		t.Fatalf("calls = %d, want 2*(2+1)", got)
	}
}

func TestPipeline_CacheHitIsIdenticalExceptFlag(t *testing.T) {
	f := newPipelineFixture(t, alwaysText(modelJSON))
	ctx := context.Background()

	first := f.pipe.Strategies(ctx, Request{})
	second := f.pipe.Strategies(ctx, Request{})

	if second.State != StateCacheHit || !second.Payload.Cached {
		t.Fatalf("second call state = %s cached = %v", second.State, second.Payload.Cached)
	}
	if len(f.gen.Calls()) != 1 || f.source.calls != 1 {
		t.Fatalf("cache hit must not touch source or model: gen=%d source=%d", len(f.gen.Calls()), f.source.calls)
	}
	second.Payload.Cached = false
	if got, want := second.Payload, first.Payload; got.WindowHours != want.WindowHours ||
		len(got.StrategiesByDepartment) != len(want.StrategiesByDepartment) ||
		got.StrategiesByDepartment[0].Strategies[0].Title != want.StrategiesByDepartment[0].Strategies[0].Title {
		t.Fatalf("cached payload differs:\n%+v\n%+v", got, want)
	}
}

func TestPipeline_TTLExpiryRecomputes(t *testing.T) {
	f := newPipelineFixture(t, alwaysText(modelJSON))
	ctx := context.Background()

	f.pipe.Strategies(ctx, Request{})
	f.clock.Advance(5 * time.Minute)
	out := f.pipe.Strategies(ctx, Request{})

	if out.State != StateModelPath || out.Payload.Cached {
		t.Fatalf("expected recompute after TTL, got %s", out.State)
	}
	if len(f.gen.Calls()) != 2 {
		t.Fatalf("calls = %d, want 2", len(f.gen.Calls()))
	}
}

func TestPipeline_NoCacheBypassesLookupButStores(t *testing.T) {
	f := newPipelineFixture(t, alwaysText(modelJSON))
	ctx := context.Background()

	f.pipe.Strategies(ctx, Request{})
	out := f.pipe.Strategies(ctx, Request{NoCache: true})
	if out.State != StateModelPath {
		t.Fatalf("state = %s, want model", out.State)
	}
	if len(f.gen.Calls()) != 2 {
		t.Fatalf("calls = %d, want 2", len(f.gen.Calls()))
	}
	if hit := f.pipe.Strategies(ctx, Request{}); hit.State != StateCacheHit {
		t.Fatalf("state = %s, want cache hit", hit.State)
	}
}

func TestPipeline_StoreErrorHitsSafetyNet(t *testing.T) {
	f := newPipelineFixture(t, alwaysText(modelJSON))
	f.source.err = errors.New("database is locked")

	out := f.pipe.Strategies(context.Background(), Request{})
	if out.State != StateSafetyNet {
		t.Fatalf("state = %s, want %s", out.State, StateSafetyNet)
	}
	p := out.Payload
	if !p.IsHeuristic || len(p.StrategiesByDepartment) != 0 || len(p.GlobalRecommendations) != 2 {
		t.Fatalf("unexpected safety net payload: %+v", p)
	}
	if f.cache.Len() != 0 {
		t.Fatal("safety net results must not be cached")
	}
}

func TestPipeline_PanicHitsSafetyNetWithSnapshot(t *testing.T) {
	f := newPipelineFixture(t, func(string, int) (string, error) {
		panic("provider client bug")
	})

	out := f.pipe.Strategies(context.Background(), Request{TopN: 10})
	if out.State != StateSafetyNet {
		t.Fatalf("state = %s, want %s", out.State, StateSafetyNet)
	}
	assertWellFormed(t, out.Payload, 10)
	if len(out.Payload.StrategiesByDepartment) != 3 {
		t.Fatalf("safety net should reuse the built snapshot, got %+v", out.Payload.StrategiesByDepartment)
	}
	if f.cache.Len() != 0 {
		t.Fatal("safety net results must not be cached")
	}
}

func TestPipeline_CanceledCallerStillCaches(t *testing.T) {
	f := newPipelineFixture(t, alwaysText(modelJSON))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := f.pipe.Strategies(ctx, Request{})
	if out.State != StateModelPath {
		t.Fatalf("state = %s, want model", out.State)
	}
	if f.cache.Len() != 1 {
		t.Fatal("result should be cached for later callers")
	}
}

func TestPipeline_NoInvokerUsesHeuristic(t *testing.T) {
	clk := newFakeClock(fixedBase)
	pipe := NewPipeline(Deps{Source: &stubSource{records: sampleRecords(fixedBase)}, Clock: clk}, Config{})

	out := pipe.Strategies(context.Background(), Request{})
	if out.State != StateHeuristicPath || !out.Payload.IsHeuristic {
		t.Fatalf("state = %s", out.State)
	}
}

func TestPipeline_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	clk := newFakeClock(fixedBase)
	gen := &scriptedGenerator{fn: alwaysText(modelJSON)}
	inv := newTestInvoker(gen, &recordingSleep{})
	inv.metrics = m

	pipe := NewPipeline(Deps{
		Source:  &stubSource{records: sampleRecords(fixedBase)},
		Invoker: inv,
		Clock:   clk,
		Metrics: m,
	}, Config{Policy: testPolicy(1)})

	pipe.Strategies(context.Background(), Request{})
	pipe.Strategies(context.Background(), Request{})

	if got := testutil.ToFloat64(m.outcomes.WithLabelValues(string(StateModelPath))); got != 1 {
		t.Fatalf("model outcomes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.outcomes.WithLabelValues(string(StateCacheHit))); got != 1 {
		t.Fatalf("cache hit outcomes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.attempts.WithLabelValues("primary", "success")); got != 1 {
		t.Fatalf("primary successes = %v, want 1", got)
	}
}

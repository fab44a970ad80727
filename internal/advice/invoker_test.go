package advice

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestIsRetriable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"429", &ProviderError{Status: 429, Message: "quota"}, true},
		{"500", &ProviderError{Status: 500, Message: "internal"}, true},
		{"502", &ProviderError{Status: 502, Message: "bad gateway"}, true},
		{"503", &ProviderError{Status: 503, Message: "x"}, true},
		{"504", &ProviderError{Status: 504, Message: "x"}, true},
		{"wrapped 503", fmt.Errorf("call: %w", &ProviderError{Status: 503}), true},
		{"401", &ProviderError{Status: 401, Message: "API key not valid"}, false},
		{"400", &ProviderError{Status: 400, Message: "malformed request"}, false},
		{"overloaded message", errors.New("The model is overloaded"), true},
		{"timeout message", errors.New("request Timeout"), true},
		{"try again later", errors.New("please try again later"), true},
		{"temporarily", errors.New("service temporarily down"), true},
		{"unavailable message with 400", &ProviderError{Status: 400, Message: "backend unavailable"}, true},
		{"plain", errors.New("invalid argument"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetriable(tc.err); got != tc.want {
				t.Fatalf("IsRetriable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestPolicyBackoff_DoublesAndCaps(t *testing.T) {
	p := Policy{BackoffBase: 500 * time.Millisecond, BackoffCap: 8 * time.Second}.normalized()
	want := []time.Duration{
		500 * time.Millisecond,
		time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		8 * time.Second,
		8 * time.Second,
	}
	for attempt, w := range want {
		if got := p.backoff(attempt); got != w {
			t.Errorf("backoff(%d) = %v, want %v", attempt, got, w)
		}
	}
	if got := p.backoff(200); got != 8*time.Second {
		t.Errorf("backoff(200) = %v, want cap", got)
	}
}

func TestInvoker_SuccessFirstTry(t *testing.T) {
	gen := &scriptedGenerator{fn: func(string, int) (string, error) { return "ok", nil }}
	rs := &recordingSleep{}
	res, err := newTestInvoker(gen, rs).Invoke(context.Background(), "p", testPolicy(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "ok" || res.UsedFallback || res.Attempts != 1 || res.Model != "primary" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(rs.delays) != 0 {
		t.Fatalf("expected no sleeps, got %v", rs.delays)
	}
}

func TestInvoker_RetriableStatusesScheduleRetry(t *testing.T) {
	for _, status := range []int{429, 500, 502, 503, 504} {
		t.Run(fmt.Sprint(status), func(t *testing.T) {
			gen := &scriptedGenerator{fn: func(model string, call int) (string, error) {
				if call == 0 {
					return "", &ProviderError{Status: status, Message: "transient"}
				}
				return "ok", nil
			}}
			rs := &recordingSleep{}
			res, err := newTestInvoker(gen, rs).Invoke(context.Background(), "p", testPolicy(2))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.UsedFallback {
				t.Fatalf("retry should stay on the primary model")
			}
			if got := gen.Calls(); len(got) != 2 || got[0] != "primary" || got[1] != "primary" {
				t.Fatalf("calls = %v, want two primary calls", got)
			}
			if len(rs.delays) != 1 || rs.delays[0] != 10*time.Millisecond {
				t.Fatalf("delays = %v, want [10ms]", rs.delays)
			}
		})
	}
}

func TestInvoker_NonRetriableSwitchesToFallbackImmediately(t *testing.T) {
	gen := &scriptedGenerator{fn: func(model string, call int) (string, error) {
		if model == "primary" {
			return "", &ProviderError{Status: 403, Message: "permission denied"}
		}
		return "from fallback", nil
	}}
	rs := &recordingSleep{}
	res, err := newTestInvoker(gen, rs).Invoke(context.Background(), "p", testPolicy(4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.UsedFallback || res.Text != "from fallback" || res.Attempts != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if gen.count("primary") != 1 {
		t.Fatalf("primary should be tried once, got %d", gen.count("primary"))
	}
	if len(rs.delays) != 0 {
		t.Fatalf("non-retriable errors must not back off, got %v", rs.delays)
	}
}

func TestInvoker_FallbackAfterPrimaryExhaustsRetries(t *testing.T) {
	gen := &scriptedGenerator{fn: func(model string, call int) (string, error) {
		if model == "primary" {
			return "", &ProviderError{Status: 503, Message: "overloaded"}
		}
		return "ok", nil
	}}
	rs := &recordingSleep{}
	res, err := newTestInvoker(gen, rs).Invoke(context.Background(), "p", testPolicy(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.UsedFallback || res.Model != "fallback" {
		t.Fatalf("expected fallback result, got %+v", res)
	}
	if gen.count("primary") != 4 {
		t.Fatalf("primary attempts = %d, want 4", gen.count("primary"))
	}
	want := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 40 * time.Millisecond}
	if fmt.Sprint(rs.delays) != fmt.Sprint(want) {
		t.Fatalf("delays = %v, want %v", rs.delays, want)
	}
}

func TestInvoker_ExhaustedNeverExceedsBudget(t *testing.T) {
	for _, maxRetries := range []int{0, 1, 3, 5} {
		t.Run(fmt.Sprint(maxRetries), func(t *testing.T) {
			provErr := &ProviderError{Status: 429, Message: "rate limited"}
			gen := &scriptedGenerator{fn: func(string, int) (string, error) { return "", provErr }}
			rs := &recordingSleep{}
			res, err := newTestInvoker(gen, rs).Invoke(context.Background(), "p", testPolicy(maxRetries))
			if !errors.Is(err, ErrExhausted) {
				t.Fatalf("expected ErrExhausted, got %v", err)
			}
			var pe *ProviderError
			if !errors.As(err, &pe) || pe.Status != 429 {
				t.Fatalf("last provider error not surfaced: %v", err)
			}
			limit := 2 * (maxRetries + 1)
			if n := len(gen.Calls()); n != limit || res.Attempts != limit {
				t.Fatalf("calls=%d attempts=%d, want %d", n, res.Attempts, limit)
			}
			if gen.count("primary") != maxRetries+1 || gen.count("fallback") != maxRetries+1 {
				t.Fatalf("each model gets its own budget: %v", gen.Calls())
			}
		})
	}
}

func TestInvoker_NoFallbackPhaseWhenSameOrEmpty(t *testing.T) {
	for _, fb := range []string{"", "primary"} {
		gen := &scriptedGenerator{fn: func(string, int) (string, error) {
			return "", &ProviderError{Status: 400, Message: "bad"}
		}}
		p := testPolicy(2)
		p.Fallback = fb
		_, err := newTestInvoker(gen, &recordingSleep{}).Invoke(context.Background(), "p", p)
		if !errors.Is(err, ErrExhausted) {
			t.Fatalf("fallback %q: expected ErrExhausted, got %v", fb, err)
		}
		if n := len(gen.Calls()); n != 1 {
			t.Fatalf("fallback %q: calls = %d, want 1", fb, n)
		}
	}
}

func TestInvoker_CanceledContextStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := &scriptedGenerator{fn: func(string, int) (string, error) {
		cancel()
		return "", &ProviderError{Status: 503, Message: "unavailable"}
	}}
	_, err := newTestInvoker(gen, &recordingSleep{}).Invoke(ctx, "p", testPolicy(5))
	if !errors.Is(err, ErrExhausted) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected exhausted+canceled, got %v", err)
	}
	if n := len(gen.Calls()); n != 1 {
		t.Fatalf("calls = %d, want 1 after cancellation", n)
	}
}

func TestSleepContext(t *testing.T) {
	if err := sleepContext(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRandomJitterBounds(t *testing.T) {
	if randomJitter(0) != 0 {
		t.Fatal("zero limit must give zero jitter")
	}
	for i := 0; i < 100; i++ {
		if j := randomJitter(300 * time.Millisecond); j < 0 || j >= 300*time.Millisecond {
			t.Fatalf("jitter %v out of range", j)
		}
	}
}

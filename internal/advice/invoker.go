package advice

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"carbon_netzero/internal/logger"
)

// Generator produces raw model text for a prompt. Implementations should
// return *ProviderError (or wrap one) so failures can be classified.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Result is the Success terminal state of an invocation.
type Result struct {
	Text         string
	Model        string
	UsedFallback bool
	Attempts     int
}

type phase struct {
	model    string
	fallback bool
}

// Invoker runs the two-phase retry protocol: the primary model under its own
// retry budget, then (if configured) the fallback model under a fresh one.
type Invoker struct {
	gen     Generator
	log     *logger.Logger
	metrics *Metrics

	sleep  func(ctx context.Context, d time.Duration) error
	jitter func(limit time.Duration) time.Duration
}

// NewInvoker builds an Invoker. log and metrics may be nil.
func NewInvoker(gen Generator, log *logger.Logger, metrics *Metrics) *Invoker {
	return &Invoker{
		gen:     gen,
		log:     logger.OrNop(log),
		metrics: metrics,
		sleep:   sleepContext,
		jitter:  randomJitter,
	}
}

// Invoke returns the first successful generation, or an error wrapping
// ErrExhausted and the last provider error. At most 2*(MaxRetries+1)
// Generate calls are made.
func (inv *Invoker) Invoke(ctx context.Context, prompt string, p Policy) (Result, error) {
	p = p.normalized()

	phases := []phase{{model: p.Primary}}
	if p.hasFallback() {
		phases = append(phases, phase{model: p.Fallback, fallback: true})
	}

	var (
		lastErr  error
		attempts int
	)
	for i, ph := range phases {
		if i > 0 {
			inv.log.Warnw("ai_fallback_model", "from", phases[i-1].model, "to", ph.model, "err", lastErr)
		}
		text, n, err := inv.runPhase(ctx, ph.model, prompt, p)
		attempts += n
		if err == nil {
			return Result{Text: text, Model: ph.model, UsedFallback: ph.fallback, Attempts: attempts}, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return Result{Attempts: attempts}, fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempts, lastErr)
}

// runPhase drives Attempting(model, attempt) until success, a non-retriable
// error, or the retry budget runs out. It returns the number of calls made.
func (inv *Invoker) runPhase(ctx context.Context, model, prompt string, p Policy) (string, int, error) {
	for attempt := 0; ; attempt++ {
		text, err := inv.gen.Generate(ctx, model, prompt)
		if err == nil {
			inv.metrics.observeAttempt(model, "success")
			return text, attempt + 1, nil
		}

		if !IsRetriable(err) {
			inv.metrics.observeAttempt(model, "fatal")
			return "", attempt + 1, err
		}
		inv.metrics.observeAttempt(model, "retriable")
		if attempt >= p.MaxRetries {
			return "", attempt + 1, err
		}

		delay := p.backoff(attempt) + inv.jitter(p.JitterMax)
		inv.log.Warnw("ai_retry", "model", model, "attempt", attempt+1, "delay", delay, "err", err)
		if serr := inv.sleep(ctx, delay); serr != nil {
			return "", attempt + 1, errors.Join(err, serr)
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func randomJitter(limit time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(limit)))
}

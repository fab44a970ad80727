package advice

import "time"

// Defaults for the retry policy.
const (
	DefaultPrimaryModel  = "gemini-1.5-flash"
	DefaultFallbackModel = "gemini-1.5-flash-latest"
	DefaultMaxRetries    = 4
	DefaultBackoffBase   = 500 * time.Millisecond
	DefaultBackoffCap    = 8 * time.Second
	DefaultJitterMax     = 300 * time.Millisecond
)

// Policy bounds how hard the Invoker tries each model.
type Policy struct {
	Primary     string
	Fallback    string // empty or equal to Primary disables the fallback phase
	MaxRetries  int    // retries per model; each model gets MaxRetries+1 attempts
	BackoffBase time.Duration
	BackoffCap  time.Duration
	JitterMax   time.Duration
}

// DefaultPolicy returns the policy used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		Primary:     DefaultPrimaryModel,
		Fallback:    DefaultFallbackModel,
		MaxRetries:  DefaultMaxRetries,
		BackoffBase: DefaultBackoffBase,
		BackoffCap:  DefaultBackoffCap,
		JitterMax:   DefaultJitterMax,
	}
}

func (p Policy) normalized() Policy {
	if p.Primary == "" {
		p.Primary = DefaultPrimaryModel
	}
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.BackoffBase < 0 {
		p.BackoffBase = 0
	}
	if p.BackoffCap < p.BackoffBase {
		p.BackoffCap = p.BackoffBase
	}
	if p.JitterMax < 0 {
		p.JitterMax = 0
	}
	return p
}

// hasFallback reports whether a distinct fallback model is configured.
func (p Policy) hasFallback() bool {
	return p.Fallback != "" && p.Fallback != p.Primary
}

// backoff returns min(cap, base*2^attempt), without jitter.
func (p Policy) backoff(attempt int) time.Duration {
	d := p.BackoffBase
	for i := 0; i < attempt; i++ {
		if d >= p.BackoffCap/2 {
			return p.BackoffCap
		}
		d *= 2
	}
	if d > p.BackoffCap {
		return p.BackoffCap
	}
	return d
}

package advice

import (
	"errors"
	"fmt"
	"net"
	"regexp"
)

// ErrExhausted is returned by the Invoker once every model in the policy has
// used up its attempts.
var ErrExhausted = errors.New("model generation exhausted")

// ProviderError is the error shape a Generator reports so the Invoker can
// classify it. Status is the provider's HTTP-like status code (0 if unknown).
type ProviderError struct {
	Status  int
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("provider error %d: %s", e.Status, e.Message)
	}
	return "provider error: " + e.Message
}

func (e *ProviderError) Unwrap() error { return e.Err }

var (
	retriableStatuses = map[int]struct{}{
		429: {},
		500: {},
		502: {},
		503: {},
		504: {},
	}
	retriableMessage = regexp.MustCompile(`(?i)temporarily|timeout|overload|unavailable|again later`)
)

// IsRetriable reports whether err is a transient provider failure worth
// another attempt against the same model.
func IsRetriable(err error) bool {
	if err == nil {
		return false
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		if _, ok := retriableStatuses[pe.Status]; ok {
			return true
		}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return retriableMessage.MatchString(err.Error())
}

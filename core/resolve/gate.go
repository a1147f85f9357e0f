package resolve

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultMinInterval is the spacing between external calls. It keeps a run
// under three requests per second, the anonymous E-utilities budget.
const DefaultMinInterval = 340 * time.Millisecond

// Gate enforces a minimum interval between external calls across every worker.
type Gate struct {
	limiter *rate.Limiter
}

// NewGate creates a gate admitting one call per interval.
// A non-positive interval disables limiting.
func NewGate(interval time.Duration) *Gate {
	if interval <= 0 {
		return &Gate{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Gate{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call may proceed or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	if g == nil {
		return ctx.Err()
	}
	return g.limiter.Wait(ctx)
}

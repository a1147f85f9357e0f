package resolve

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// DefaultMaxRetries is the default number of attempts per external call.
const DefaultMaxRetries = 3

// Policy configures retries of transient lookup failures.
type Policy struct {
	// MaxRetries is the total number of attempts per call, the first one included.
	MaxRetries int
	// InitialInterval is the wait before the first retry.
	InitialInterval time.Duration
	// MaxInterval caps the wait between retries.
	MaxInterval time.Duration
	// Multiplier grows the interval after every retry.
	Multiplier float64
	// Jitter is the randomization factor applied to every interval (0 to 1).
	Jitter float64
}

// DefaultPolicy returns the policy used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:      DefaultMaxRetries,
		InitialInterval: 2 * DefaultMinInterval,
		MaxInterval:     10 * time.Second,
		Multiplier:      2,
		Jitter:          0.5,
	}
}

func (p Policy) attempts() int {
	if p.MaxRetries <= 0 {
		return DefaultMaxRetries
	}
	return p.MaxRetries
}

func (p Policy) backOff(ctx context.Context) backoff.BackOffContext {
	def := DefaultPolicy()
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = def.InitialInterval
	if p.InitialInterval > 0 {
		exp.InitialInterval = p.InitialInterval
	}
	exp.MaxInterval = def.MaxInterval
	if p.MaxInterval > 0 {
		exp.MaxInterval = p.MaxInterval
	}
	exp.Multiplier = def.Multiplier
	if p.Multiplier >= 1 {
		exp.Multiplier = p.Multiplier
	}
	if p.Jitter >= 0 && p.Jitter <= 1 {
		exp.RandomizationFactor = p.Jitter
	}
	// Bounded by attempts, not by elapsed time.
	exp.MaxElapsedTime = 0
	exp.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(p.attempts()-1)), ctx)
}

// call runs fn through the rate gate, retrying transient failures with
// exponential backoff. Every attempt waits on the gate.
func (r *Resolver) call(ctx context.Context, op, identifier string, fn func(ctx context.Context) error) error {
	attempt := 0
	operation := func() error {
		attempt++
		if err := r.run.Gate.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		start := time.Now()
		err := fn(ctx)
		r.metrics.ObserveLookup(op, err, time.Since(start))
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		if !IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, next time.Duration) {
		r.metrics.IncRetry(op)
		r.logger.Warn("Transient lookup failure, retrying",
			zap.String("op", op),
			zap.String("identifier", identifier),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", next),
			zap.Error(err),
		)
	}

	return backoff.RetryNotify(operation, r.run.Policy.backOff(ctx), notify)
}
